package base

import (
	"os"

	"github.com/femnad/modgate/entity"
	"github.com/femnad/modgate/internal"
	"github.com/femnad/modgate/precheck"
	"github.com/femnad/modgate/settings"
)

// HostFact collects the os fact, from factsFile when given or from the host's
// os-release file otherwise, then applies host fact overrides.
func HostFact(s settings.Settings, factsFile string) (entity.OSFact, error) {
	var fact entity.OSFact
	if factsFile != "" {
		facts, err := ReadFacts(factsFile)
		if err != nil {
			return fact, err
		}
		fact = facts.OS
	} else {
		var err error
		fact, err = precheck.ReadOSFact(s.GetOSReleaseFile())
		if err != nil {
			return fact, err
		}
	}

	if len(s.HostFacts) == 0 {
		return fact, nil
	}

	hostName, err := os.Hostname()
	if err != nil {
		internal.Log.Errorf("error determining hostname, not applying host facts: %v", err)
		return fact, nil
	}

	overrides := settings.ResolveHostFacts(hostName, s.HostFacts)
	internal.Log.Debugf("Host facts for %s: %v", hostName, overrides)
	return precheck.ApplyOverrides(fact, overrides), nil
}
