package validate

import (
	"fmt"

	"github.com/femnad/modgate/entity"
	"github.com/femnad/modgate/internal"
)

// MetadataSource resolves a module name to its declared metadata.
type MetadataSource interface {
	Lookup(module string) (entity.Metadata, bool)
}

// moduleLister is implemented by sources that can enumerate their modules.
type moduleLister interface {
	Names() []string
}

type Verdict struct {
	Supported bool
	// Bypassed is set when validation is disabled globally.
	Bypassed bool
	Failures []string
}

func (v Verdict) String() string {
	switch {
	case v.Bypassed:
		return "supported (validation disabled)"
	case v.Supported:
		return "supported"
	default:
		return fmt.Sprintf("unsupported: %v", v.Failures)
	}
}

type input struct {
	module  string
	fact    entity.OSFact
	options entity.Options
	source  MetadataSource
}

// check's run returns a failure description, or an empty string on success.
type check struct {
	name string
	rule func(entity.Options) entity.Rule
	run  func(input) string
}

var checks = []check{
	{
		name: "os_validation",
		rule: func(o entity.Options) entity.Rule { return o.OSValidation },
		run:  checkSupported,
	},
	{
		name: "blacklist_validation",
		rule: func(o entity.Options) entity.Rule { return o.BlacklistValidation },
		run:  checkBlacklist,
	},
}

func checkSupported(in input) string {
	if in.source == nil {
		return fmt.Sprintf("no metadata available for module %s", in.module)
	}

	metadata, ok := in.source.Lookup(in.module)
	if !ok {
		internal.Log.Warningf("No metadata found for module %s, treating it as unsupported", in.module)
		if lister, ok := in.source.(moduleLister); ok {
			return fmt.Sprintf("no metadata found for module %s, available modules: %v", in.module, lister.Names())
		}
		return fmt.Sprintf("no metadata found for module %s", in.module)
	}

	support, ok := metadata.SupportFor(in.fact.Name)
	if !ok {
		return fmt.Sprintf("%s is not in the supported operating systems of %s: %v",
			in.fact.Name, in.module, metadata.OperatingSystems())
	}

	if len(support.OperatingSystemRelease) == 0 {
		internal.Log.Debugf("%s declares no releases for %s, every release is supported", in.module, in.fact.Name)
		return ""
	}

	match := in.options.OSValidation.Match()
	if !anyReleaseMatches(support.OperatingSystemRelease, in.fact.Release, match) {
		return fmt.Sprintf("%s is not in the supported releases of %s for %s (release_match: %s): %v",
			in.fact, in.module, in.fact.Name, match, support.OperatingSystemRelease)
	}

	return ""
}

func checkBlacklist(in input) string {
	match := in.options.BlacklistValidation.Match()

	for _, entry := range in.options.Blacklist {
		if entry.Name != in.fact.Name {
			continue
		}
		if !entry.HasReleases() || match == entity.MatchNone {
			return fmt.Sprintf("%s is blacklisted", in.fact.Name)
		}
		if anyReleaseMatches(entry.Releases, in.fact.Release, match) {
			return fmt.Sprintf("%s is blacklisted by %s: %v (release_match: %s)", in.fact, entry.Name, entry.Releases, match)
		}
	}

	return ""
}

// Evaluate runs every enabled check against fact. A global disable short-circuits
// to supported; a disabled check only drops its own contribution.
func Evaluate(source MetadataSource, module string, fact entity.OSFact, options entity.Options) Verdict {
	if !options.Enabled() {
		internal.Log.Debugf("OS validation disabled for %s", module)
		return Verdict{Supported: true, Bypassed: true}
	}

	in := input{module: module, fact: fact, options: options, source: source}
	var failures []string
	for _, c := range checks {
		if !c.rule(options).Enabled() {
			internal.Log.Debugf("Skipping %s for %s as it is disabled", c.name, module)
			continue
		}

		if failure := c.run(in); failure != "" {
			internal.Log.Debugf("%s failed for %s: %s", c.name, module, failure)
			failures = append(failures, failure)
		}
	}

	return Verdict{Supported: len(failures) == 0, Failures: failures}
}

func IsSupported(source MetadataSource, module string, fact entity.OSFact, options entity.Options) bool {
	return Evaluate(source, module, fact, options).Supported
}
