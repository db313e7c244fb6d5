package settings

import (
	"bytes"
	"os"
	"regexp"
	"sort"

	"github.com/femnad/modgate/internal"
)

const (
	defaultModulePath    = "~/.local/share/modgate/modules"
	defaultOSReleaseFile = "/etc/os-release"
	modulePathKey        = "module_path"
)

// FactMap maps a fact name to hostname regexes and the value the fact takes on matching hosts.
type FactMap map[string]map[string]string

type Settings struct {
	HostFacts     FactMap `yaml:"host_facts,omitempty"`
	ModulePath    string  `yaml:"module_path,omitempty"`
	OSReleaseFile string  `yaml:"os_release_file,omitempty"`
}

func (s Settings) GetModulePath() string {
	if s.ModulePath != "" {
		return ExpandString(s, s.ModulePath)
	}
	return internal.ExpandUser(defaultModulePath)
}

func (s Settings) GetOSReleaseFile() string {
	if s.OSReleaseFile != "" {
		return ExpandString(s, s.OSReleaseFile)
	}
	return defaultOSReleaseFile
}

// Expand replaces ${var} references from lookup, then the environment. Unknown
// references are kept verbatim and \$ escapes a dollar sign.
func Expand(s string, lookup map[string]string) string {
	var cur bytes.Buffer
	var out bytes.Buffer
	var escaped bool
	var consuming bool
	var dollar bool

	for _, c := range s {
		if escaped {
			escaped = false
			if c != '$' {
				out.WriteRune('\\')
			}
			out.WriteRune(c)
			continue
		}

		if c == '\\' && !consuming {
			escaped = true
			continue
		}

		if dollar {
			dollar = false
			if c == '{' {
				consuming = true
				continue
			}
			out.WriteRune('$')
		}

		switch {
		case c == '$' && !consuming:
			dollar = true
		case c == '}' && consuming:
			consuming = false
			name := cur.String()
			cur.Reset()
			if val, ok := lookup[name]; ok {
				out.WriteString(val)
			} else if env := os.Getenv(name); env != "" {
				out.WriteString(env)
			} else {
				out.WriteString("${" + name + "}")
			}
		case consuming:
			cur.WriteRune(c)
		default:
			out.WriteRune(c)
		}
	}

	if dollar {
		out.WriteRune('$')
	}
	if escaped {
		out.WriteRune('\\')
	}
	if consuming {
		out.WriteString("${" + cur.String())
	}

	return out.String()
}

// ResolveHostFacts returns the fact values whose hostname regex matches hostName.
// More specific, i.e. longer, regexes are tried first.
func ResolveHostFacts(hostName string, factMap FactMap) map[string]string {
	resolved := make(map[string]string)

	for fact, hostFacts := range factMap {
		regexes := make([]string, 0, len(hostFacts))
		for key := range hostFacts {
			regexes = append(regexes, key)
		}

		sort.Slice(regexes, func(i, j int) bool {
			if len(regexes[i]) == len(regexes[j]) {
				return regexes[i] < regexes[j]
			}
			return len(regexes[i]) > len(regexes[j])
		})

		for _, regex := range regexes {
			cmp, err := regexp.Compile(regex)
			if err != nil {
				internal.Log.Errorf("ignoring regexp in host fact %s: %v", fact, err)
				continue
			}
			if cmp.MatchString(hostName) {
				resolved[fact] = hostFacts[regex]
				break
			}
		}
	}

	return resolved
}

func ExpandStringWithLookup(settings Settings, s string, lookup map[string]string) string {
	if _, ok := lookup[modulePathKey]; !ok && settings.ModulePath != "" {
		lookup[modulePathKey] = internal.ExpandUser(settings.ModulePath)
	}

	expanded := Expand(s, lookup)
	return internal.ExpandUser(expanded)
}

func ExpandString(settings Settings, s string) string {
	return ExpandStringWithLookup(settings, s, map[string]string{})
}
