package entity

import "strings"

type OSSupport struct {
	OperatingSystem        string   `yaml:"operatingsystem"`
	OperatingSystemRelease []string `yaml:"operatingsystemrelease,omitempty"`
}

// Metadata is the subset of a module's metadata.json needed for OS validation.
type Metadata struct {
	Name                   string      `yaml:"name"`
	Version                string      `yaml:"version,omitempty"`
	OperatingSystemSupport []OSSupport `yaml:"operatingsystem_support,omitempty"`
}

// ShortName drops the author prefix, so both puppetlabs-stdlib and puppetlabs/stdlib become stdlib.
func (m Metadata) ShortName() string {
	name := m.Name
	if i := strings.LastIndexAny(name, "-/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (m Metadata) SupportFor(osName string) (OSSupport, bool) {
	for _, support := range m.OperatingSystemSupport {
		if support.OperatingSystem == osName {
			return support, true
		}
	}
	return OSSupport{}, false
}

func (m Metadata) OperatingSystems() []string {
	names := make([]string, 0, len(m.OperatingSystemSupport))
	for _, support := range m.OperatingSystemSupport {
		names = append(names, support.OperatingSystem)
	}
	return names
}
