package entity

import "fmt"

type Release struct {
	Major string `yaml:"major"`
	Full  string `yaml:"full"`
}

// OSFact mirrors the structured os fact reported on a host.
type OSFact struct {
	Name    string  `yaml:"name"`
	Release Release `yaml:"release"`
}

func (f OSFact) String() string {
	if f.Release.Full == "" {
		return f.Name
	}
	return fmt.Sprintf("%s %s", f.Name, f.Release.Full)
}

type Facts struct {
	OS OSFact `yaml:"os"`
}
