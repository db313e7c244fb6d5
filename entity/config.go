package entity

import (
	"github.com/femnad/modgate/settings"
)

type Config struct {
	Filename string             `yaml:"-"`
	Modules  map[string]Options `yaml:"modules"`
	Settings settings.Settings  `yaml:"settings"`
}

func (c Config) File() string {
	return c.Filename
}

// OptionsFor returns the configured options for module, the zero value enabling every check.
func (c Config) OptionsFor(module string) Options {
	return c.Modules[module]
}
