package verify

import (
	"github.com/femnad/modgate/entity"
)

type Case struct {
	Name    string         `yaml:"name"`
	Module  string         `yaml:"module"`
	Facts   entity.Facts   `yaml:"facts"`
	Options entity.Options `yaml:"options"`
	Expect  bool           `yaml:"expect"`
}

type expect struct {
	// ModulePath overrides the module path of the modgate config.
	ModulePath string `yaml:"module_path"`
	Cases      []Case `yaml:"cases"`
}
