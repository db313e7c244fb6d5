package printspec

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/femnad/modgate/cmd/base"
	"github.com/femnad/modgate/entity"
)

type Input struct {
	base.Input
	Module  string
	Options string
}

type spec struct {
	Module  string         `yaml:"module"`
	Options entity.Options `yaml:"options"`
}

// PrintSpec writes the options the module would be validated with, defaults included.
func PrintSpec(input Input, out io.Writer) error {
	config, err := base.Setup(input.Input)
	if err != nil {
		return err
	}

	options, err := base.ResolveOptions(config, input.Module, input.Options)
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err = encoder.Encode(spec{Module: input.Module, Options: options.Effective()}); err != nil {
		return err
	}
	return encoder.Close()
}
