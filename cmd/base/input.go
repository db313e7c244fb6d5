package base

import (
	modbase "github.com/femnad/modgate/base"
	"github.com/femnad/modgate/entity"
	"github.com/femnad/modgate/internal"
)

const DefaultConfig = "~/.config/modgate/modgate.yml"

type Input struct {
	Config   string
	LogLevel int
}

// Setup initializes logging and reads the config named by input.
func Setup(input Input) (entity.Config, error) {
	internal.InitLogging(input.LogLevel)

	file := input.Config
	if file == "" {
		file = DefaultConfig
	}
	return modbase.ReadConfig(file)
}

// ResolveOptions returns options from optionsFile when given, or the module's configured options.
func ResolveOptions(config entity.Config, module, optionsFile string) (entity.Options, error) {
	if optionsFile == "" {
		return config.OptionsFor(module), nil
	}
	return modbase.ReadOptions(optionsFile)
}
