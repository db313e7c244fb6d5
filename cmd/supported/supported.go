package supported

import (
	"fmt"
	"io"

	modbase "github.com/femnad/modgate/base"
	"github.com/femnad/modgate/cmd/base"
	"github.com/femnad/modgate/internal"
	"github.com/femnad/modgate/validate"
)

type Input struct {
	base.Input
	Facts   string
	Module  string
	Options string
}

func Check(input Input, out io.Writer) (bool, error) {
	config, err := base.Setup(input.Input)
	if err != nil {
		return false, fmt.Errorf("error reading config: %w", err)
	}

	options, err := base.ResolveOptions(config, input.Module, input.Options)
	if err != nil {
		return false, fmt.Errorf("error reading options: %w", err)
	}

	fact, err := modbase.HostFact(config.Settings, input.Facts)
	if err != nil {
		return false, fmt.Errorf("error determining OS facts: %w", err)
	}

	var source validate.MetadataSource
	if options.Enabled() && options.OSValidation.Enabled() {
		source, err = modbase.LoadAvailableModules(config.Settings.GetModulePath())
		if err != nil {
			return false, err
		}
	}

	verdict := validate.Evaluate(source, input.Module, fact, options)
	internal.Log.Infof("%s on %s: %s", input.Module, fact, verdict)

	_, err = fmt.Fprintln(out, verdict.Supported)
	return verdict.Supported, err
}
