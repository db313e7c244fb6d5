package verify

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/femnad/modgate/base"
	"github.com/femnad/modgate/entity"
	"github.com/femnad/modgate/internal"
	"github.com/femnad/modgate/settings"
	"github.com/femnad/modgate/validate"
)

func readCases(file string) (expect, error) {
	var e expect
	f, err := os.Open(internal.ExpandUser(file))
	if err != nil {
		return e, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err = decoder.Decode(&e); err != nil {
		return e, fmt.Errorf("error decoding cases in %s: %w", file, err)
	}
	return e, nil
}

func caseName(i int, c Case) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("case %d (%s on %s)", i+1, c.Module, c.Facts.OS)
}

func verifyCase(i int, c Case, source validate.MetadataSource) error {
	verdict := validate.Evaluate(source, c.Module, c.Facts.OS, c.Options)
	if verdict.Supported == c.Expect {
		internal.Log.Debugf("%s: ok", caseName(i, c))
		return nil
	}

	return fmt.Errorf("%s: expected supported to be %t, got %s", caseName(i, c), c.Expect, verdict)
}

// loadModules reads the module path only if a case runs the supported-list check.
func loadModules(cases []Case, modulePath string) (base.ModuleTable, error) {
	var needed []string
	for _, c := range cases {
		if c.Options.Enabled() && c.Options.OSValidation.Enabled() {
			needed = append(needed, c.Module)
		}
	}
	if len(needed) == 0 {
		internal.Log.Debugf("No case checks supported operating systems, not reading %s", modulePath)
		return base.ModuleTable{}, nil
	}

	modules, err := base.LoadAvailableModules(modulePath)
	if err != nil {
		return nil, err
	}

	missing := internal.SetFromList(needed).Difference(internal.SetFromList(modules.Names()))
	if missing.Cardinality() > 0 {
		missingNames := missing.ToSlice()
		sort.Strings(missingNames)
		internal.Log.Warningf("Cases refer to modules not found in %s: %v", modulePath, missingNames)
	}
	return modules, nil
}

// Verify evaluates every case in file, reporting all mismatches together.
func Verify(file string, config entity.Config) error {
	e, err := readCases(file)
	if err != nil {
		return err
	}
	if len(e.Cases) == 0 {
		return fmt.Errorf("no cases found in %s", file)
	}

	modulePath := config.Settings.GetModulePath()
	if e.ModulePath != "" {
		modulePath = settings.ExpandString(config.Settings, e.ModulePath)
	}

	modules, err := loadModules(e.Cases, modulePath)
	if err != nil {
		return err
	}

	var errs []error
	for i, c := range e.Cases {
		errs = append(errs, verifyCase(i, c, modules))
	}

	return errors.Join(errs...)
}
