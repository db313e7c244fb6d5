package integration

import (
	"fmt"
	"os"
	"path"
	"strings"

	marecmd "github.com/femnad/mare/cmd"
	"gopkg.in/yaml.v3"

	"github.com/femnad/modgate/common"
	"github.com/femnad/modgate/entity"
	"github.com/femnad/modgate/internal"
)

const binary = "modgate"

func writeYAML(in any, file string) error {
	out, err := yaml.Marshal(in)
	if err != nil {
		return err
	}

	dir, _ := path.Split(file)
	err = internal.EnsureDirExists(dir)
	if err != nil {
		return err
	}

	return os.WriteFile(file, out, 0o600)
}

func writeConfig(cfg entity.Config, configFile string) error {
	return writeYAML(cfg, configFile)
}

func findModgate() (string, error) {
	goPath := os.Getenv("GOPATH")
	if goPath == "" {
		goPath = internal.ExpandUser("~/go")
	}

	installed := path.Join(goPath, "bin", binary)
	if _, err := os.Stat(installed); err == nil {
		return installed, nil
	}

	return common.Which(binary)
}

func runModgate(exe, configFile string, args ...string) (string, int, error) {
	command := fmt.Sprintf("%s -l 2 -f %s %s", exe, configFile, strings.Join(args, " "))
	out, err := marecmd.Run(marecmd.Input{Command: command})
	return strings.TrimSpace(out.Stdout), out.Code, err
}
