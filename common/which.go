package common

import (
	"fmt"
	"os"
	"path/filepath"
)

// Which resolves exec against PATH unless it's already an absolute path.
func Which(exec string) (string, error) {
	if filepath.IsAbs(exec) {
		if _, err := os.Stat(exec); err != nil {
			return "", err
		}
		return exec, nil
	}

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		candidate := filepath.Join(dir, exec)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("unable to find %s in PATH", exec)
}

