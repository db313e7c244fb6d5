package base

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/femnad/modgate/entity"
	"github.com/femnad/modgate/internal"
)

func decodeFile[T any](filename string, strict bool) (out T, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return out, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(strict)
	err = decoder.Decode(&out)
	if errors.Is(err, io.EOF) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("error decoding %s: %w", filename, err)
	}

	return out, nil
}

// ReadConfig reads the modgate config. A missing file yields the default config.
func ReadConfig(filename string) (entity.Config, error) {
	filename = internal.ExpandUser(filename)

	config, err := decodeFile[entity.Config](filename, true)
	if errors.Is(err, fs.ErrNotExist) {
		internal.Log.Debugf("Config file %s doesn't exist, using defaults", filename)
		return entity.Config{Filename: filename}, nil
	}
	if err != nil {
		return entity.Config{}, err
	}

	config.Filename = filename
	return config, nil
}

func ReadOptions(filename string) (entity.Options, error) {
	f, err := os.Open(internal.ExpandUser(filename))
	if err != nil {
		return entity.Options{}, err
	}
	defer f.Close()

	return entity.DecodeOptions(f)
}

func ReadFacts(filename string) (entity.Facts, error) {
	return decodeFile[entity.Facts](internal.ExpandUser(filename), false)
}
