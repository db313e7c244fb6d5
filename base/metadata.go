package base

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/femnad/modgate/entity"
	"github.com/femnad/modgate/internal"
)

const metadataFile = "metadata.json"

// ModuleTable holds the metadata of every module found under a module path, keyed by short name.
type ModuleTable map[string]entity.Metadata

func (t ModuleTable) Lookup(module string) (entity.Metadata, bool) {
	m, ok := t[module]
	return m, ok
}

func (t ModuleTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperatingSystems returns every OS declared by at least one module.
func (t ModuleTable) OperatingSystems() mapset.Set[string] {
	set := mapset.NewSet[string]()
	for _, m := range t {
		set.Append(m.OperatingSystems()...)
	}
	return set
}

// ReadMetadata decodes a metadata.json file, JSON being a subset of YAML.
func ReadMetadata(filename string) (entity.Metadata, error) {
	metadata, err := decodeFile[entity.Metadata](filename, false)
	if err != nil {
		return metadata, err
	}
	if metadata.Name == "" {
		return metadata, fmt.Errorf("module metadata in %s has no name", filename)
	}
	return metadata, nil
}

// LoadModules reads <modulePath>/*/metadata.json. Module directories are visited
// in lexical order so a later duplicate replaces an earlier one.
func LoadModules(modulePath string) (ModuleTable, error) {
	modulePath = internal.ExpandUser(modulePath)
	entries, err := os.ReadDir(modulePath)
	if err != nil {
		return nil, fmt.Errorf("error reading module path %s: %w", modulePath, err)
	}

	table := make(ModuleTable)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		file := filepath.Join(modulePath, entry.Name(), metadataFile)
		metadata, err := ReadMetadata(file)
		if errors.Is(err, fs.ErrNotExist) {
			internal.Log.Debugf("Skipping %s as it has no %s", entry.Name(), metadataFile)
			continue
		}
		if err != nil {
			return nil, err
		}

		name := metadata.ShortName()
		if _, ok := table[name]; ok {
			internal.Log.Warningf("Module %s in %s replaces a previously loaded module with the same name", name, file)
		}
		table[name] = metadata
	}

	systems := table.OperatingSystems().ToSlice()
	sort.Strings(systems)
	internal.Log.Debugf("Loaded %d modules from %s: %v", len(table), modulePath, table.Names())
	internal.Log.Debugf("Operating systems declared under %s: %v", modulePath, systems)
	return table, nil
}

// LoadAvailableModules is LoadModules, except a module path that doesn't exist
// yields an empty table, so every module evaluates as unsupported.
func LoadAvailableModules(modulePath string) (ModuleTable, error) {
	table, err := LoadModules(modulePath)
	if errors.Is(err, fs.ErrNotExist) {
		internal.Log.Warningf("Module path %s doesn't exist, no module metadata is available", modulePath)
		return ModuleTable{}, nil
	}
	return table, err
}
