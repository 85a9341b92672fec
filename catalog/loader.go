package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader loads tree definitions by name.
type Loader interface {
	Load(name string) (*Definition, error)
}

// FileLoader loads tree definitions from YAML files on disk.
type FileLoader struct {
	dirs []string
}

// NewFileLoader creates a loader that searches the given directories for
// definition YAML files.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{dirs: dirs}
}

// Load searches for {name}.yaml and {name}.yml in each directory, then one
// level of subdirectories.
func (l *FileLoader) Load(name string) (*Definition, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			// Try direct path first
			path := filepath.Join(dir, name+ext)
			if def, err := loadDefinitionFile(path); err == nil {
				return def, nil
			}

			// Search subdirectories
			matches, _ := filepath.Glob(filepath.Join(dir, "*", name+ext))
			for _, match := range matches {
				if def, err := loadDefinitionFile(match); err == nil {
					return def, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("catalog: definition %q not found in %v", name, l.dirs)
}

// LoadAll parses every definition file beneath the configured directories.
// Directories that do not exist are skipped so default search paths stay
// harmless.
func (l *FileLoader) LoadAll() ([]*Definition, error) {
	var defs []*Definition
	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
				return nil
			}
			def, err := loadDefinitionFile(path)
			if err != nil {
				return err
			}
			defs = append(defs, def)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return defs, nil
}

func loadDefinitionFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return &def, nil
}
