// Package fs reads schema tables from and writes mapped pages to the file
// system.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/xwalk"
	"gopkg.in/yaml.v3"
)

// Base names of the schema files, without extension.
const (
	ModelsFile     = "component-models"
	DefinitionFile = "component-definition"
	FiltersFile    = "component-filters"
)

// Extensions tried for every schema file, in order.
var schemaExts = []string{".json", ".yaml", ".yml"}

// Ensure SchemaLoader implements xwalk.SchemaLoader at compile time.
var _ xwalk.SchemaLoader = (*SchemaLoader)(nil)

// SchemaLoader loads the schema tables from a directory. Each table lives in
// its own file, written as JSON or YAML.
type SchemaLoader struct {
	Dir string
}

// NewSchemaLoader creates a SchemaLoader reading from dir.
func NewSchemaLoader(dir string) *SchemaLoader {
	return &SchemaLoader{Dir: dir}
}

// LoadSchema reads the three tables. A table whose file is missing is left
// nil so the mapper can report it; a malformed file is an EINVALID error.
func (l *SchemaLoader) LoadSchema(ctx context.Context) (*xwalk.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var s xwalk.Schema

	var models []xwalk.ComponentModel
	ok, err := l.load(ModelsFile, &models)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Models = nonNil(models)
	}

	var def xwalk.ComponentDefinition
	ok, err = l.load(DefinitionFile, &def)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Definition = &def
	}

	var filters []xwalk.Filter
	ok, err = l.load(FiltersFile, &filters)
	if err != nil {
		return nil, err
	}
	if ok {
		s.Filters = nonNil(filters)
	}

	return &s, nil
}

// load decodes the first existing file named base into v. It reports false
// when no such file exists.
func (l *SchemaLoader) load(base string, v any) (bool, error) {
	for _, ext := range schemaExts {
		path := filepath.Join(l.Dir, base+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := decode(ext, data, v); err != nil {
			return false, xwalk.Errorf(xwalk.EINVALID, "malformed %s: %v", filepath.Base(path), err)
		}
		return true, nil
	}
	return false, nil
}

func decode(ext string, data []byte, v any) error {
	if ext == ".json" {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// nonNil keeps a present but empty table distinguishable from a missing one.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
