package schema

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/tabula/pkg/errors"
	jsonpool "github.com/ajitpratap0/tabula/pkg/json"
)

// Load reads a schema descriptor from path. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func Load(path string) (*Schema, error) {
	f, err := os.Open(path) //nolint:gosec // G304: schema path is supplied by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open schema file").
			WithDetail("path", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return LoadJSON(f)
	}
}

// LoadJSON decodes a JSON schema descriptor.
func LoadJSON(r io.Reader) (*Schema, error) {
	var s Schema
	if err := jsonpool.Decode(r, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse JSON schema")
	}
	s.normalize()
	return &s, nil
}

// LoadYAML decodes a YAML schema descriptor.
func LoadYAML(r io.Reader) (*Schema, error) {
	var s Schema
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse YAML schema")
	}
	s.normalize()
	return &s, nil
}

// Save writes s to path, as YAML or JSON depending on the extension.
func Save(path string, s *Schema) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s)
	default:
		data, err = jsonpool.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode schema")
	}

	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write schema file").
			WithDetail("path", path)
	}
	return nil
}
