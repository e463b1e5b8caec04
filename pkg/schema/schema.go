// Package schema describes the expected shape of delimited text that carries
// no self-describing header: an ordered list of Fields plus the name of the
// data file they describe.
package schema

import (
	"maps"

	"github.com/ajitpratap0/tabula/pkg/columnar"
	"github.com/ajitpratap0/tabula/pkg/errors"
)

// DefaultName is the name given to a field that declares none.
const DefaultName = ""

// DefaultType is the type given to a field that declares none.
const DefaultType = columnar.KindString

// Field declares one expected column.
type Field struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Type is decoded from a type token; unknown tokens become String.
	Type columnar.Kind `json:"type,omitempty" yaml:"type,omitempty"`
	// Format is the date-time pattern for Timestamp fields. Empty means the
	// cells are RFC 3339 instants.
	Format   string            `json:"format,omitempty" yaml:"format,omitempty"`
	MetaData map[string]string `json:"metaData,omitempty" yaml:"metaData,omitempty"`
}

// NewField returns a field with no format and no metadata.
func NewField(name string, kind columnar.Kind) Field {
	return Field{Name: name, Type: kind, MetaData: map[string]string{}}
}

// HasFormat reports whether the field carries a parse pattern.
func (f Field) HasFormat() bool { return f.Format != "" }

// WithFormat returns a copy of f with the given parse pattern.
func (f Field) WithFormat(format string) Field {
	f.Format = format
	return f
}

// WithMetaData returns a copy of f with key set in its metadata.
func (f Field) WithMetaData(key, value string) Field {
	md := maps.Clone(f.MetaData)
	if md == nil {
		md = make(map[string]string, 1)
	}
	md[key] = value
	f.MetaData = md
	return f
}

// Schema is an ordered sequence of fields and the data file they describe.
type Schema struct {
	Title        string  `json:"title,omitempty" yaml:"title,omitempty"`
	DataFileName string  `json:"dataFileName" yaml:"dataFileName"`
	Fields       []Field `json:"fields" yaml:"fields"`
}

// New returns a schema over fields.
func New(dataFileName string, fields ...Field) *Schema {
	s := &Schema{DataFileName: dataFileName, Fields: fields}
	s.normalize()
	return s
}

// FieldNames returns the field names in order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Validate checks that the schema declares at least one field.
func (s *Schema) Validate() error {
	if len(s.Fields) == 0 {
		return errors.New(errors.ErrorTypeConfig, "schema declares no fields").
			WithDetail("data_file", s.DataFileName)
	}
	return nil
}

// normalize fills in defaults so that consumers never see nil metadata.
func (s *Schema) normalize() {
	for i := range s.Fields {
		if s.Fields[i].MetaData == nil {
			s.Fields[i].MetaData = map[string]string{}
		}
	}
}
