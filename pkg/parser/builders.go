package parser

import (
	"strconv"
	"strings"

	"github.com/ajitpratap0/tabula/pkg/columnar"
)

// FromStringBuilder accepts cell text, coerces it to its column's native
// type and accumulates the result. It is what the parser feeds; one builder
// exists per column for the duration of a parse.
type FromStringBuilder interface {
	Name() string
	Kind() columnar.Kind
	// Add coerces value and appends it. A returned error means the value
	// was rejected and nothing was appended.
	Add(value string) error
	PutMetaData(key, value string)
	PutAllMetaData(metaData map[string]string)
	// Build freezes the column. The builder must not be used afterwards.
	Build() columnar.AnyColumn
}

// BuilderFactory creates the builder for a column whose header declares
// typeToken. Factories registered for a token take precedence over the
// built-in kinds.
type BuilderFactory func(name, typeToken string) FromStringBuilder

// genericBuilder adapts a typed columnar builder to FromStringBuilder.
type genericBuilder struct {
	name        string
	kind        columnar.Kind
	accept      func(string) error
	putMetaData func(key, value string)
	putAll      func(map[string]string)
	build       func() columnar.AnyColumn
}

func (b *genericBuilder) Name() string                        { return b.name }
func (b *genericBuilder) Kind() columnar.Kind                 { return b.kind }
func (b *genericBuilder) Add(value string) error              { return b.accept(value) }
func (b *genericBuilder) PutMetaData(key, value string)       { b.putMetaData(key, value) }
func (b *genericBuilder) PutAllMetaData(md map[string]string) { b.putAll(md) }
func (b *genericBuilder) Build() columnar.AnyColumn           { return b.build() }

// NewFromStringBuilder wraps a typed builder with a coercion function.
// Custom factories use it to plug their own decoding into the parser.
func NewFromStringBuilder[T any](typed *columnar.Builder[T], coerce func(string) (T, error)) FromStringBuilder {
	id := typed.ID()
	return &genericBuilder{
		name: id.Name(),
		kind: id.Kind(),
		accept: func(s string) error {
			v, err := coerce(s)
			if err != nil {
				return err
			}
			typed.Add(v)
			return nil
		},
		putMetaData: func(k, v string) { typed.PutMetaData(k, v) },
		putAll:      func(md map[string]string) { typed.PutAllMetaData(md) },
		build:       typed.BuildColumn,
	}
}

// NewCategoryFromStringBuilder returns a builder that stores cells verbatim
// and records each distinct value.
func NewCategoryFromStringBuilder(name string) FromStringBuilder {
	typed := columnar.NewCategoryBuilder(name)
	return &genericBuilder{
		name: name,
		kind: columnar.KindCategory,
		accept: func(s string) error {
			typed.Add(s)
			return nil
		},
		putMetaData: func(k, v string) { typed.PutMetaData(k, v) },
		putAll:      func(md map[string]string) { typed.PutAllMetaData(md) },
		build:       typed.BuildColumn,
	}
}

// NewBuilder returns the built-in builder for kind. format applies to
// Timestamp columns only; nil means cells are RFC 3339 instants.
func NewBuilder(name string, kind columnar.Kind, format *TimestampFormat) FromStringBuilder {
	switch kind {
	case columnar.KindInt:
		return NewFromStringBuilder(columnar.NewIntBuilder(name), parseInt)
	case columnar.KindDouble:
		return NewFromStringBuilder(columnar.NewDoubleBuilder(name), parseDouble)
	case columnar.KindBoolean:
		return NewFromStringBuilder(columnar.NewBooleanBuilder(name), parseBoolean)
	case columnar.KindCategory:
		return NewCategoryFromStringBuilder(name)
	case columnar.KindTimestamp:
		coerce := parseInstant
		if format != nil {
			coerce = format.Parse
		}
		return NewFromStringBuilder(columnar.NewTimestampBuilder(name), coerce)
	case columnar.KindString:
		return NewFromStringBuilder(columnar.NewStringBuilder(name), parseString)
	default:
		return NewFromStringBuilder(columnar.NewStringBuilder(name), parseString)
	}
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseDouble(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parseBoolean never fails: only "true", in any case, is true.
func parseBoolean(s string) (bool, error) {
	return strings.EqualFold(s, "true"), nil
}

func parseString(s string) (string, error) {
	return s, nil
}
