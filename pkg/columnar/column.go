package columnar

import (
	"iter"
	"maps"
	"slices"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// AnyColumn is the type-erased view of a column held by a DataFrame.
// Typed access goes through GetColumn and friends.
type AnyColumn interface {
	Name() string
	Kind() Kind
	Key() Key
	RowCount() int
	MetaData() map[string]string
	// AnyValueAt returns the value at row i boxed as an interface.
	AnyValueAt(i int) (any, error)
}

// Column is an immutable, fixed-length sequence of values of type T.
type Column[T any] struct {
	id       ColumnID[T]
	values   []T
	metaData map[string]string
}

// NewColumn copies values and metaData into a new column.
func NewColumn[T any](id ColumnID[T], values []T, metaData map[string]string) *Column[T] {
	return newColumn(id, slices.Clone(values), maps.Clone(metaData))
}

// newColumn takes ownership of values and metaData.
func newColumn[T any](id ColumnID[T], values []T, metaData map[string]string) *Column[T] {
	if values == nil {
		values = []T{}
	}
	if metaData == nil {
		metaData = map[string]string{}
	}
	return &Column[T]{id: id, values: slices.Clip(values), metaData: metaData}
}

func (c *Column[T]) ID() ColumnID[T] { return c.id }

func (c *Column[T]) Name() string { return c.id.name }

func (c *Column[T]) Kind() Kind { return c.id.Kind() }

func (c *Column[T]) Key() Key { return c.id.Key() }

func (c *Column[T]) RowCount() int { return len(c.values) }

// MetaData returns a copy of the column's metadata.
func (c *Column[T]) MetaData() map[string]string {
	return maps.Clone(c.metaData)
}

// MetaDataValue returns a single metadata entry.
func (c *Column[T]) MetaDataValue(key string) (string, bool) {
	v, ok := c.metaData[key]
	return v, ok
}

// ValueAt returns the value at row i.
func (c *Column[T]) ValueAt(i int) (T, error) {
	if i < 0 || i >= len(c.values) {
		var zero T
		return zero, errors.Newf(errors.ErrorTypeIndexOutOfRange,
			"row %d out of range [0, %d) for column %s", i, len(c.values), c.id).
			WithDetail(errors.DetailRow, i).
			WithDetail(errors.DetailColumn, c.id.name)
	}
	return c.values[i], nil
}

// AnyValueAt implements AnyColumn.
func (c *Column[T]) AnyValueAt(i int) (any, error) {
	v, err := c.ValueAt(i)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Values yields the column's values in row order. The sequence may be
// ranged over any number of times and always yields the same values.
func (c *Column[T]) Values() iter.Seq[T] {
	return slices.Values(c.values)
}

// All yields (row, value) pairs in row order.
func (c *Column[T]) All() iter.Seq2[int, T] {
	return slices.All(c.values)
}

// ToSlice returns a copy of the column's values.
func (c *Column[T]) ToSlice() []T {
	return slices.Clone(c.values)
}
