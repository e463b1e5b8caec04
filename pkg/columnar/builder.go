package columnar

import (
	"maps"
	"time"
)

// Builder accumulates values and metadata for one column. It is owned by a
// single goroutine and meant to be used once: Build hands its buffers to the
// returned column and resets the builder, so nothing done to the builder
// afterwards can reach the built column.
type Builder[T any] struct {
	id       ColumnID[T]
	values   []T
	metaData map[string]string
}

// NewBuilder returns an empty builder for the column identified by id.
func NewBuilder[T any](id ColumnID[T]) *Builder[T] {
	return &Builder[T]{id: id}
}

// NewIntBuilder returns a builder for an Int column.
func NewIntBuilder(name string) *Builder[int64] { return NewBuilder(IntCol(name)) }

// NewDoubleBuilder returns a builder for a Double column.
func NewDoubleBuilder(name string) *Builder[float64] { return NewBuilder(DoubleCol(name)) }

// NewBooleanBuilder returns a builder for a Boolean column.
func NewBooleanBuilder(name string) *Builder[bool] { return NewBuilder(BooleanCol(name)) }

// NewStringBuilder returns a builder for a String column.
func NewStringBuilder(name string) *Builder[string] { return NewBuilder(StringCol(name)) }

// NewTimestampBuilder returns a builder for a Timestamp column.
func NewTimestampBuilder(name string) *Builder[time.Time] { return NewBuilder(TimestampCol(name)) }

func (b *Builder[T]) ID() ColumnID[T] { return b.id }

// Len returns the number of values added so far.
func (b *Builder[T]) Len() int { return len(b.values) }

func (b *Builder[T]) Add(value T) *Builder[T] {
	b.values = append(b.values, value)
	return b
}

func (b *Builder[T]) AddAll(values ...T) *Builder[T] {
	b.values = append(b.values, values...)
	return b
}

func (b *Builder[T]) PutMetaData(key, value string) *Builder[T] {
	if b.metaData == nil {
		b.metaData = make(map[string]string)
	}
	b.metaData[key] = value
	return b
}

func (b *Builder[T]) PutAllMetaData(metaData map[string]string) *Builder[T] {
	if len(metaData) == 0 {
		return b
	}
	if b.metaData == nil {
		b.metaData = make(map[string]string, len(metaData))
	}
	maps.Copy(b.metaData, metaData)
	return b
}

// Build freezes the accumulated values into a column.
func (b *Builder[T]) Build() *Column[T] {
	col := newColumn(b.id, b.values, b.metaData)
	b.values = nil
	b.metaData = nil
	return col
}

// BuildColumn is Build returning the type-erased column.
func (b *Builder[T]) BuildColumn() AnyColumn { return b.Build() }
