package columnar

import "time"

// ColumnID pairs a column name with its type. It is the only key that can
// retrieve a typed column from a DataFrame; two ids are equal only when both
// name and type match.
type ColumnID[T any] struct {
	name string
	typ  ColumnType[T]
}

// Key is the type-erased form of a ColumnID.
type Key struct {
	Name string
	Kind Kind
}

func (k Key) String() string { return k.Name + ":" + k.Kind.Description() }

// NewColumnID returns the id for a column called name of type typ.
func NewColumnID[T any](name string, typ ColumnType[T]) ColumnID[T] {
	return ColumnID[T]{name: name, typ: typ}
}

// IntCol returns the id of an Int column.
func IntCol(name string) ColumnID[int64] { return NewColumnID(name, Int) }

// DoubleCol returns the id of a Double column.
func DoubleCol(name string) ColumnID[float64] { return NewColumnID(name, Double) }

// BooleanCol returns the id of a Boolean column.
func BooleanCol(name string) ColumnID[bool] { return NewColumnID(name, Boolean) }

// StringCol returns the id of a String column.
func StringCol(name string) ColumnID[string] { return NewColumnID(name, String) }

// CategoryCol returns the id of a Category column.
func CategoryCol(name string) ColumnID[string] { return NewColumnID(name, Category) }

// TimestampCol returns the id of a Timestamp column.
func TimestampCol(name string) ColumnID[time.Time] { return NewColumnID(name, Timestamp) }

func (id ColumnID[T]) Name() string { return id.name }

func (id ColumnID[T]) Type() ColumnType[T] { return id.typ }

func (id ColumnID[T]) Kind() Kind { return id.typ.kind }

func (id ColumnID[T]) Key() Key { return Key{Name: id.name, Kind: id.typ.kind} }

func (id ColumnID[T]) String() string { return id.Key().String() }
