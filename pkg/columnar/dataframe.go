package columnar

import (
	"slices"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// DataFrame is an immutable, ordered collection of columns that all share
// one row count.
type DataFrame struct {
	columns  []AnyColumn
	rowCount int
}

// NewDataFrame checks that every column has the same row count and wraps
// them in column order.
func NewDataFrame(columns ...AnyColumn) (*DataFrame, error) {
	rowCount := 0
	if len(columns) > 0 {
		rowCount = columns[0].RowCount()
	}
	for i, col := range columns {
		if col.RowCount() != rowCount {
			return nil, errors.Newf(errors.ErrorTypeRowCount,
				"column %d (%s) has %d rows but column 0 (%s) has %d",
				i, col.Key(), col.RowCount(), columns[0].Key(), rowCount).
				WithDetail(errors.DetailColumn, col.Name()).
				WithDetail(errors.DetailColumnIndex, i).
				WithDetail(errors.DetailExpected, rowCount).
				WithDetail(errors.DetailActual, col.RowCount())
		}
	}
	return &DataFrame{columns: slices.Clone(columns), rowCount: rowCount}, nil
}

func (df *DataFrame) ColumnCount() int { return len(df.columns) }

func (df *DataFrame) RowCount() int { return df.rowCount }

// ColumnNames returns the column names in column order.
func (df *DataFrame) ColumnNames() []string {
	names := make([]string, len(df.columns))
	for i, col := range df.columns {
		names[i] = col.Name()
	}
	return names
}

// ColumnKeys returns the (name, kind) pairs in column order.
func (df *DataFrame) ColumnKeys() []Key {
	keys := make([]Key, len(df.columns))
	for i, col := range df.columns {
		keys[i] = col.Key()
	}
	return keys
}

// Columns returns the columns in order.
func (df *DataFrame) Columns() []AnyColumn {
	return slices.Clone(df.columns)
}

// ColumnAt returns the type-erased column at pos.
func (df *DataFrame) ColumnAt(pos int) (AnyColumn, error) {
	if pos < 0 || pos >= len(df.columns) {
		return nil, errors.Newf(errors.ErrorTypeIndexOutOfRange,
			"column position %d out of range [0, %d)", pos, len(df.columns)).
			WithDetail(errors.DetailColumnIndex, pos)
	}
	return df.columns[pos], nil
}

func (df *DataFrame) find(key Key) (AnyColumn, bool) {
	for _, col := range df.columns {
		if col.Key() == key {
			return col, true
		}
	}
	return nil, false
}

// unwrap is the single place where a stored column is converted back to its
// typed form. Both assertions are checked.
func unwrap[T any](col AnyColumn) (*Column[T], bool) {
	switch c := col.(type) {
	case *Column[T]:
		return c, true
	case *CategoryColumn:
		typed, ok := any(c.Column).(*Column[T])
		return typed, ok
	}
	return nil, false
}

// GetColumnID returns a typed id for the column at pos, failing with a type
// mismatch when that column is not of type typ.
func GetColumnID[T any](df *DataFrame, pos int, typ ColumnType[T]) (ColumnID[T], error) {
	col, err := df.ColumnAt(pos)
	if err != nil {
		return ColumnID[T]{}, err
	}
	if col.Kind() != typ.Kind() {
		return ColumnID[T]{}, errors.Newf(errors.ErrorTypeTypeMismatch,
			"column %d (%s) is of type %s, not %s", pos, col.Name(), col.Kind(), typ).
			WithDetail(errors.DetailColumn, col.Name()).
			WithDetail(errors.DetailColumnIndex, pos).
			WithDetail(errors.DetailExpected, typ.Description()).
			WithDetail(errors.DetailActual, col.Kind().Description())
	}
	return NewColumnID(col.Name(), typ), nil
}

// GetColumn returns the column matching both name and type of id.
func GetColumn[T any](df *DataFrame, id ColumnID[T]) (*Column[T], error) {
	col, ok := df.find(id.Key())
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "no column %s", id).
			WithDetail(errors.DetailColumn, id.Name()).
			WithDetail(errors.DetailExpected, id.Kind().Description())
	}
	typed, ok := unwrap[T](col)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeTypeMismatch,
			"column %s holds %T, not values of the requested type", id, col).
			WithDetail(errors.DetailColumn, id.Name())
	}
	return typed, nil
}

// GetCategoryColumn returns the category column for id, with its distinct set.
func GetCategoryColumn(df *DataFrame, id ColumnID[string]) (*CategoryColumn, error) {
	if id.Kind() != KindCategory {
		return nil, errors.Newf(errors.ErrorTypeTypeMismatch, "%s is not a category column id", id).
			WithDetail(errors.DetailColumn, id.Name()).
			WithDetail(errors.DetailExpected, KindCategory.Description()).
			WithDetail(errors.DetailActual, id.Kind().Description())
	}
	col, ok := df.find(id.Key())
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "no column %s", id).
			WithDetail(errors.DetailColumn, id.Name()).
			WithDetail(errors.DetailExpected, id.Kind().Description())
	}
	cat, ok := col.(*CategoryColumn)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeTypeMismatch, "column %s holds %T", id, col).
			WithDetail(errors.DetailColumn, id.Name())
	}
	return cat, nil
}

// GetValueAt returns the value at row in the column identified by id.
func GetValueAt[T any](df *DataFrame, row int, id ColumnID[T]) (T, error) {
	col, err := GetColumn(df, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return col.ValueAt(row)
}
