package arrowfmt

import (
	"maps"
	"slices"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/tabula/pkg/columnar"
	"github.com/ajitpratap0/tabula/pkg/errors"
)

// TimestampType is the Arrow type used for Timestamp columns. Values are
// truncated to microseconds.
var TimestampType = &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}

// DataType returns the Arrow type a column of kind k is stored as.
func DataType(k columnar.Kind) arrow.DataType {
	switch k {
	case columnar.KindInt:
		return arrow.PrimitiveTypes.Int64
	case columnar.KindDouble:
		return arrow.PrimitiveTypes.Float64
	case columnar.KindBoolean:
		return arrow.FixedWidthTypes.Boolean
	case columnar.KindTimestamp:
		return TimestampType
	default:
		return arrow.BinaryTypes.String
	}
}

// Schema derives the Arrow schema of df. Column names and order are kept,
// and column metadata plus the kind become field metadata.
func Schema(df *columnar.DataFrame) *arrow.Schema {
	columns := df.Columns()
	fields := make([]arrow.Field, len(columns))
	for i, col := range columns {
		fields[i] = arrow.Field{
			Name:     col.Name(),
			Type:     DataType(col.Kind()),
			Metadata: fieldMetadata(col),
		}
	}
	return arrow.NewSchema(fields, nil)
}

func fieldMetadata(col columnar.AnyColumn) arrow.Metadata {
	md := col.MetaData()
	keys := slices.Sorted(maps.Keys(md))
	values := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		values = append(values, md[k])
	}
	keys = append(keys, KindMetadataKey)
	values = append(values, col.Kind().Description())
	return arrow.NewMetadata(keys, values)
}

// NewRecord copies df into a single Arrow record allocated from mem. A nil
// mem uses the Go allocator. The caller must Release the record.
func NewRecord(mem memory.Allocator, df *columnar.DataFrame) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	builder := array.NewRecordBuilder(mem, Schema(df))
	defer builder.Release()

	for i, col := range df.Columns() {
		if err := appendColumn(builder.Field(i), col); err != nil {
			return nil, errors.Wrap(err, errors.TypeOf(err), "cannot convert column to arrow").
				WithDetail(errors.DetailColumn, col.Name()).
				WithDetail(errors.DetailColumnIndex, i)
		}
	}
	return builder.NewRecord(), nil
}

func appendColumn(b array.Builder, col columnar.AnyColumn) error {
	b.Reserve(col.RowCount())
	switch c := col.(type) {
	case *columnar.Column[int64]:
		ib, ok := b.(*array.Int64Builder)
		if !ok {
			return builderMismatch(b, col)
		}
		for v := range c.Values() {
			ib.Append(v)
		}
	case *columnar.Column[float64]:
		fb, ok := b.(*array.Float64Builder)
		if !ok {
			return builderMismatch(b, col)
		}
		for v := range c.Values() {
			fb.Append(v)
		}
	case *columnar.Column[bool]:
		bb, ok := b.(*array.BooleanBuilder)
		if !ok {
			return builderMismatch(b, col)
		}
		for v := range c.Values() {
			bb.Append(v)
		}
	case *columnar.Column[string]:
		return appendStrings(b, col, c)
	case *columnar.CategoryColumn:
		return appendStrings(b, col, c.Column)
	case *columnar.Column[time.Time]:
		tb, ok := b.(*array.TimestampBuilder)
		if !ok {
			return builderMismatch(b, col)
		}
		for v := range c.Values() {
			tb.Append(arrow.Timestamp(v.UnixMicro()))
		}
	default:
		return errors.Newf(errors.ErrorTypeTypeMismatch, "unsupported column implementation %T", col)
	}
	return nil
}

func appendStrings(b array.Builder, col columnar.AnyColumn, c *columnar.Column[string]) error {
	sb, ok := b.(*array.StringBuilder)
	if !ok {
		return builderMismatch(b, col)
	}
	for v := range c.Values() {
		sb.Append(v)
	}
	return nil
}

func builderMismatch(b array.Builder, col columnar.AnyColumn) error {
	return errors.Newf(errors.ErrorTypeInternal, "arrow builder %T cannot hold %s values", b, col.Kind()).
		WithDetail(errors.DetailExpected, col.Kind().Description()).
		WithDetail(errors.DetailActual, b.Type().String())
}
