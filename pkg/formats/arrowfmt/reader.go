package arrowfmt

import (
	"context"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/ajitpratap0/tabula/pkg/columnar"
	"github.com/ajitpratap0/tabula/pkg/errors"
)

// ReadArrow decodes an Arrow IPC file into a data frame. Every record
// batch in the file is appended in order.
func ReadArrow(r ipc.ReadAtSeeker) (*columnar.DataFrame, error) {
	fr, err := ipc.NewFileReader(r, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open Arrow file")
	}
	defer fr.Close()

	decoders, err := newDecoders(fr.Schema())
	if err != nil {
		return nil, err
	}
	for i := 0; i < fr.NumRecords(); i++ {
		record, err := fr.Record(i)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read Arrow record").
				WithDetail("record", i)
		}
		if err := decodeRecord(decoders, record); err != nil {
			return nil, err
		}
	}
	return buildFrame(decoders)
}

// ReadParquet decodes a Parquet file into a data frame.
func ReadParquet(ctx context.Context, r parquet.ReaderAtSeeker) (*columnar.DataFrame, error) {
	pool := memory.NewGoAllocator()
	pf, err := file.NewParquetReader(r)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to open Parquet file")
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, pool)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to create Arrow reader")
	}
	table, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read Parquet table")
	}
	defer table.Release()

	decoders, err := newDecoders(table.Schema())
	if err != nil {
		return nil, err
	}
	tr := array.NewTableReader(table, -1)
	defer tr.Release()
	for tr.Next() {
		if err := decodeRecord(decoders, tr.Record()); err != nil {
			return nil, err
		}
	}
	if err := tr.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to iterate Parquet table")
	}
	return buildFrame(decoders)
}

// columnDecoder accumulates one field across record batches.
type columnDecoder struct {
	field  arrow.Field
	kind   columnar.Kind
	append func(arr arrow.Array) error
	build  func() columnar.AnyColumn
}

func newDecoders(schema *arrow.Schema) ([]*columnDecoder, error) {
	decoders := make([]*columnDecoder, schema.NumFields())
	for i, field := range schema.Fields() {
		d, err := newDecoder(field)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeTypeMismatch, "cannot decode arrow field").
				WithDetail(errors.DetailColumn, field.Name).
				WithDetail(errors.DetailColumnIndex, i)
		}
		decoders[i] = d
	}
	return decoders, nil
}

func newDecoder(field arrow.Field) (*columnDecoder, error) {
	kind, err := fieldKind(field)
	if err != nil {
		return nil, err
	}
	meta := columnMetadata(field.Metadata)
	d := &columnDecoder{field: field, kind: kind}

	switch kind {
	case columnar.KindInt:
		b := columnar.NewIntBuilder(field.Name).PutAllMetaData(meta)
		d.append = func(arr arrow.Array) error {
			a, ok := arr.(*array.Int64)
			if !ok {
				return d.mismatch(arr)
			}
			for i := 0; i < a.Len(); i++ {
				b.Add(a.Value(i))
			}
			return nil
		}
		d.build = b.BuildColumn
	case columnar.KindDouble:
		b := columnar.NewDoubleBuilder(field.Name).PutAllMetaData(meta)
		d.append = func(arr arrow.Array) error {
			a, ok := arr.(*array.Float64)
			if !ok {
				return d.mismatch(arr)
			}
			for i := 0; i < a.Len(); i++ {
				b.Add(a.Value(i))
			}
			return nil
		}
		d.build = b.BuildColumn
	case columnar.KindBoolean:
		b := columnar.NewBooleanBuilder(field.Name).PutAllMetaData(meta)
		d.append = func(arr arrow.Array) error {
			a, ok := arr.(*array.Boolean)
			if !ok {
				return d.mismatch(arr)
			}
			for i := 0; i < a.Len(); i++ {
				b.Add(a.Value(i))
			}
			return nil
		}
		d.build = b.BuildColumn
	case columnar.KindCategory:
		b := columnar.NewCategoryBuilder(field.Name).PutAllMetaData(meta)
		d.append = func(arr arrow.Array) error {
			a, ok := arr.(*array.String)
			if !ok {
				return d.mismatch(arr)
			}
			// Value aliases the record's buffers
			for i := 0; i < a.Len(); i++ {
				b.Add(strings.Clone(a.Value(i)))
			}
			return nil
		}
		d.build = b.BuildColumn
	case columnar.KindTimestamp:
		b := columnar.NewTimestampBuilder(field.Name).PutAllMetaData(meta)
		d.append = func(arr arrow.Array) error {
			a, ok := arr.(*array.Timestamp)
			if !ok {
				return d.mismatch(arr)
			}
			unit := a.DataType().(*arrow.TimestampType).Unit
			for i := 0; i < a.Len(); i++ {
				b.Add(a.Value(i).ToTime(unit))
			}
			return nil
		}
		d.build = b.BuildColumn
	default:
		b := columnar.NewStringBuilder(field.Name).PutAllMetaData(meta)
		d.append = func(arr arrow.Array) error {
			a, ok := arr.(*array.String)
			if !ok {
				return d.mismatch(arr)
			}
			// Value aliases the record's buffers
			for i := 0; i < a.Len(); i++ {
				b.Add(strings.Clone(a.Value(i)))
			}
			return nil
		}
		d.build = b.BuildColumn
	}
	return d, nil
}

// fieldKind prefers the recorded kind and falls back to the Arrow type.
func fieldKind(field arrow.Field) (columnar.Kind, error) {
	if idx := field.Metadata.FindKey(KindMetadataKey); idx >= 0 {
		if token := field.Metadata.Values()[idx]; columnar.IsKnownDescription(token) {
			return columnar.ByDescription(token), nil
		}
	}
	switch field.Type.ID() {
	case arrow.INT64:
		return columnar.KindInt, nil
	case arrow.FLOAT64:
		return columnar.KindDouble, nil
	case arrow.BOOL:
		return columnar.KindBoolean, nil
	case arrow.STRING:
		return columnar.KindString, nil
	case arrow.TIMESTAMP:
		return columnar.KindTimestamp, nil
	default:
		return columnar.KindString, errors.Newf(errors.ErrorTypeTypeMismatch, "unsupported arrow type %s", field.Type).
			WithDetail(errors.DetailActual, field.Type.String())
	}
}

// columnMetadata drops the kind entry and any keys added by Arrow or
// Parquet themselves.
func columnMetadata(md arrow.Metadata) map[string]string {
	meta := make(map[string]string, md.Len())
	for i, k := range md.Keys() {
		if k == KindMetadataKey || strings.HasPrefix(k, "PARQUET:") || strings.HasPrefix(k, "ARROW:") {
			continue
		}
		meta[k] = md.Values()[i]
	}
	return meta
}

func (d *columnDecoder) mismatch(arr arrow.Array) error {
	return errors.Newf(errors.ErrorTypeTypeMismatch, "arrow type %s cannot hold %s values", arr.DataType(), d.kind).
		WithDetail(errors.DetailColumn, d.field.Name).
		WithDetail(errors.DetailExpected, DataType(d.kind).String()).
		WithDetail(errors.DetailActual, arr.DataType().String())
}

func decodeRecord(decoders []*columnDecoder, record arrow.Record) error {
	if int(record.NumCols()) != len(decoders) {
		return errors.Newf(errors.ErrorTypeSchemaMismatch, "record has %d columns (but schema has %d)", record.NumCols(), len(decoders)).
			WithDetail(errors.DetailExpected, len(decoders)).
			WithDetail(errors.DetailActual, record.NumCols())
	}
	for i, d := range decoders {
		col := record.Column(i)
		if col.NullN() > 0 {
			return errors.Newf(errors.ErrorTypeData, "column %q contains %d null values", d.field.Name, col.NullN()).
				WithDetail(errors.DetailColumn, d.field.Name).
				WithDetail(errors.DetailColumnIndex, i)
		}
		if err := d.append(col); err != nil {
			return err
		}
	}
	return nil
}

func buildFrame(decoders []*columnDecoder) (*columnar.DataFrame, error) {
	columns := make([]columnar.AnyColumn, len(decoders))
	for i, d := range decoders {
		columns[i] = d.build()
	}
	return columnar.NewDataFrame(columns...)
}
