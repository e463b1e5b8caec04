package arrowfmt

import (
	"bufio"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/ajitpratap0/tabula/pkg/columnar"
	"github.com/ajitpratap0/tabula/pkg/compression"
	"github.com/ajitpratap0/tabula/pkg/errors"
)

// Write encodes df to w in the configured format. A nil config writes an
// uncompressed Arrow file.
func Write(w io.Writer, df *columnar.DataFrame, config *WriterConfig) error {
	if config == nil {
		config = DefaultWriterConfig()
	}
	switch config.Format {
	case Arrow:
		return writeArrow(w, df, config)
	case Parquet:
		return writeParquet(w, df, config)
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unsupported output format %q", config.Format)
	}
}

// WriteFile creates path and writes df to it.
func WriteFile(path string, df *columnar.DataFrame, config *WriterConfig) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "cannot create output file").
			WithDetail("path", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, errors.ErrorTypeFile, "cannot close output file").
				WithDetail("path", path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Write(bw, df, config); err != nil {
		return err
	}
	if ferr := bw.Flush(); ferr != nil {
		return errors.Wrap(ferr, errors.ErrorTypeFile, "cannot flush output file").
			WithDetail("path", path)
	}
	return nil
}

func writeArrow(w io.Writer, df *columnar.DataFrame, config *WriterConfig) error {
	opts, err := ipcOptions(config.Compression)
	if err != nil {
		return err
	}
	pool := memory.NewGoAllocator()

	record, err := NewRecord(pool, df)
	if err != nil {
		return err
	}
	defer record.Release()

	opts = append(opts, ipc.WithSchema(record.Schema()), ipc.WithAllocator(pool))
	fw, err := ipc.NewFileWriter(w, opts...)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to create Arrow writer")
	}
	if err := fw.Write(record); err != nil {
		_ = fw.Close()
		return errors.Wrap(err, errors.ErrorTypeData, "failed to write Arrow record")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to close Arrow writer")
	}
	return nil
}

func writeParquet(w io.Writer, df *columnar.DataFrame, config *WriterConfig) error {
	codec, err := parquetCodec(config.Compression)
	if err != nil {
		return err
	}
	pool := memory.NewGoAllocator()

	record, err := NewRecord(pool, df)
	if err != nil {
		return err
	}
	defer record.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(codec),
		parquet.WithAllocator(pool),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithAllocator(pool),
		pqarrow.WithStoreSchema(),
	)
	fw, err := pqarrow.NewFileWriter(record.Schema(), w, props, arrowProps)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to create Parquet writer")
	}
	if err := fw.Write(record); err != nil {
		_ = fw.Close()
		return errors.Wrap(err, errors.ErrorTypeData, "failed to write Parquet row group")
	}
	if err := fw.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to close Parquet writer")
	}
	return nil
}

func ipcOptions(alg compression.Algorithm) ([]ipc.Option, error) {
	switch alg {
	case "", compression.None:
		return nil, nil
	case compression.LZ4:
		return []ipc.Option{ipc.WithLZ4()}, nil
	case compression.Zstd:
		return []ipc.Option{ipc.WithZstd()}, nil
	default:
		return nil, unsupportedCodec(Arrow, alg)
	}
}

func parquetCodec(alg compression.Algorithm) (compress.Compression, error) {
	switch alg {
	case "", compression.None:
		return compress.Codecs.Uncompressed, nil
	case compression.Snappy:
		return compress.Codecs.Snappy, nil
	case compression.Gzip:
		return compress.Codecs.Gzip, nil
	case compression.Zstd:
		return compress.Codecs.Zstd, nil
	case compression.LZ4:
		return compress.Codecs.Lz4Raw, nil
	default:
		return compress.Codecs.Uncompressed, unsupportedCodec(Parquet, alg)
	}
}

func unsupportedCodec(format Format, alg compression.Algorithm) error {
	return errors.Newf(errors.ErrorTypeConfig, "%s output does not support %s compression", format, alg).
		WithDetail("format", string(format)).
		WithDetail("compression", string(alg))
}
