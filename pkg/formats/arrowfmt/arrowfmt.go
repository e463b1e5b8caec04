// Package arrowfmt converts data frames to Apache Arrow records and writes
// them as Arrow IPC files or Parquet files.
//
// Each column becomes one Arrow field:
//
//	Int       -> int64
//	Double    -> float64
//	Boolean   -> bool
//	String    -> utf8
//	Category  -> utf8
//	Timestamp -> timestamp[us, UTC]
//
// The column kind is kept in the field metadata under KindMetadataKey next
// to the column's own metadata, so ReadArrow restores Category columns and
// metadata exactly.
package arrowfmt

import (
	"path/filepath"
	"strings"

	"github.com/ajitpratap0/tabula/pkg/compression"
	"github.com/ajitpratap0/tabula/pkg/errors"
)

// Format represents a columnar output format.
type Format string

const (
	// Arrow is the Arrow IPC file format.
	Arrow Format = "arrow"
	// Parquet is Apache Parquet.
	Parquet Format = "parquet"
)

// KindMetadataKey is the field metadata key holding the column kind.
const KindMetadataKey = "tabula.kind"

// WriterConfig configures Write.
type WriterConfig struct {
	Format Format
	// Compression selects the body codec. Arrow supports LZ4 and Zstd,
	// Parquet supports Snappy, Gzip, Zstd and LZ4.
	Compression compression.Algorithm
}

// DefaultWriterConfig returns an uncompressed Arrow configuration.
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		Format:      Arrow,
		Compression: compression.None,
	}
}

// FormatInfo describes an output format.
type FormatInfo struct {
	Name        string
	Extension   string
	MimeType    string
	Description string
}

// GetFormatInfo returns information about a format.
func GetFormatInfo(format Format) FormatInfo {
	switch format {
	case Arrow:
		return FormatInfo{
			Name:        "Apache Arrow",
			Extension:   ".arrow",
			MimeType:    "application/vnd.apache.arrow.file",
			Description: "In-memory columnar format with IPC file framing",
		}
	case Parquet:
		return FormatInfo{
			Name:        "Apache Parquet",
			Extension:   ".parquet",
			MimeType:    "application/x-parquet",
			Description: "Columnar storage format optimized for analytics",
		}
	default:
		return FormatInfo{Name: "Unknown"}
	}
}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case Arrow, Parquet:
		return f, nil
	}
	return "", errors.Newf(errors.ErrorTypeConfig, "unsupported output format %q", name).
		WithDetail("format", name)
}

// FormatFromPath guesses the format from the file extension and defaults
// to Arrow.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return Parquet
	default:
		return Arrow
	}
}
