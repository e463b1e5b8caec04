// Package tabula decodes typed tab-delimited text into immutable, columnar
// data frames.
//
// A data frame is an ordered set of equal-length columns. Every column has
// a name, one of six kinds (Int, Double, Boolean, String, Category,
// Timestamp), string metadata, and values of the matching Go type. Columns
// are addressed by typed IDs, so reading an Int column as a Timestamp is a
// compile error where the kind is known and a type_mismatch error where it
// is not.
//
// # Input
//
// Input comes in two shapes. Self-describing input starts with a names row
// and a types row:
//
//	Name	Age	Date Of Birth	Gender
//	String	Int	Timestamp	Category
//	Ada	42	19750826050916	Female
//
// Headerless input is described by a JSON or YAML schema that lists the
// fields, their types, optional date-time patterns and metadata, and names
// the data file.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/ajitpratap0/tabula/pkg/columnar"
//	    "github.com/ajitpratap0/tabula/pkg/parser"
//	)
//
//	f, _ := os.Open("people.tsv")
//	defer f.Close()
//
//	df, err := parser.ParseTabDelimited(context.Background(), f,
//	    parser.WithTimestampPattern("yyyyMMddHHmmss"))
//	if err != nil {
//	    return err
//	}
//
//	ages, err := columnar.GetColumn(df, columnar.IntCol("Age"))
//	for age := range ages.Values() {
//	    ...
//	}
//
// # Key Packages
//
//	pkg/columnar     - Column kinds, typed IDs, columns, builders and data frames
//	pkg/parser       - Header-driven and schema-driven decoding of delimited text
//	pkg/schema       - Schema descriptors, JSON/YAML loading and type inference
//	pkg/formats/arrowfmt - Arrow IPC and Parquet export and read-back
//	pkg/source       - Opening data files with transparent decompression
//	pkg/compression  - gzip, zstd, snappy, s2, lz4 and deflate streams
//	pkg/config       - YAML configuration with TABULA_* environment overrides
//	pkg/errors       - Typed errors carrying row, column and value details
//	pkg/logger       - Structured logging with zap
//	pkg/metrics      - Prometheus counters and latency histograms
//	pkg/observability - OpenTelemetry tracing
//
// # Command Line
//
// cmd/tabula wraps the packages above:
//
//	tabula inspect people.tsv --timestamp-pattern yyyyMMddHHmmss
//	tabula inspect --schema people.json --json
//	tabula export people.tsv --out people.parquet --compression zstd
//	tabula infer cities.tsv --out cities.yaml
//
// # Configuration
//
// Settings are read from an optional YAML file and can be overridden with
// environment variables such as TABULA_PARSER_TIMESTAMP_PATTERN or
// TABULA_LOGGING_LEVEL. Values in the file may reference the environment
// with ${VAR_NAME} syntax.
package tabula
