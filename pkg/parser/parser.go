package parser

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/pkg/columnar"
	"github.com/ajitpratap0/tabula/pkg/config"
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/logger"
	"github.com/ajitpratap0/tabula/pkg/metrics"
	"github.com/ajitpratap0/tabula/pkg/observability"
	"github.com/ajitpratap0/tabula/pkg/schema"
	"github.com/ajitpratap0/tabula/pkg/source"
)

const (
	modeHeader = "header"
	modeSchema = "schema"

	// headerRows is the number of rows consumed by header-driven parsing
	// before the first data row.
	headerRows = 2
)

// RowReader yields one row of cells per call and io.EOF after the last
// row. *csv.Reader satisfies it.
type RowReader interface {
	Read() ([]string, error)
}

// Parser decodes delimited text into a DataFrame. A Parser holds no
// per-parse state and is safe for concurrent use.
type Parser struct {
	delimiter       rune
	trimSpace       bool
	timestampFormat *TimestampFormat
	factories       map[string]BuilderFactory
	logger          *zap.Logger
	metrics         *metrics.Metrics
}

// Option configures a Parser.
type Option func(*Parser) error

// WithDelimiter sets the cell separator. The default is a tab.
func WithDelimiter(delimiter rune) Option {
	return func(p *Parser) error {
		switch delimiter {
		case '"', '\r', '\n', 0:
			return errors.Newf(errors.ErrorTypeConfig, "invalid delimiter %q", delimiter)
		}
		p.delimiter = delimiter
		return nil
	}
}

// WithTimestampPattern makes Timestamp columns read cells written with
// pattern, e.g. "yyyyMMddHHmmss", instead of RFC 3339 instants.
func WithTimestampPattern(pattern string) Option {
	return func(p *Parser) error {
		f, err := CompilePattern(pattern)
		if err != nil {
			return err
		}
		p.timestampFormat = f
		return nil
	}
}

// WithTimestampFormat is WithTimestampPattern for a precompiled format,
// typically one bound to a specific location with In.
func WithTimestampFormat(format *TimestampFormat) Option {
	return func(p *Parser) error {
		p.timestampFormat = format
		return nil
	}
}

// WithBuilderFactory routes columns whose type token equals token to
// factory instead of the built-in kinds. It only affects header-driven
// parsing; schema fields carry already resolved kinds.
func WithBuilderFactory(token string, factory BuilderFactory) Option {
	return func(p *Parser) error {
		if factory == nil {
			return errors.Newf(errors.ErrorTypeConfig, "nil builder factory for type %q", token)
		}
		p.factories[token] = factory
		return nil
	}
}

// WithTrimSpace controls whether blanks around cells are stripped. It is
// on by default.
func WithTrimSpace(trim bool) Option {
	return func(p *Parser) error {
		p.trimSpace = trim
		return nil
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) error {
		if l == nil {
			l = zap.NewNop()
		}
		p.logger = l
		return nil
	}
}

// WithMetrics records parse metrics into m. nil disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Parser) error {
		p.metrics = m
		return nil
	}
}

// WithConfig applies the parser and metrics sections of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(p *Parser) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.delimiter = cfg.Parser.DelimiterRune()
		p.trimSpace = cfg.Parser.TrimSpace
		if cfg.Parser.TimestampPattern != "" {
			if err := WithTimestampPattern(cfg.Parser.TimestampPattern)(p); err != nil {
				return err
			}
		}
		if cfg.Metrics.Enabled {
			p.metrics = metrics.Default()
		} else {
			p.metrics = nil
		}
		return nil
	}
}

// New creates a Parser. Without options it reads tab separated text with
// RFC 3339 timestamps, logs through the global logger and records metrics
// in the default Prometheus registry.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{
		delimiter: '\t',
		trimSpace: true,
		factories: make(map[string]BuilderFactory),
		metrics:   metrics.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ParseTabDelimited decodes r with a parser built from opts. See
// Parser.ParseTabDelimited.
func ParseTabDelimited(ctx context.Context, r io.Reader, opts ...Option) (*columnar.DataFrame, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseTabDelimited(ctx, r)
}

// ParseWithSchema decodes r against s with a parser built from opts. See
// Parser.ParseWithSchema.
func ParseWithSchema(ctx context.Context, s *schema.Schema, r io.Reader, opts ...Option) (*columnar.DataFrame, error) {
	p, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return p.ParseWithSchema(ctx, s, r)
}

// ParseTabDelimited decodes header-driven text: the first row holds the
// column names, the second the type tokens, and every further row one
// value per column.
func (p *Parser) ParseTabDelimited(ctx context.Context, r io.Reader) (*columnar.DataFrame, error) {
	return p.ParseRows(ctx, p.newRowReader(r))
}

// ParseRows is ParseTabDelimited over an already tokenized row source.
func (p *Parser) ParseRows(ctx context.Context, rows RowReader) (df *columnar.DataFrame, err error) {
	ctx, span := observability.StartSpan(ctx, "parser.ParseRows")
	timer := metrics.NewTimer(modeHeader)
	defer func() {
		p.metrics.ObserveParse(modeHeader, timer.Stop(), err)
		span.Finish(err)
	}()

	names, err := p.readHeaderRow(rows, 1, "column names")
	if err != nil {
		return nil, err
	}
	tokens, err := p.readHeaderRow(rows, 2, "column types")
	if err != nil {
		return nil, err
	}
	if len(names) != len(tokens) {
		return nil, errors.Newf(errors.ErrorTypeSchemaMismatch,
			"number of column names (%d) must match number of column types (%d)", len(names), len(tokens)).
			WithDetail(errors.DetailExpected, len(names)).
			WithDetail(errors.DetailActual, len(tokens))
	}
	span.SetAttribute("columns", len(names))

	log := p.log(ctx)
	builders := make([]FromStringBuilder, len(names))
	for i, name := range names {
		builders[i] = p.builderFor(log, name, tokens[i])
	}

	return p.decode(ctx, rows, builders, headerRows, modeHeader)
}

// ParseWithSchema decodes r against the fields of s. No header rows are
// consumed; every row is data. Field formats override the parser's
// timestamp pattern and field metadata is copied onto the columns.
func (p *Parser) ParseWithSchema(ctx context.Context, s *schema.Schema, r io.Reader) (*columnar.DataFrame, error) {
	return p.ParseSchemaRows(ctx, s, p.newRowReader(r))
}

// ParseSchemaRows is ParseWithSchema over an already tokenized row source.
func (p *Parser) ParseSchemaRows(ctx context.Context, s *schema.Schema, rows RowReader) (df *columnar.DataFrame, err error) {
	ctx, span := observability.StartSpan(ctx, "parser.ParseSchemaRows")
	timer := metrics.NewTimer(modeSchema)
	defer func() {
		p.metrics.ObserveParse(modeSchema, timer.Stop(), err)
		span.Finish(err)
	}()

	if s == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "nil schema")
	}
	span.SetAttribute("columns", len(s.Fields))
	span.SetAttribute("data_file", s.DataFileName)

	builders := make([]FromStringBuilder, len(s.Fields))
	for i, field := range s.Fields {
		b, err := p.fieldBuilder(field)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid field format").
				WithDetail(errors.DetailColumn, field.Name).
				WithDetail(errors.DetailColumnIndex, i)
		}
		builders[i] = b
	}

	return p.decode(ctx, rows, builders, 0, modeSchema)
}

// ParseSchemaFile opens the schema's data file relative to baseDir and
// decodes it with ParseWithSchema. Compressed files are recognised by
// their extension.
func (p *Parser) ParseSchemaFile(ctx context.Context, s *schema.Schema, baseDir string) (*columnar.DataFrame, error) {
	if s == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "nil schema")
	}
	f, err := source.OpenIn(baseDir, s.DataFileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx = logger.ContextWithSource(ctx, f.Path())
	return p.ParseWithSchema(ctx, s, f)
}

// ParseFile opens path, decompressing it if its extension asks for it,
// and decodes it with ParseTabDelimited.
func (p *Parser) ParseFile(ctx context.Context, path string) (*columnar.DataFrame, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ctx = logger.ContextWithSource(ctx, f.Path())
	return p.ParseTabDelimited(ctx, f)
}

// InferSchema reads input that has a names row but no types row and
// proposes a schema for it. At most sampleSize data rows are examined; a
// non-positive sampleSize examines all of them.
func (p *Parser) InferSchema(ctx context.Context, r io.Reader, dataFileName string, sampleSize int) (*schema.Schema, error) {
	rows := p.newRowReader(r)
	names, err := p.readHeaderRow(rows, 1, "names")
	if err != nil {
		return nil, err
	}

	var sample [][]string
	for sampleSize <= 0 || len(sample) < sampleSize {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "inference cancelled")
		}
		record, err := rows.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read row").
				WithDetail(errors.DetailRow, len(sample)+2)
		}
		p.trim(record)
		sample = append(sample, record)
	}

	engine := schema.NewTypeInferenceEngine(p.log(ctx))
	if sampleSize > 0 {
		engine.SetSampleSize(sampleSize)
	}
	return engine.Infer(dataFileName, names, sample), nil
}

// WriteDataRows copies the rows of r that follow its names row to w, so
// that a schema returned by InferSchema can decode them. It returns the
// number of rows written.
func (p *Parser) WriteDataRows(ctx context.Context, r io.Reader, w io.Writer) (int, error) {
	rows := p.newRowReader(r)
	if _, err := p.readHeaderRow(rows, 1, "names"); err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	cw.Comma = p.delimiter
	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, errors.Wrap(err, errors.ErrorTypeData, "copy cancelled")
		}
		record, err := rows.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return count, errors.Wrap(err, errors.ErrorTypeData, "failed to read row").
				WithDetail(errors.DetailRow, count+2)
		}
		if err := cw.Write(record); err != nil {
			return count, errors.Wrap(err, errors.ErrorTypeFile, "failed to write row").
				WithDetail(errors.DetailRow, count+2)
		}
		count++
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return count, errors.Wrap(err, errors.ErrorTypeFile, "failed to write rows")
	}
	return count, nil
}

func (p *Parser) newRowReader(r io.Reader) RowReader {
	cr := csv.NewReader(r)
	cr.Comma = p.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func (p *Parser) readHeaderRow(rows RowReader, row int, what string) ([]string, error) {
	record, err := rows.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.Newf(errors.ErrorTypeSchemaMismatch, "missing %s row", what).
			WithDetail(errors.DetailRow, row)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read "+what).
			WithDetail(errors.DetailRow, row)
	}
	p.trim(record)
	return record, nil
}

// builderFor resolves a header type token: registered factories first,
// then the built-in kinds, with unknown tokens decoded as String.
func (p *Parser) builderFor(log *zap.Logger, name, token string) FromStringBuilder {
	if factory, ok := p.factories[token]; ok {
		if b := factory(name, token); b != nil {
			return b
		}
		log.Warn("builder factory returned nil, using built-in type",
			zap.String("column", name),
			zap.String("type", token))
	}
	if !columnar.IsKnownDescription(token) {
		log.Warn("unknown column type, decoding as String",
			zap.String("column", name),
			zap.String("type", token))
	}
	return NewBuilder(name, columnar.ByDescription(token), p.timestampFormat)
}

func (p *Parser) fieldBuilder(field schema.Field) (FromStringBuilder, error) {
	format := p.timestampFormat
	if field.Type == columnar.KindTimestamp && field.HasFormat() {
		f, err := CompilePattern(field.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	b := NewBuilder(field.Name, field.Type, format)
	b.PutAllMetaData(field.MetaData)
	return b, nil
}

// decode feeds every remaining row into builders. offset is the number of
// rows already consumed so reported row numbers match the input's lines.
func (p *Parser) decode(ctx context.Context, rows RowReader, builders []FromStringBuilder, offset int, mode string) (*columnar.DataFrame, error) {
	log := p.log(ctx)
	log.Debug("decoding rows", zap.String("mode", mode), zap.Int("columns", len(builders)))

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "parse cancelled").
				WithDetail(errors.DetailRow, offset+count+1)
		}

		record, err := rows.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		row := offset + count + 1
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to read row").
				WithDetail(errors.DetailRow, row)
		}

		if len(record) != len(builders) {
			return nil, errors.Newf(errors.ErrorTypeRowShape,
				"row %d contains %d values (but should match column count %d)", row, len(record), len(builders)).
				WithDetail(errors.DetailRow, row).
				WithDetail(errors.DetailExpected, len(builders)).
				WithDetail(errors.DetailActual, len(record))
		}

		p.trim(record)
		for j, cell := range record {
			if err := builders[j].Add(cell); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeValueParse,
					"cannot parse "+builders[j].Kind().String()+" value").
					WithDetail(errors.DetailRow, row).
					WithDetail(errors.DetailColumn, builders[j].Name()).
					WithDetail(errors.DetailColumnIndex, j).
					WithDetail(errors.DetailValue, cell)
			}
		}
		count++
	}

	columns := make([]columnar.AnyColumn, len(builders))
	for i, b := range builders {
		col := b.Build()
		if isNilColumn(col) {
			return nil, errors.Newf(errors.ErrorTypeInternal, "builder for column %q built no column", b.Name()).
				WithDetail(errors.DetailColumn, b.Name()).
				WithDetail(errors.DetailColumnIndex, i)
		}
		columns[i] = col
		p.metrics.ObserveColumn(col.Kind().String())
	}
	df, err := columnar.NewDataFrame(columns...)
	if err != nil {
		// a custom builder dropped or duplicated values
		return nil, err
	}

	p.metrics.ObserveRows(mode, count)
	log.Info("decoded data frame",
		zap.String("mode", mode),
		zap.Int("columns", df.ColumnCount()),
		zap.Int("rows", df.RowCount()))
	return df, nil
}

// isNilColumn reports whether a builder returned no column, including a
// typed nil pointer wrapped in the interface.
func isNilColumn(col columnar.AnyColumn) bool {
	if col == nil {
		return true
	}
	v := reflect.ValueOf(col)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// log returns the logger set with WithLogger, or the global logger
// tagged with the context's values.
func (p *Parser) log(ctx context.Context) *zap.Logger {
	if p.logger != nil {
		return p.logger
	}
	return logger.WithContext(ctx)
}

func (p *Parser) trim(record []string) {
	if !p.trimSpace {
		return
	}
	for i, cell := range record {
		record[i] = strings.TrimSpace(cell)
	}
}
