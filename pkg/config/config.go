package config

import (
	"unicode/utf8"

	"go.uber.org/zap/zapcore"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// Config is the single configuration structure shared by the library
// entry points and the tabula command.
type Config struct {
	// Parser controls how delimited text is tokenized and decoded
	Parser ParserConfig `yaml:"parser" json:"parser" mapstructure:"parser"`

	// Logging configures the global zap logger
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`

	// Metrics toggles Prometheus instrumentation of the parser
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" mapstructure:"metrics"`

	// Tracing configures OpenTelemetry span export
	Tracing TracingConfig `yaml:"tracing" json:"tracing" mapstructure:"tracing"`
}

// ParserConfig contains decoding settings.
type ParserConfig struct {
	// Delimiter is the single character separating cells
	Delimiter string `yaml:"delimiter" json:"delimiter" mapstructure:"delimiter"`
	// TimestampPattern is applied to every Timestamp column that has no
	// pattern of its own. Empty means RFC 3339 instants.
	TimestampPattern string `yaml:"timestamp_pattern" json:"timestamp_pattern" mapstructure:"timestamp_pattern"`
	// TrimSpace strips leading and trailing blanks from every cell
	TrimSpace bool `yaml:"trim_space" json:"trim_space" mapstructure:"trim_space"`
}

// LoggingConfig mirrors logger.Config.
type LoggingConfig struct {
	Level       string   `yaml:"level" json:"level" mapstructure:"level"`
	Encoding    string   `yaml:"encoding" json:"encoding" mapstructure:"encoding"` // json or console
	Development bool     `yaml:"development" json:"development" mapstructure:"development"`
	OutputPaths []string `yaml:"output_paths,omitempty" json:"output_paths,omitempty" mapstructure:"output_paths"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Pretty      bool    `yaml:"pretty" json:"pretty" mapstructure:"pretty"`
	ServiceName string  `yaml:"service_name" json:"service_name" mapstructure:"service_name"`
	SampleRate  float64 `yaml:"sample_rate" json:"sample_rate" mapstructure:"sample_rate"`
}

// Default returns a configuration with sensible defaults: tab separated
// cells, RFC 3339 timestamps, info level JSON logs, metrics on, tracing off.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			Delimiter: "\t",
			TrimSpace: true,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Tracing: TracingConfig{
			ServiceName: "tabula",
			SampleRate:  1.0,
		},
	}
}

// DelimiterRune returns the configured delimiter as a rune. It is only
// meaningful on a validated configuration.
func (c *ParserConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// Validate checks the configuration for values the parser or logger
// would reject later.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Parser.Delimiter) != 1 {
		return errors.Newf(errors.ErrorTypeConfig, "delimiter must be a single character, got %q", c.Parser.Delimiter).
			WithDetail("delimiter", c.Parser.Delimiter)
	}
	switch r := c.Parser.DelimiterRune(); r {
	case '"', '\r', '\n', utf8.RuneError:
		return errors.Newf(errors.ErrorTypeConfig, "invalid delimiter %q", r).
			WithDetail("delimiter", c.Parser.Delimiter)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid log level").
			WithDetail("level", c.Logging.Level)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "log encoding must be json or console, got %q", c.Logging.Encoding)
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return errors.Newf(errors.ErrorTypeConfig, "trace sample rate must be within [0, 1], got %v", c.Tracing.SampleRate)
	}
	return nil
}
