package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

// EnvPrefix prefixes environment overrides, e.g. TABULA_PARSER_DELIMITER.
const EnvPrefix = "TABULA"

// NewViper returns a viper instance preloaded with the defaults and wired
// for TABULA_* environment overrides. Callers may bind command-line flags
// to it before calling LoadWithViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("parser.delimiter", d.Parser.Delimiter)
	v.SetDefault("parser.timestamp_pattern", d.Parser.TimestampPattern)
	v.SetDefault("parser.trim_space", d.Parser.TrimSpace)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.encoding", d.Logging.Encoding)
	v.SetDefault("logging.development", d.Logging.Development)
	v.SetDefault("logging.output_paths", d.Logging.OutputPaths)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.pretty", d.Tracing.Pretty)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	return v
}

// LoadWithViper resolves the configuration from defaults, the optional
// YAML file at path, TABULA_* environment variables and any flags bound to
// v, in increasing order of precedence. ${VAR_NAME} references in the file
// are expanded before it is parsed.
func LoadWithViper(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // G304: File path is controlled by caller
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "read config").
				WithDetail("path", path)
		}
		v.SetConfigType("yaml")
		if err := v.ReadConfig(strings.NewReader(substituteEnvVars(string(data)))); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "parse config").
				WithDetail("path", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
