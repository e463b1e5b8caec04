package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/tabula/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, '\t', cfg.Parser.DelimiterRune())
	assert.True(t, cfg.Parser.TrimSpace)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty delimiter", func(c *Config) { c.Parser.Delimiter = "" }},
		{"long delimiter", func(c *Config) { c.Parser.Delimiter = ";;" }},
		{"quote delimiter", func(c *Config) { c.Parser.Delimiter = `"` }},
		{"newline delimiter", func(c *Config) { c.Parser.Delimiter = "\n" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad encoding", func(c *Config) { c.Logging.Encoding = "xml" }},
		{"bad sample rate", func(c *Config) { c.Tracing.SampleRate = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_TABULA_PATTERN", "yyyyMMddHHmmss")
	path := writeFile(t, "tabula.yaml", `
parser:
  delimiter: ","
  timestamp_pattern: ${TEST_TABULA_PATTERN}
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ",", cfg.Parser.Delimiter)
	assert.Equal(t, "yyyyMMddHHmmss", cfg.Parser.TimestampPattern)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections keep their defaults
	assert.Equal(t, "json", cfg.Logging.Encoding)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))

	_, err = Load(writeFile(t, "bad.yaml", "parser: [\n"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	_, err = Load(writeFile(t, "invalid.yaml", "logging:\n  encoding: xml\n"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Parser.TimestampPattern = "dd.MM.yyyy"
	cfg.Tracing.Enabled = true

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("TEST_TABULA_A", "x")
	assert.Equal(t, "a: x, b: ", substituteEnvVars("a: ${TEST_TABULA_A}, b: ${TEST_TABULA_UNSET}"))
	assert.Equal(t, "no vars", substituteEnvVars("no vars"))
	assert.Equal(t, "open ${brace", substituteEnvVars("open ${brace"))
}

func TestLoadWithViper(t *testing.T) {
	path := writeFile(t, "tabula.yaml", `
parser:
  timestamp_pattern: yyyy-MM-dd
logging:
  level: warn
`)
	t.Setenv("TABULA_LOGGING_LEVEL", "error")

	cfg, err := LoadWithViper(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "yyyy-MM-dd", cfg.Parser.TimestampPattern)
	assert.Equal(t, "\t", cfg.Parser.Delimiter)
	assert.Equal(t, "error", cfg.Logging.Level, "environment overrides the file")
	assert.Equal(t, "tabula", cfg.Tracing.ServiceName)
}

func TestLoadWithViperNoFile(t *testing.T) {
	v := NewViper()
	v.Set("parser.delimiter", ";")

	cfg, err := LoadWithViper(v, "")
	require.NoError(t, err)
	assert.Equal(t, ';', cfg.Parser.DelimiterRune())
}

func TestLoadWithViperMissingFile(t *testing.T) {
	_, err := LoadWithViper(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestLoadWithViperSubstitutesEnv(t *testing.T) {
	t.Setenv("TABULA_TEST_PATTERN", "yyyyMMdd")
	path := writeFile(t, "tabula.yaml", `
parser:
  timestamp_pattern: ${TABULA_TEST_PATTERN}
`)

	cfg, err := LoadWithViper(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "yyyyMMdd", cfg.Parser.TimestampPattern)
}
