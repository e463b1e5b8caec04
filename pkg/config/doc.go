// Package config provides the configuration system for tabula.
//
// A single Config structure covers every tunable of the library and the
// command line tool:
//
//   - Parser: delimiter, default timestamp pattern, cell trimming
//   - Logging: zap level, encoding and outputs
//   - Metrics: Prometheus instrumentation toggle
//   - Tracing: OpenTelemetry span export
//
// # Usage
//
// ## Loading a YAML file
//
//	cfg, err := config.Load("tabula.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// ## Environment Variable Substitution
//
//	# tabula.yaml
//	parser:
//	  timestamp_pattern: ${TABULA_DATE_PATTERN}
//
// ## Layered loading with viper
//
// LoadWithViper resolves defaults, the optional file, TABULA_* variables
// (TABULA_PARSER_DELIMITER, TABULA_LOGGING_LEVEL, ...) and bound flags:
//
//	v := config.NewViper()
//	_ = v.BindPFlag("logging.level", cmd.Flags().Lookup("log-level"))
//	cfg, err := config.LoadWithViper(v, path)
//
// Both loaders validate the result before returning it.
package config
