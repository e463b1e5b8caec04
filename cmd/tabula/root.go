package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/pkg/columnar"
	"github.com/ajitpratap0/tabula/pkg/config"
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/formats/arrowfmt"
	"github.com/ajitpratap0/tabula/pkg/logger"
	"github.com/ajitpratap0/tabula/pkg/mmap"
	"github.com/ajitpratap0/tabula/pkg/observability"
	"github.com/ajitpratap0/tabula/pkg/parser"
	"github.com/ajitpratap0/tabula/pkg/schema"
	"github.com/ajitpratap0/tabula/pkg/source"
)

// app carries the state shared by every subcommand.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "tabula",
		Short: "Tabula - typed columnar data frames from tab-delimited text",
		Long: `Tabula decodes tab-delimited text into typed, immutable columnar data frames.
Input either carries its own header (a names row followed by a types row) or is
described by a JSON or YAML schema file.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to YAML configuration file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("trace", false, "Write OpenTelemetry spans to stderr")
	flags.String("delimiter", "", "Field delimiter (default tab)")
	flags.String("timestamp-pattern", "", "Date-time pattern for Timestamp cells, e.g. yyyyMMddHHmmss")

	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("tracing.enabled", flags.Lookup("trace"))
	_ = a.v.BindPFlag("parser.delimiter", flags.Lookup("delimiter"))
	_ = a.v.BindPFlag("parser.timestamp_pattern", flags.Lookup("timestamp-pattern"))

	root.AddCommand(
		newInspectCommand(a),
		newExportCommand(a),
		newInferCommand(a),
		newVersionCommand(),
	)
	return root
}

// setup resolves the configuration and starts logging and tracing.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadWithViper(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(logger.FromConfig(cfg.Logging)); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to initialize logger")
	}

	if cfg.Tracing.Enabled {
		tc := observability.FromConfig(cfg.Tracing, version)
		tc.Writer = cmd.ErrOrStderr()
		if err := observability.InitTracing(commandContext(cmd), tc); err != nil {
			return errors.Wrap(err, errors.ErrorTypeConfig, "failed to initialize tracing")
		}
	}

	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("config_file", a.configFile),
		zap.Bool("tracing", cfg.Tracing.Enabled),
		zap.Bool("metrics", cfg.Metrics.Enabled))
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if err := observability.Shutdown(commandContext(cmd)); err != nil {
		logger.Warn("failed to flush traces", zap.Error(err))
	}
	// syncing stderr fails on some platforms
	_ = logger.Sync()
	return nil
}

func (a *app) newParser() (*parser.Parser, error) {
	return parser.New(parser.WithConfig(a.cfg))
}

// loadFrame decodes the input named on the command line. With a schema,
// path holds the data rows and defaults to the schema's data file. Arrow
// and Parquet files are read back as they were exported.
func (a *app) loadFrame(ctx context.Context, path, schemaPath string) (*columnar.DataFrame, string, error) {
	p, err := a.newParser()
	if err != nil {
		return nil, "", err
	}

	if schemaPath != "" {
		s, err := schema.Load(schemaPath)
		if err != nil {
			return nil, "", err
		}
		if path == "" {
			df, err := p.ParseSchemaFile(ctx, s, filepath.Dir(schemaPath))
			return df, source.Resolve(filepath.Dir(schemaPath), s.DataFileName), err
		}
		f, err := source.Open(path)
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		df, err := p.ParseWithSchema(logger.ContextWithSource(ctx, path), s, f)
		return df, path, err
	}

	if path == "" {
		return nil, "", errors.New(errors.ErrorTypeConfig, "a data file or --schema is required")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".arrow", ".parquet", ".pq":
		df, err := readColumnar(ctx, path)
		return df, path, err
	default:
		df, err := p.ParseFile(ctx, path)
		return df, path, err
	}
}

func readColumnar(ctx context.Context, path string) (*columnar.DataFrame, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	if arrowfmt.FormatFromPath(path) == arrowfmt.Parquet {
		return arrowfmt.ReadParquet(ctx, m.NewReader())
	}
	return arrowfmt.ReadArrow(m.NewReader())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// optionalArg returns the first positional argument, if any.
func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
