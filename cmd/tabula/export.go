package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/pkg/compression"
	"github.com/ajitpratap0/tabula/pkg/formats/arrowfmt"
	"github.com/ajitpratap0/tabula/pkg/logger"
	"github.com/ajitpratap0/tabula/pkg/metrics"
)

func newExportCommand(a *app) *cobra.Command {
	var (
		schemaPath string
		out        string
		format     string
		codec      string
	)
	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Decode a file and write it as Arrow or Parquet",
		Long: `Decode a file and write the resulting data frame as an Arrow IPC file or a
Parquet file. The format follows the --out extension unless --format is given.

Examples:
  tabula export people.tsv --out people.arrow
  tabula export --schema people.json --out people.parquet --compression zstd`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wc := &arrowfmt.WriterConfig{
				Format:      arrowfmt.FormatFromPath(out),
				Compression: compression.Algorithm(strings.ToLower(codec)),
			}
			if format != "" {
				f, err := arrowfmt.ParseFormat(format)
				if err != nil {
					return err
				}
				wc.Format = f
			}

			ctx := logger.ContextWithCommand(commandContext(cmd), "export")
			df, src, err := a.loadFrame(ctx, optionalArg(args), schemaPath)
			if err != nil {
				return err
			}

			timer := metrics.NewTimer("export")
			if err := arrowfmt.WriteFile(out, df, wc); err != nil {
				return err
			}
			logger.WithContext(ctx).Info("exported data frame",
				zap.String("source", src),
				zap.String("out", out),
				zap.String("format", string(wc.Format)),
				zap.String("compression", string(wc.Compression)),
				zap.Int("rows", df.RowCount()),
				zap.Duration("duration", timer.Stop()))

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows x %d columns to %s (%s)\n",
				df.RowCount(), df.ColumnCount(), out, arrowfmt.GetFormatInfo(wc.Format).Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (JSON or YAML) describing headerless input")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (required)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: arrow or parquet (default from --out extension)")
	cmd.Flags().StringVar(&codec, "compression", string(compression.None), "Body compression: none, lz4, zstd (Arrow); none, snappy, gzip, zstd, lz4 (Parquet)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
