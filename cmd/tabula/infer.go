package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/pkg/compression"
	"github.com/ajitpratap0/tabula/pkg/errors"
	jsonpool "github.com/ajitpratap0/tabula/pkg/json"
	"github.com/ajitpratap0/tabula/pkg/logger"
	"github.com/ajitpratap0/tabula/pkg/parser"
	"github.com/ajitpratap0/tabula/pkg/schema"
	"github.com/ajitpratap0/tabula/pkg/source"
)

func newInferCommand(a *app) *cobra.Command {
	var (
		out    string
		sample int
	)
	cmd := &cobra.Command{
		Use:   "infer FILE",
		Short: "Propose a schema for a file with a names row but no types row",
		Long: `Read a file whose first row names the columns, examine the data rows and
propose a schema. Without --out the schema is printed as JSON and names no data file.

With --out the schema is saved as JSON or YAML depending on its extension, and the
data rows without the names row are written next to it as NAME.rows.EXT. The saved
schema points at that file, so it can be decoded with --schema.

Example:
  tabula infer cities.tsv --out cities.yaml
  tabula inspect --schema cities.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.newParser()
			if err != nil {
				return err
			}
			ctx := logger.ContextWithCommand(commandContext(cmd), "infer")

			s, err := inferFile(ctx, p, args[0], sample)
			if err != nil {
				return err
			}
			if out == "" {
				return jsonpool.EncodeIndent(cmd.OutOrStdout(), s)
			}

			rowsPath := rowsFileFor(args[0], out)
			n, err := writeRows(ctx, p, args[0], rowsPath)
			if err != nil {
				return err
			}
			s.DataFileName = filepath.Base(rowsPath)
			if err := schema.Save(out, s); err != nil {
				return err
			}

			logger.Info("inferred schema",
				zap.String("schema", out),
				zap.String("data_file", rowsPath),
				zap.Int("rows", n))
			fmt.Fprintf(cmd.OutOrStdout(), "wrote schema with %d fields to %s and %d rows to %s\n",
				len(s.Fields), out, n, rowsPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the schema to this file (.json, .yaml or .yml) and the data rows beside it")
	cmd.Flags().IntVar(&sample, "sample", 1000, "Number of data rows to examine (0 for all)")
	return cmd
}

func inferFile(ctx context.Context, p *parser.Parser, path string, sample int) (*schema.Schema, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.InferSchema(logger.ContextWithSource(ctx, f.Path()), f, "", sample)
}

func writeRows(ctx context.Context, p *parser.Parser, path, rowsPath string) (int, error) {
	if filepath.Clean(path) == filepath.Clean(rowsPath) {
		return 0, errors.New(errors.ErrorTypeConfig, "data rows would overwrite the input file").
			WithDetail("path", path)
	}

	f, err := source.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w, err := source.Create(rowsPath)
	if err != nil {
		return 0, err
	}
	n, err := p.WriteDataRows(logger.ContextWithSource(ctx, f.Path()), f, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// rowsFileFor names the data rows file written beside schemaPath, e.g.
// "cities.tsv.gz" and "out/cities.yaml" give "out/cities.rows.tsv.gz".
func rowsFileFor(inputPath, schemaPath string) string {
	alg, name := compression.FromPath(filepath.Base(inputPath))
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(filepath.Base(schemaPath), filepath.Ext(schemaPath))
	return filepath.Join(filepath.Dir(schemaPath), stem+".rows"+ext+alg.Extension())
}
