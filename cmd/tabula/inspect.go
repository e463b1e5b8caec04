package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/pkg/columnar"
	jsonpool "github.com/ajitpratap0/tabula/pkg/json"
	"github.com/ajitpratap0/tabula/pkg/logger"
)

type columnSummary struct {
	Name       string            `json:"name"`
	Type       columnar.Kind     `json:"type"`
	MetaData   map[string]string `json:"metaData,omitempty"`
	Categories []string          `json:"categories,omitempty"`
}

type frameSummary struct {
	Source  string          `json:"source"`
	Rows    int             `json:"rows"`
	Columns []columnSummary `json:"columns"`
	Head    [][]string      `json:"head,omitempty"`
}

func newInspectCommand(a *app) *cobra.Command {
	var (
		schemaPath string
		asJSON     bool
		head       int
	)
	cmd := &cobra.Command{
		Use:   "inspect [FILE]",
		Short: "Decode a file and describe its columns",
		Long: `Decode a file and print its row count and, for every column, the name, type,
metadata and (for Category columns) the distinct values.

Examples:
  tabula inspect people.tsv --timestamp-pattern yyyyMMddHHmmss
  tabula inspect --schema people.json
  tabula inspect people.arrow --json --head 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logger.ContextWithCommand(commandContext(cmd), "inspect")
			df, src, err := a.loadFrame(ctx, optionalArg(args), schemaPath)
			if err != nil {
				return err
			}

			summary, err := summarize(df, src, head)
			if err != nil {
				return err
			}
			logger.WithContext(ctx).Debug("inspected data frame",
				zap.String("source", src),
				zap.Int("rows", summary.Rows),
				zap.Int("columns", len(summary.Columns)))

			if asJSON {
				return jsonpool.EncodeIndent(cmd.OutOrStdout(), summary)
			}
			return writeSummary(cmd.OutOrStdout(), summary)
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file (JSON or YAML) describing headerless input")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().IntVar(&head, "head", 0, "Also print the first N rows")
	return cmd
}

func summarize(df *columnar.DataFrame, src string, head int) (*frameSummary, error) {
	summary := &frameSummary{
		Source:  src,
		Rows:    df.RowCount(),
		Columns: make([]columnSummary, 0, df.ColumnCount()),
	}
	for _, col := range df.Columns() {
		cs := columnSummary{Name: col.Name(), Type: col.Kind()}
		if md := col.MetaData(); len(md) > 0 {
			cs.MetaData = md
		}
		if cat, ok := col.(*columnar.CategoryColumn); ok {
			cs.Categories = cat.Categories()
		}
		summary.Columns = append(summary.Columns, cs)
	}

	n := min(head, df.RowCount())
	for row := 0; row < n; row++ {
		cells := make([]string, df.ColumnCount())
		for i, col := range df.Columns() {
			v, err := col.AnyValueAt(row)
			if err != nil {
				return nil, err
			}
			cells[i] = formatValue(v)
		}
		summary.Head = append(summary.Head, cells)
	}
	return summary, nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

func writeSummary(w io.Writer, s *frameSummary) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "source:\t%s\n", s.Source)
	fmt.Fprintf(tw, "rows:\t%d\n", s.Rows)
	fmt.Fprintf(tw, "columns:\t%d\n", len(s.Columns))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "COLUMN\tTYPE\tMETADATA\tCATEGORIES")
	for _, c := range s.Columns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Type, formatMetaData(c.MetaData), strings.Join(c.Categories, ", "))
	}

	if len(s.Head) > 0 {
		fmt.Fprintln(tw)
		names := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			names[i] = c.Name
		}
		fmt.Fprintln(tw, strings.Join(names, "\t"))
		for _, row := range s.Head {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	return tw.Flush()
}

func formatMetaData(md map[string]string) string {
	if len(md) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(md))
	for k, v := range md {
		pairs = append(pairs, k+"="+v)
	}
	// map order is random
	slices.Sort(pairs)
	return strings.Join(pairs, ",")
}
