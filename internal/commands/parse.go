package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gagyebu/gagyebu/internal/ledger"
	"github.com/gagyebu/gagyebu/internal/model"
	"github.com/gagyebu/gagyebu/internal/statement"
)

// Output formats for parse.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputCSV   = "csv"
)

func newParseCommand() *cobra.Command {
	var output string
	var scanRows int
	var repoDir string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement and print what would be imported",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			if scanRows > 0 {
				ws.cfg.Import.ScanRows = scanRows
			}
			return runParse(cmd.OutOrStdout(), ws, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or csv")
	cmd.Flags().IntVar(&scanRows, "scan-rows", 0, "rows searched for the section marker and header (default from config)")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runParse(out io.Writer, ws *workspace, path, output string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := ws.parser().Parse(data)
	if err != nil {
		return explain(err)
	}

	switch output {
	case outputTable:
		writeDiagnostics(out, res.Diagnostics)
		fmt.Fprintln(out)
		return writeTransactionTable(out, res.Transactions)
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case outputCSV:
		return ledger.WriteTransactions(out, res.Transactions)
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func writeDiagnostics(out io.Writer, d statement.Diagnostics) {
	fmt.Fprintf(out, "Format:   %s\n", d.Format)
	fmt.Fprintf(out, "Sheet:    %s (#%d)\n", d.Sheet, d.SheetIndex)
	fmt.Fprintf(out, "Header:   row %d (%s)\n", d.HeaderRow, d.Strategy)
	if d.Section != nil {
		fmt.Fprintf(out, "Marker:   %q at row %d (%s)\n", d.Marker, d.MarkerRow, *d.Section)
	}
	fmt.Fprintf(out, "Columns:  %s\n", formatColumns(d.Columns))
	fmt.Fprintf(out, "Rows:     %d scanned, %d emitted, %d skipped\n", d.RowsScanned, d.RowsEmitted, d.RowsSkipped)
}

// formatColumns renders a HeaderMap in column order, e.g. "date=0 withdrawalAmount=2".
func formatColumns(cols model.HeaderMap) string {
	roles := make([]model.Role, 0, len(cols))
	for r := range cols {
		roles = append(roles, r)
	}
	slices.SortFunc(roles, func(a, b model.Role) int { return cols[a] - cols[b] })

	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = fmt.Sprintf("%s=%d", r, cols[r])
	}
	return strings.Join(parts, " ")
}

func writeTransactionTable(out io.Writer, txns []model.Transaction) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTIME\tTYPE\tAMOUNT\tMERCHANT")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Date, t.Time, t.Type, t.Amount.String(), t.Merchant)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
