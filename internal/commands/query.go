package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gagyebu/gagyebu/internal/ledger"
)

func newListCommand() *cobra.Command {
	var month string
	var repoDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			return runList(cmd.OutOrStdout(), ws, month)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to list (YYYY-MM), all when empty")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runList(out io.Writer, ws *workspace, month string) error {
	db, err := ws.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	txns, err := db.List(month)
	if err != nil {
		return err
	}
	return writeTransactionTable(out, txns)
}

func newSummaryCommand() *cobra.Command {
	var month string
	var repoDir string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total income and expense for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			return runSummary(cmd.OutOrStdout(), ws, month)
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to total (YYYY-MM), all when empty")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runSummary(out io.Writer, ws *workspace, month string) error {
	db, err := ws.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	sum, err := db.Summarize(month)
	if err != nil {
		return err
	}

	label := sum.Month
	if label == "" {
		label = "all"
	}
	fmt.Fprintf(out, "Month:    %s\n", label)
	fmt.Fprintf(out, "Income:   %s (%d)\n", sum.Income, sum.IncomeCount)
	fmt.Fprintf(out, "Expense:  %s (%d)\n", sum.Expense, sum.ExpenseCount)
	fmt.Fprintf(out, "Net:      %s\n", sum.Net)
	return nil
}

func newExportCommand() *cobra.Command {
	var month string
	var file string
	var repoDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			if file == "" {
				return runExport(cmd.OutOrStdout(), ws, month)
			}

			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("creating %s: %w", file, err)
			}
			if err := runExport(f, ws, month); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to export (YYYY-MM), all when empty")
	cmd.Flags().StringVarP(&file, "file", "f", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runExport(out io.Writer, ws *workspace, month string) error {
	db, err := ws.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	txns, err := db.List(month)
	if err != nil {
		return err
	}
	return ledger.WriteTransactions(out, txns)
}
