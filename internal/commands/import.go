package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gagyebu/gagyebu/internal/importer"
)

func newImportCommand() *cobra.Command {
	var dryRun bool
	var repoDir string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import every statement in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			return runImport(cmd.OutOrStdout(), ws, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse without saving or moving files")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runImport(out io.Writer, ws *workspace, dryRun bool) error {
	db, err := ws.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := importer.NewService(ws.root, ws.parser(), db, ws.log)
	outcomes, err := svc.ImportAll(dryRun)
	if err != nil {
		return err
	}
	if len(outcomes) == 0 {
		fmt.Fprintln(out, "No statements in import/")
		return nil
	}

	failed := 0
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
			fmt.Fprintf(out, "FAILED  %s: %v\n", o.File, explain(o.Err))
		case dryRun:
			d := o.Result.Diagnostics
			fmt.Fprintf(out, "PARSED  %s: %d transactions (sheet %q, header row %d, %d skipped)\n",
				o.File, d.RowsEmitted, d.Sheet, d.HeaderRow, d.RowsSkipped)
		default:
			fmt.Fprintf(out, "IMPORTED %s: %d new, %d duplicate (batch %s)\n",
				o.File, o.Saved.Inserted, o.Saved.Duplicates, o.BatchID)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(outcomes))
	}
	return nil
}
