package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gagyebu/gagyebu/internal/id"
	"github.com/gagyebu/gagyebu/internal/ledger"
)

func newRestoreCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "restore <ledger.csv>",
		Short: "Load transactions from a file written by export",
		Long: `Load transactions from a CSV file written by export. Rows already in the
ledger are counted as duplicates. The restored rows form one batch that
undo can remove.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			return runRestore(cmd.OutOrStdout(), ws, args[0])
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runRestore(out io.Writer, ws *workspace, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ledger.ReadTransactions(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	db, err := ws.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.SaveAll(id.NewBatchID(), filepath.Base(path), txns)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "RESTORED %s: %d new, %d duplicate (batch %s)\n",
		filepath.Base(path), res.Inserted, res.Duplicates, res.BatchID)
	return nil
}
