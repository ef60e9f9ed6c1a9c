package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gagyebu/gagyebu/internal/id"
)

func newUndoCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "undo <batch-id>",
		Short: "Remove every transaction saved by one import batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			return runUndo(cmd.OutOrStdout(), ws, args[0])
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runUndo(out io.Writer, ws *workspace, raw string) error {
	batchID, err := id.ParseBatchID(raw)
	if err != nil {
		return err
	}

	db, err := ws.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.DeleteBatch(batchID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Removed %d transactions from batch %s\n", n, batchID)
	return nil
}
