package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gagyebu/gagyebu/internal/importlog"
)

func newHistoryCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the import log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			return runHistory(cmd.OutOrStdout(), ws)
		},
	}

	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runHistory(out io.Writer, ws *workspace) error {
	entries, err := importlog.Read(ws.root)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No imports recorded")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tBATCH\tFILE\tPARSED\tINSERTED\tDUPLICATES\tERROR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.Timestamp.Local().Format(time.DateTime), e.BatchID, e.File,
			e.Parsed, e.Inserted, e.Duplicates, e.Error)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
