package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gagyebu/gagyebu/internal/api"
	"github.com/gagyebu/gagyebu/internal/importer"
)

func newServeCommand() *cobra.Command {
	var addr string
	var repoDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the statement preview and import API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, repoDir)
			if err != nil {
				return err
			}
			if addr != "" {
				ws.cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), ws)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&repoDir, "repo", ".", "ledger directory")

	return cmd
}

func runServe(ctx context.Context, ws *workspace) error {
	db, err := ws.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	parser := ws.parser()
	app := api.New(&api.Handler{
		Parser:   parser,
		Importer: importer.NewService(ws.root, parser, db, ws.log),
		Ledger:   db,
		Log:      ws.log,
	}, ws.cfg.Server.BodyLimitMB)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			ws.log.Warn().Err(err).Msg("server shutdown")
		}
	}()

	ws.log.Info().Str("addr", ws.cfg.Server.Addr).Str("ledger", ws.root).Msg("serving API")
	if err := app.Listen(ws.cfg.Server.Addr); err != nil {
		return fmt.Errorf("serving API: %w", err)
	}
	return nil
}
