package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gagyebu/gagyebu/internal/config"
	"github.com/gagyebu/gagyebu/internal/logger"
	"github.com/gagyebu/gagyebu/internal/statement"
	"github.com/gagyebu/gagyebu/internal/store"
	"github.com/gagyebu/gagyebu/internal/workbook"
)

// workspace is a ledger directory with its resolved configuration.
type workspace struct {
	root string
	cfg  *config.Config
	log  zerolog.Logger
}

// openWorkspace loads gagyebu.yaml and .env from dir. A missing config file means defaults.
func openWorkspace(cmd *cobra.Command, dir string) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := config.Default("")
	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err == nil {
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(cfg, filepath.Join(root, ".env")); err != nil {
		return nil, err
	}

	return &workspace{
		root: root,
		cfg:  cfg,
		log:  logger.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format),
	}, nil
}

func (w *workspace) parser() *statement.Parser {
	log := w.log
	return statement.New(statement.Options{
		ScanRows: w.cfg.Import.ScanRows,
		Logger:   &log,
	})
}

func (w *workspace) databasePath() string {
	if filepath.IsAbs(w.cfg.Ledger.Database) {
		return w.cfg.Ledger.Database
	}
	return filepath.Join(w.root, w.cfg.Ledger.Database)
}

func (w *workspace) openStore() (*store.Store, error) {
	return store.Open(w.databasePath())
}

// explain turns parse failures into messages a user can act on.
func explain(err error) error {
	var mapping *statement.ColumnMappingError
	switch {
	case errors.Is(err, workbook.ErrUnsupportedFormat):
		return fmt.Errorf("could not detect statement format (expected xls, xlsx, csv or an HTML table export): %w", err)
	case errors.As(err, &mapping):
		return fmt.Errorf("found a header row but could not map its columns [%s]: %w",
			strings.Join(mapping.Headers, " | "), err)
	case errors.Is(err, statement.ErrHeaderNotFound):
		return fmt.Errorf("could not find the transaction table, try a larger --scan-rows: %w", err)
	}
	return err
}
