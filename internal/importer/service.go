package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/gagyebu/gagyebu/internal/id"
	"github.com/gagyebu/gagyebu/internal/importlog"
	"github.com/gagyebu/gagyebu/internal/model"
	"github.com/gagyebu/gagyebu/internal/statement"
	"github.com/gagyebu/gagyebu/internal/store"
)

// Saver stores parsed transactions.
type Saver interface {
	SaveAll(batchID, source string, txns []model.Transaction) (store.SaveResult, error)
}

// Outcome is the result of importing one statement file.
type Outcome struct {
	File    string
	BatchID string
	Result  *statement.Result
	Saved   store.SaveResult
	Err     error
}

// Service parses statement files and hands their transactions to a Saver.
type Service struct {
	root   string
	parser *statement.Parser
	saver  Saver
	log    zerolog.Logger
	now    func() time.Time
}

// NewService creates an import Service rooted at a ledger directory.
func NewService(root string, parser *statement.Parser, saver Saver, log zerolog.Logger) *Service {
	return &Service{root: root, parser: parser, saver: saver, log: log, now: time.Now}
}

// ImportFile parses path and, unless dryRun, saves its transactions.
func (s *Service) ImportFile(path string, dryRun bool) Outcome {
	data, err := os.ReadFile(path)
	if err != nil {
		name := filepath.Base(path)
		return Outcome{File: name, Err: fmt.Errorf("reading %s: %w", name, err)}
	}
	return s.ImportData(filepath.Base(path), data, dryRun)
}

// ImportData parses an uploaded or already-read statement named name.
func (s *Service) ImportData(name string, data []byte, dryRun bool) Outcome {
	out := Outcome{File: name, BatchID: id.NewBatchID()}

	res, err := s.parser.Parse(data)
	if err != nil {
		out.Err = fmt.Errorf("parsing %s: %w", out.File, err)
		return out
	}
	out.Result = res

	if dryRun {
		return out
	}

	saved, err := s.saver.SaveAll(out.BatchID, out.File, res.Transactions)
	if err != nil {
		out.Err = fmt.Errorf("saving %s: %w", out.File, err)
		return out
	}
	out.Saved = saved
	return out
}

// ImportAll imports every statement in the import directory. A failing file does not
// stop the others; its error is reported in its Outcome and in the import log.
// Imported files are moved to import/processed/.
func (s *Service) ImportAll(dryRun bool) ([]Outcome, error) {
	files, err := Scan(s.root)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(files))
	entries := make([]importlog.Entry, 0, len(files))
	for _, f := range files {
		out := s.ImportFile(f.Path, dryRun)
		outcomes = append(outcomes, out)

		if out.Err != nil {
			s.log.Warn().Err(out.Err).Str("file", f.Name).Msg("statement not imported")
		} else {
			s.log.Info().
				Str("file", f.Name).
				Int("parsed", len(out.Result.Transactions)).
				Int("inserted", out.Saved.Inserted).
				Int("duplicates", out.Saved.Duplicates).
				Msg("statement imported")
		}

		if dryRun {
			continue
		}
		entries = append(entries, s.LogEntry(out))
		if out.Err == nil {
			if err := MarkProcessed(s.root, f.Name); err != nil {
				// Already saved; the log must still show it.
				s.Record(entries...)
				return outcomes, err
			}
		}
	}

	s.Record(entries...)
	return outcomes, nil
}

// Record appends entries to the import log. A write failure is logged, not returned.
func (s *Service) Record(entries ...importlog.Entry) {
	if len(entries) == 0 {
		return
	}
	if err := importlog.Append(s.root, entries); err != nil {
		s.log.Warn().Err(err).Msg("failed to write import log")
	}
}

// LogEntry builds the import log entry for out.
func (s *Service) LogEntry(out Outcome) importlog.Entry {
	e := importlog.Entry{
		Timestamp:  s.now().UTC(),
		BatchID:    out.BatchID,
		File:       out.File,
		Inserted:   out.Saved.Inserted,
		Duplicates: out.Saved.Duplicates,
	}
	if out.Result != nil {
		d := out.Result.Diagnostics
		e.Sheet = d.Sheet
		e.HeaderRow = d.HeaderRow
		e.Strategy = string(d.Strategy)
		e.Parsed = d.RowsEmitted
		e.Skipped = d.RowsSkipped
	}
	if out.Err != nil {
		e.Error = out.Err.Error()
	}
	return e
}
