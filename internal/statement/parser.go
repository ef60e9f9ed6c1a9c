// Package statement detects the layout of a bank or card statement and
// normalizes its rows into canonical transactions.
package statement

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gagyebu/gagyebu/internal/model"
	"github.com/gagyebu/gagyebu/internal/workbook"
)

// Diagnostics explains how a statement was read, for review before import.
type Diagnostics struct {
	Format      string          `json:"format"`
	Sheet       string          `json:"sheet"`
	SheetIndex  int             `json:"sheetIndex"`
	HeaderRow   int             `json:"headerRow"`
	Strategy    Strategy        `json:"strategy"`
	Section     *SectionFormat  `json:"section,omitempty"`
	Marker      string          `json:"marker,omitempty"`
	MarkerRow   int             `json:"markerRow"` // -1 without a marker
	Headers     []string        `json:"headers"`
	Columns     model.HeaderMap `json:"columns"`
	RowsScanned int             `json:"rowsScanned"`
	RowsEmitted int             `json:"rowsEmitted"`
	RowsSkipped int             `json:"rowsSkipped"`
}

// Result is a parsed statement.
type Result struct {
	Transactions []model.Transaction `json:"transactions"`
	Diagnostics  Diagnostics         `json:"diagnostics"`
}

// Options configures a Parser. Zero values select defaults.
type Options struct {
	ScanRows int
	Logger   *zerolog.Logger
	Decoders *workbook.Registry
}

// Parser runs the statement pipeline. It holds no per-call state and is safe for concurrent use.
type Parser struct {
	scanRows int
	log      zerolog.Logger
	decoders *workbook.Registry
}

// New creates a Parser.
func New(opts Options) *Parser {
	p := &Parser{
		scanRows: opts.ScanRows,
		log:      zerolog.Nop(),
		decoders: opts.Decoders,
	}
	if p.scanRows <= 0 {
		p.scanRows = DefaultScanRows
	}
	if opts.Logger != nil {
		p.log = *opts.Logger
	}
	if p.decoders == nil {
		p.decoders = workbook.DefaultRegistry()
	}
	return p
}

// Parse decodes statement file bytes and extracts its transactions.
func Parse(data []byte) (*Result, error) {
	return New(Options{}).Parse(data)
}

// Parse decodes statement file bytes and extracts its transactions.
func (p *Parser) Parse(data []byte) (*Result, error) {
	wb, err := p.decoders.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reading statement: %w", err)
	}
	return p.ParseWorkbook(wb)
}

// ParseWorkbook extracts transactions from an already decoded workbook.
// It fails with ErrHeaderNotFound or ErrColumnMappingIncomplete; skipped rows are not errors.
func (p *Parser) ParseWorkbook(wb *model.Workbook) (*Result, error) {
	sel, ok := SelectSheet(wb, p.scanRows)
	if !ok {
		return nil, &HeaderNotFoundError{}
	}
	sheet := wb.Sheets[sel.Index]

	loc, err := LocateHeader(sheet, p.scanRows)
	if err != nil {
		return nil, err
	}

	mapping, err := MapColumns(sheet.Rows[loc.Row])
	if err != nil {
		var mErr *ColumnMappingError
		if errors.As(err, &mErr) {
			mErr.Sheet = sheet.Name
			mErr.HeaderRow = loc.Row
		}
		return nil, err
	}

	ext := ExtractRows(sheet.Rows[loc.Row+1:], mapping)

	diag := Diagnostics{
		Format:      wb.Format,
		Sheet:       sheet.Name,
		SheetIndex:  sel.Index,
		HeaderRow:   loc.Row,
		Strategy:    loc.Strategy,
		MarkerRow:   -1,
		Headers:     mapping.Headers,
		Columns:     mapping.Columns,
		RowsScanned: ext.Scanned,
		RowsEmitted: len(ext.Transactions),
		RowsSkipped: ext.Skipped,
	}
	if loc.Marker != nil {
		section := loc.Marker.Format
		diag.Section = &section
		diag.Marker = loc.Marker.Text
		diag.MarkerRow = loc.Marker.Row
	}

	p.log.Debug().
		Str("format", diag.Format).
		Str("sheet", diag.Sheet).
		Int("header_row", diag.HeaderRow).
		Str("strategy", string(diag.Strategy)).
		Int("emitted", diag.RowsEmitted).
		Int("skipped", diag.RowsSkipped).
		Msg("statement parsed")

	return &Result{Transactions: ext.Transactions, Diagnostics: diag}, nil
}
