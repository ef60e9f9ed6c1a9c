package model

import (
	"strconv"
	"strings"
	"time"
)

// CellKind classifies a raw spreadsheet cell.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	// CellDate is a number shown with a date format. Text holds the date, Number the serial.
	CellDate
)

// Cell is a single raw spreadsheet value.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell returns a text cell, or an empty cell for blank input.
func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// DateCell returns a date-formatted numeric cell. serial is the spreadsheet day
// number t was rendered from. Serials below 1 carry only a time of day.
func DateCell(serial float64, t time.Time) Cell {
	var text string
	switch {
	case serial < 1:
		text = t.Format("15:04:05")
	case t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0:
		text = t.Format(DateLayout)
	default:
		text = t.Format(DateLayout + " 15:04:05")
	}
	return Cell{Kind: CellDate, Text: text, Number: serial}
}

// IsNumeric reports whether the cell carries a number, date-formatted or not.
func (c Cell) IsNumeric() bool {
	return c.Kind == CellNumber || c.Kind == CellDate
}

// String renders the cell the way it would read in the sheet.
func (c Cell) String() string {
	switch c.Kind {
	case CellText, CellDate:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// IsEmpty reports whether the cell holds no visible value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty || (c.Kind == CellText && strings.TrimSpace(c.Text) == "")
}

// Row is an ordered sequence of cells.
type Row []Cell

// At returns the cell at col, or an empty cell when the row is shorter.
func (r Row) At(col int) Cell {
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// TextRow builds a row of text cells.
func TextRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = TextCell(v)
	}
	return row
}

// Sheet is a named grid of rows.
type Sheet struct {
	Name string
	Rows []Row
}

// Workbook is a decoded spreadsheet file. It is not modified after decoding.
type Workbook struct {
	Format string
	Sheets []Sheet
}
