package workbook

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gagyebu/gagyebu/internal/model"
)

var zipMagic = []byte("PK\x03\x04")

// isoDateLayouts parse cells stored with t="d".
var isoDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// numFmtKind is what a cell's number format shows.
type numFmtKind uint8

const (
	fmtNumber numFmtKind = iota
	fmtDate
	fmtTime
)

// XLSXDecoder reads Office Open XML workbooks.
type XLSXDecoder struct{}

// Format returns the decoder name.
func (d *XLSXDecoder) Format() string { return "xlsx" }

// Sniff matches the ZIP container signature.
func (d *XLSXDecoder) Sniff(data []byte) bool { return bytes.HasPrefix(data, zipMagic) }

// Decode reads every sheet. Numbers become numeric cells, date-formatted numbers
// become date cells, everything else keeps its formatted text.
func (d *XLSXDecoder) Decode(data []byte) (*model.Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{ShortDatePattern: "yyyy-mm-dd"})
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	r := &xlsxReader{file: f, formats: map[int]numFmtKind{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}

	wb := &model.Workbook{}
	for _, name := range f.GetSheetList() {
		text, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}

		sheet := model.Sheet{Name: name, Rows: make([]model.Row, max(len(text), len(raw)))}
		for i := range sheet.Rows {
			row := make(model.Row, max(rowLen(text, i), rowLen(raw, i)))
			for j := range row {
				row[j] = r.cell(name, i, j, cellValue(text, i, j), cellValue(raw, i, j))
			}
			sheet.Rows[i] = trimRow(row)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

type xlsxReader struct {
	file     *excelize.File
	date1904 bool
	formats  map[int]numFmtKind // by style ID
}

func (r *xlsxReader) cell(sheet string, row, col int, text, raw string) model.Cell {
	if strings.TrimSpace(raw) == "" {
		return model.TextCell(text)
	}
	if text == "" {
		text = raw
	}
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return model.TextCell(text)
	}
	typ, err := r.file.GetCellType(sheet, axis)
	if err != nil {
		return model.TextCell(text)
	}

	switch typ {
	case excelize.CellTypeDate:
		for _, layout := range isoDateLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return model.DateCell(serialFromTime(t), t)
			}
		}
		return model.TextCell(text)
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeFormula:
	default:
		return model.TextCell(text)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return model.TextCell(text)
	}
	switch r.numFmt(sheet, axis) {
	case fmtDate:
		t, err := excelize.ExcelDateToTime(n, r.date1904)
		if err != nil {
			return model.TextCell(text)
		}
		return model.DateCell(n, t)
	case fmtTime:
		return model.TextCell(text)
	}
	return model.NumberCell(n)
}

func (r *xlsxReader) numFmt(sheet, axis string) numFmtKind {
	styleID, err := r.file.GetCellStyle(sheet, axis)
	if err != nil {
		return fmtNumber
	}
	if kind, ok := r.formats[styleID]; ok {
		return kind
	}

	kind := fmtNumber
	if style, err := r.file.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			kind = classifyNumFmt(*style.CustomNumFmt)
		} else {
			kind = builtinNumFmt(style.NumFmt)
		}
	}
	r.formats[styleID] = kind
	return kind
}

// builtinNumFmt classifies the predefined format IDs, including the CJK date ones.
func builtinNumFmt(id int) numFmtKind {
	switch {
	case id >= 14 && id <= 17, id == 22, id >= 27 && id <= 36, id >= 50 && id <= 58:
		return fmtDate
	case id >= 18 && id <= 21, id >= 45 && id <= 47:
		return fmtTime
	}
	return fmtNumber
}

// classifyNumFmt reads a custom format code. Literals, escapes and bracketed
// sections like [$-412] or [Red] are ignored before looking for date tokens.
func classifyNumFmt(code string) numFmtKind {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case r == '\\':
			escaped = true
		default:
			b.WriteRune(r)
		}
	}

	tokens := strings.ToLower(b.String())
	switch {
	case strings.ContainsAny(tokens, "yd"):
		return fmtDate
	case strings.ContainsAny(tokens, "hs"):
		return fmtTime
	}
	return fmtNumber
}

func rowLen(rows [][]string, i int) int {
	if i >= len(rows) {
		return 0
	}
	return len(rows[i])
}

func cellValue(rows [][]string, i, j int) string {
	if j >= rowLen(rows, i) {
		return ""
	}
	return rows[i][j]
}
