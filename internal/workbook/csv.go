package workbook

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gagyebu/gagyebu/internal/model"
)

// CSVDecoder reads comma-separated exports as a single sheet.
type CSVDecoder struct{}

// Format returns the decoder name.
func (d *CSVDecoder) Format() string { return "csv" }

// Sniff accepts anything; CSV is the fallback format.
func (d *CSVDecoder) Sniff(data []byte) bool { return true }

// Decode reads all records; ragged rows are allowed.
func (d *CSVDecoder) Decode(data []byte) (*model.Workbook, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	sheet := model.Sheet{Name: "csv", Rows: make([]model.Row, len(records))}
	for i, rec := range records {
		sheet.Rows[i] = trimRow(model.TextRow(rec...))
	}
	return &model.Workbook{Sheets: []model.Sheet{sheet}}, nil
}
