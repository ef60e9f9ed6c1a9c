package workbook

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/gagyebu/gagyebu/internal/model"
)

// HTMLDecoder reads HTML tables, which several Korean banks save with an .xls extension.
// Each <table> becomes one sheet.
type HTMLDecoder struct{}

// Format returns the decoder name.
func (d *HTMLDecoder) Format() string { return "html" }

// Sniff matches markup that contains a table.
func (d *HTMLDecoder) Sniff(data []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if !bytes.HasPrefix(trimmed, []byte("<")) {
		return false
	}
	return bytes.Contains(bytes.ToLower(trimmed), []byte("<table"))
}

// Decode converts each table's tr/th/td grid into rows.
func (d *HTMLDecoder) Decode(data []byte) (*model.Workbook, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	wb := &model.Workbook{}
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		sheet := model.Sheet{Name: fmt.Sprintf("table%d", i+1)}
		rows := table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
			// Rows of nested tables belong to their own sheet.
			return tr.Closest("table").IsSelection(table)
		})
		rows.Each(func(_ int, tr *goquery.Selection) {
			var row model.Row
			tr.ChildrenFiltered("th, td").Each(func(_ int, td *goquery.Selection) {
				row = append(row, model.TextCell(td.Text()))
			})
			sheet.Rows = append(sheet.Rows, trimRow(row))
		})
		wb.Sheets = append(wb.Sheets, sheet)
	})
	return wb, nil
}
