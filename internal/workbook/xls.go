package workbook

import (
	"bytes"
	"fmt"
	"time"

	"github.com/extrame/xls"

	"github.com/gagyebu/gagyebu/internal/model"
)

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// XLSDecoder reads legacy BIFF workbooks.
type XLSDecoder struct{}

// Format returns the decoder name.
func (d *XLSDecoder) Format() string { return "xls" }

// Sniff matches the OLE2 compound document signature.
func (d *XLSDecoder) Sniff(data []byte) bool { return bytes.HasPrefix(data, oleMagic) }

// Decode reads every sheet. The xls library panics on some malformed files;
// those panics become errors.
func (d *XLSDecoder) Decode(data []byte) (wb *model.Workbook, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			wb, err = nil, fmt.Errorf("malformed xls: %v", rec)
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening xls: %w", err)
	}

	wb = &model.Workbook{}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		sheet := model.Sheet{Name: ws.Name}
		for r := 0; r <= int(ws.MaxRow); r++ {
			xr := ws.Row(r)
			if xr == nil {
				sheet.Rows = append(sheet.Rows, nil)
				continue
			}
			row := make(model.Row, 0, xr.LastCol()+1)
			for c := 0; c <= xr.LastCol(); c++ {
				row = append(row, xlsCell(xr.Col(c)))
			}
			sheet.Rows = append(sheet.Rows, trimRow(row))
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}

// xlsCell undoes the library's rendering of numbers under user-defined formats.
// Those come back as RFC3339 timestamps whether the format shows a date or an
// amount like #,##0, so the cell keeps both the date text and the original serial.
func xlsCell(s string) model.Cell {
	if !rfc3339Cell.MatchString(s) {
		return model.TextCell(s)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return model.TextCell(s)
	}
	return model.DateCell(serialFromTime(t), t)
}
