package statement

import (
	"github.com/gagyebu/gagyebu/internal/model"
)

// DefaultScanRows bounds every marker and header search.
const DefaultScanRows = 50

// MarkerHit locates a section marker cell.
type MarkerHit struct {
	Sheet  int
	Row    int
	Text   string
	Format SectionFormat
}

// Selection is the sheet chosen to hold transaction rows.
type Selection struct {
	Index  int
	Marker *MarkerHit
}

// findMarker returns the first marker cell within the first limit rows.
func findMarker(rows []model.Row, limit int) (MarkerHit, bool) {
	for i, row := range head(rows, limit) {
		for _, c := range row {
			if c.IsEmpty() {
				continue
			}
			text := c.String()
			if isSectionMarker(text) {
				return MarkerHit{Row: i, Text: text, Format: ClassifyMarker(text)}, true
			}
		}
	}
	return MarkerHit{}, false
}

// FindSectionMarker scans sheets in workbook order and returns the first marker hit.
func FindSectionMarker(wb *model.Workbook, limit int) (MarkerHit, bool) {
	for i, sheet := range wb.Sheets {
		if hit, ok := findMarker(sheet.Rows, limit); ok {
			hit.Sheet = i
			return hit, true
		}
	}
	return MarkerHit{}, false
}

// SelectSheet picks the sheet most likely to hold transactions: the first sheet with a
// section marker, else the first sheet with a keyword header row, else the first sheet.
// It returns false only for a workbook without sheets.
func SelectSheet(wb *model.Workbook, limit int) (Selection, bool) {
	if len(wb.Sheets) == 0 {
		return Selection{}, false
	}
	if hit, ok := FindSectionMarker(wb, limit); ok {
		return Selection{Index: hit.Sheet, Marker: &hit}, true
	}
	for i, sheet := range wb.Sheets {
		if _, ok := keywordHeaderRow(sheet.Rows, limit); ok {
			return Selection{Index: i}, true
		}
	}
	return Selection{Index: 0}, true
}

func head(rows []model.Row, limit int) []model.Row {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
