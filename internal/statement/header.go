package statement

import (
	"github.com/gagyebu/gagyebu/internal/cell"
	"github.com/gagyebu/gagyebu/internal/model"
)

// Strategy names how the header row was found.
type Strategy string

const (
	// StrategyMarkerOffset places the header a fixed number of rows below a section marker.
	StrategyMarkerOffset Strategy = "marker-offset"
	// StrategyKeyword takes the first row holding both a date and an amount keyword.
	StrategyKeyword Strategy = "keyword"
)

var (
	dateKeywords   = []string{"일자", "날짜", "일시", "date"}
	amountKeywords = []string{"금액", "출금", "입금", "원금", "amount"}
)

// HeaderLocation is the detected header row of a sheet.
type HeaderLocation struct {
	Row      int
	Strategy Strategy
	Marker   *MarkerHit
}

// LocateHeader finds the header row of sheet, preferring the marker offset over keywords.
func LocateHeader(sheet model.Sheet, limit int) (HeaderLocation, error) {
	if hit, ok := findMarker(sheet.Rows, limit); ok {
		row := hit.Row + hit.Format.HeaderOffset()
		if row < len(sheet.Rows) && !sheet.Rows[row].IsBlank() {
			return HeaderLocation{Row: row, Strategy: StrategyMarkerOffset, Marker: &hit}, nil
		}
	}

	if row, ok := keywordHeaderRow(sheet.Rows, limit); ok {
		return HeaderLocation{Row: row, Strategy: StrategyKeyword}, nil
	}

	scanned := len(head(sheet.Rows, limit))
	return HeaderLocation{}, &HeaderNotFoundError{Sheet: sheet.Name, Scanned: scanned}
}

// keywordHeaderRow returns the first row holding both a date keyword and an amount keyword.
func keywordHeaderRow(rows []model.Row, limit int) (int, bool) {
	for i, row := range head(rows, limit) {
		if isKeywordHeader(row) {
			return i, true
		}
	}
	return 0, false
}

func isKeywordHeader(row model.Row) bool {
	var hasDate, hasAmount bool
	for _, c := range row {
		if c.IsEmpty() {
			continue
		}
		key := cell.Key(c.String())
		hasDate = hasDate || cell.ContainsAny(key, dateKeywords...)
		hasAmount = hasAmount || cell.ContainsAny(key, amountKeywords...)
		if hasDate && hasAmount {
			return true
		}
	}
	return false
}
