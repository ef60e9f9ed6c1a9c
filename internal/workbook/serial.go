package workbook

import (
	"math"
	"regexp"
	"time"
)

// excelEpoch is day zero of the 1900 date system as both spreadsheet libraries count it.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// rfc3339Cell is how extrame/xls renders numbers under a user-defined format.
var rfc3339Cell = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)

// serialFromTime converts a rendered date back to its day number. The xls library
// truncates to whole seconds, so the result is rounded to four decimals, enough to
// recover amounts with two.
func serialFromTime(t time.Time) float64 {
	days := t.Sub(excelEpoch).Seconds() / 86400
	return math.Round(days*1e4) / 1e4
}
