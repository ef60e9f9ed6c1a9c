// Package cell turns raw spreadsheet values into canonical dates, amounts and header keys.
package cell

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

const dateLayout = "2006-01-02"

var (
	// 2024-01-15, 2024.1.5, 2024/01/15 and the "2024.01.15." form some issuers print.
	longDate = regexp.MustCompile(`^(\d{4})([-./])(\d{1,2})([-./])(\d{1,2})\.?$`)
	// 1/15/24, the default short date format of spreadsheet apps.
	shortDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)
)

// twoDigitYearPivot splits two-digit years: >= pivot is 19YY, below is 20YY.
const twoDigitYearPivot = 70

// NormalizeDate converts a raw date cell to YYYY-MM-DD.
// Anything after the first space (a time of day) is ignored.
// It returns false when the text is not a recognizable calendar date.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "", false
	}

	if m := longDate.FindStringSubmatch(s); m != nil {
		if m[2] != m[4] {
			return "", false
		}
		return buildDate(m[1], m[3], m[5])
	}

	if m := shortDate.FindStringSubmatch(s); m != nil {
		yy, _ := strconv.Atoi(m[3])
		year := 2000 + yy
		if yy >= twoDigitYearPivot {
			year = 1900 + yy
		}
		return buildDate(strconv.Itoa(year), m[1], m[2])
	}

	return "", false
}

func buildDate(year, month, day string) (string, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	out := fmt.Sprintf("%04d-%02d-%02d", y, m, d)

	// Reject components that do not round-trip (month 13, Feb 30, ...).
	t, err := time.Parse(dateLayout, out)
	if err != nil || t.Format(dateLayout) != out {
		return "", false
	}
	return out, true
}

// NormalizeAmount converts a raw amount cell to a decimal.
// Thousands separators, a trailing "원" and a leading "₩" are removed.
// Blank, "-" and non-numeric input all give zero.
func NormalizeAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "원")
	s = strings.TrimPrefix(s, "₩")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Clean strips line breaks, trims, and NFC-normalizes cell text.
func Clean(raw string) string {
	s := strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(raw)
	return norm.NFC.String(strings.TrimSpace(s))
}

// Key is the lowercased Clean form used for keyword matching.
func Key(raw string) string {
	return strings.ToLower(Clean(raw))
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
