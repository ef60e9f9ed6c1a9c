package statement

import (
	"github.com/gagyebu/gagyebu/internal/cell"
)

// SectionFormat tells how far below its section marker an issuer puts the header row.
type SectionFormat int

const (
	// FormatGeneric has the header directly under the marker.
	FormatGeneric SectionFormat = iota
	// FormatDetailedWithSubheader has title and subtitle rows between marker and header.
	FormatDetailedWithSubheader
)

const (
	genericHeaderOffset  = 1
	detailedHeaderOffset = 3
)

// HeaderOffset is the number of rows from the marker row to the header row.
func (f SectionFormat) HeaderOffset() int {
	if f == FormatDetailedWithSubheader {
		return detailedHeaderOffset
	}
	return genericHeaderOffset
}

func (f SectionFormat) String() string {
	if f == FormatDetailedWithSubheader {
		return "detailed"
	}
	return "generic"
}

// MarshalText renders the format name in JSON diagnostics.
func (f SectionFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

var (
	// detailedMarkers open "detailed usage history" sections.
	detailedMarkers = []string{"상세이용내역", "상세 이용내역", "이용상세내역"}
	// sectionMarkers is every marker that identifies a transaction section.
	sectionMarkers = append([]string{"거래내역", "거래 내역", "이용내역"}, detailedMarkers...)
)

// ClassifyMarker maps the text of a marker cell to its section format.
func ClassifyMarker(text string) SectionFormat {
	if cell.ContainsAny(cell.Key(text), detailedMarkers...) {
		return FormatDetailedWithSubheader
	}
	return FormatGeneric
}

// isSectionMarker reports whether a cell's text contains any known marker.
func isSectionMarker(text string) bool {
	return cell.ContainsAny(cell.Key(text), sectionMarkers...)
}
