package statement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagyebu/gagyebu/internal/model"
)

var (
	// ErrHeaderNotFound means no row in the scan window looked like a statement header.
	ErrHeaderNotFound = errors.New("statement header not found")
	// ErrColumnMappingIncomplete means a header was found but lacks a date or amount column.
	ErrColumnMappingIncomplete = errors.New("statement column mapping incomplete")
)

// HeaderNotFoundError reports where the header search gave up.
type HeaderNotFoundError struct {
	Sheet   string
	Scanned int
}

func (e *HeaderNotFoundError) Error() string {
	switch {
	case e.Sheet == "" && e.Scanned == 0:
		return "workbook has no sheets"
	case e.Scanned == 0:
		return fmt.Sprintf("sheet %q is empty", e.Sheet)
	}
	return fmt.Sprintf("no header row in the first %d rows of sheet %q", e.Scanned, e.Sheet)
}

// Is makes errors.Is(err, ErrHeaderNotFound) hold.
func (e *HeaderNotFoundError) Is(target error) bool { return target == ErrHeaderNotFound }

// ColumnMappingError carries the partial mapping for display.
type ColumnMappingError struct {
	Sheet     string
	HeaderRow int
	Headers   []string
	Columns   model.HeaderMap
	Missing   []model.Role
}

func (e *ColumnMappingError) Error() string {
	missing := make([]string, len(e.Missing))
	for i, r := range e.Missing {
		missing[i] = string(r)
	}
	return fmt.Sprintf("header row %d of sheet %q has no %s column", e.HeaderRow, e.Sheet, strings.Join(missing, "/"))
}

// Is makes errors.Is(err, ErrColumnMappingIncomplete) hold.
func (e *ColumnMappingError) Is(target error) bool { return target == ErrColumnMappingIncomplete }
