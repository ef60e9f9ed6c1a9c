// Package workbook decodes statement files into model.Workbook values.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gagyebu/gagyebu/internal/model"
)

// ErrUnsupportedFormat means no decoder recognized the file content.
var ErrUnsupportedFormat = errors.New("unsupported statement file format")

// Decoder converts raw file bytes into a workbook.
type Decoder interface {
	Decode(data []byte) (*model.Workbook, error)
	Format() string
	// Sniff reports whether data looks like this decoder's format.
	Sniff(data []byte) bool
}

// Registry holds named decoders in detection order.
type Registry struct {
	decoders map[string]Decoder
	order    []string
}

// NewRegistry creates an empty decoder registry.
func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

// Register adds a decoder. Panics on duplicate format.
func (r *Registry) Register(d Decoder) {
	key := strings.ToLower(d.Format())
	if _, ok := r.decoders[key]; ok {
		panic("duplicate decoder format: " + key)
	}
	r.decoders[key] = d
	r.order = append(r.order, key)
}

// Get returns the decoder for format, or nil.
func (r *Registry) Get(format string) Decoder {
	return r.decoders[strings.ToLower(format)]
}

// Detect returns the first registered decoder whose Sniff accepts data, or nil.
func (r *Registry) Detect(data []byte) Decoder {
	for _, key := range r.order {
		if d := r.decoders[key]; d.Sniff(data) {
			return d
		}
	}
	return nil
}

// Decode sniffs the format of data and decodes it.
func (r *Registry) Decode(data []byte) (*model.Workbook, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty file: %w", ErrUnsupportedFormat)
	}
	d := r.Detect(data)
	if d == nil {
		return nil, ErrUnsupportedFormat
	}
	wb, err := d.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", d.Format(), err)
	}
	wb.Format = d.Format()
	return wb, nil
}

// DefaultRegistry returns a registry with all built-in decoders.
// CSV accepts anything, so it is registered last.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXDecoder{})
	r.Register(&XLSDecoder{})
	r.Register(&HTMLDecoder{})
	r.Register(&CSVDecoder{})
	return r
}

// trimRow drops trailing empty cells so rows compare by visible content.
func trimRow(row model.Row) model.Row {
	n := len(row)
	for n > 0 && row[n-1].IsEmpty() {
		n--
	}
	return row[:n]
}
