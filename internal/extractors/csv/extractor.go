// Package csv extracts text from comma-separated uploads.
package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"io"
	"strings"

	"github.com/docteca/docteca-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*Extractor)(nil)

// Extractor flattens CSV records into whitespace-separated text so both
// headers and cell values become indexable.
type Extractor struct{}

// New creates a CSV extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses the CSV and joins every field with spaces.
// Malformed input degrades to "" rather than failing the upload.
func (e *Extractor) Extract(raw []byte) string {
	reader := stdcsv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1 // ragged rows are fine

	var b strings.Builder
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ""
		}
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(field)
		}
	}
	return b.String()
}

// SupportedTypes returns the type tags this extractor handles.
func (e *Extractor) SupportedTypes() []string {
	return []string{"csv"}
}

// Priority is above plaintext so .csv uploads get structured handling.
func (e *Extractor) Priority() int {
	return 50
}
