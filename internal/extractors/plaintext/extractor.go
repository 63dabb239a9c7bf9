// Package plaintext extracts text from plain text uploads.
package plaintext

import (
	"bytes"
	"unicode/utf8"

	"github.com/docteca/docteca-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text files. Invalid UTF-8 sequences are dropped;
// content that looks binary yields no text.
type Extractor struct{}

// New creates a plaintext extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the file content as text, or "" for binary-looking input.
func (e *Extractor) Extract(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if bytes.IndexByte(raw, 0) >= 0 {
		return ""
	}
	if utf8.Valid(raw) {
		return string(raw)
	}
	return string(bytes.ToValidUTF8(raw, nil))
}

// SupportedTypes returns the type tags this extractor handles.
func (e *Extractor) SupportedTypes() []string {
	return []string{"txt", "text", "log", "md"}
}

// Priority is low: plaintext is the generic fallback for textual formats.
func (e *Extractor) Priority() int {
	return 10
}
