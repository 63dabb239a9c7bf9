// Package textproc holds the pure text-processing primitives of the core:
// canonicalization, tokenization, summarization and content fingerprinting.
// Everything here is deterministic, so re-processing the same input always
// yields the same result and re-indexing is idempotent.
package textproc

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// MinDocumentLength is the minimum canonical text length (in runes) a
	// document must have to be indexed. Shorter texts carry too little
	// signal and are treated as empty.
	MinDocumentLength = 10

	// MinTokenLength is the minimum token length (in runes). Shorter
	// tokens are noise words and are discarded.
	MinTokenLength = 4
)

// accented is the fixed set of locale letters kept during cleanup,
// in addition to ASCII alphanumerics and underscore.
const accented = "áéíóúñ"

// Clean canonicalizes raw text: lowercase, collapse whitespace runs to a
// single space, drop characters that are neither alphanumeric nor one of
// the accepted accented letters, and trim the ends.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))

	pendingSpace := false
	for _, r := range lower {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case indexable(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		}
		// Anything else is dropped without inserting a space,
		// matching the canonical form used by the index.
	}

	return b.String()
}

// Tokenize splits canonical text into the set of indexable tokens.
// Duplicates within a document count once: term frequency is not used for
// lexical relevance, only presence. The result is sorted so the token set
// for a given text is always identical.
func Tokenize(canonical string) []string {
	fields := strings.Fields(canonical)
	if len(fields) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if runeLen(f) < MinTokenLength {
			continue
		}
		seen[f] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(seen))
	for t := range seen {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}

// Excerpt returns the first maxRunes runes of text followed by an ellipsis
// marker when the text was longer.
func Excerpt(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}

func indexable(r rune) bool {
	if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
		return true
	}
	return strings.ContainsRune(accented, r)
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
