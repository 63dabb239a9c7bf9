package driven

// Extractor turns raw uploaded bytes into plain text for one or more
// file types. Extraction failures degrade to an empty string; they never
// propagate as errors into the core.
type Extractor interface {
	// Extract returns the plain text content of the raw bytes,
	// or "" when no text could be extracted.
	Extract(raw []byte) string

	// SupportedTypes returns the lowercase type tags this extractor
	// handles (file extensions without the dot, e.g. "txt", "csv").
	SupportedTypes() []string

	// Priority breaks ties when several extractors claim a type
	// (higher = more specific).
	Priority() int
}

// ExtractorRegistry manages extractors by type tag.
// When multiple extractors match, the highest priority one is used.
type ExtractorRegistry interface {
	// Get retrieves the best-matching extractor for a type tag,
	// or nil when the type has no extractor.
	Get(typeTag string) Extractor

	// GetAll retrieves all matching extractors, sorted by priority
	// (highest first).
	GetAll(typeTag string) []Extractor

	// Register registers an extractor.
	Register(extractor Extractor)

	// List returns all registered type tags.
	List() []string
}
