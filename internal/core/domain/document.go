package domain

import "time"

// Document is the authoritative record of an ingested file.
type Document struct {
	// ID is assigned at first successful ingestion and never reused.
	ID int64 `json:"id"`

	// Title is the original filename of the upload.
	Title string `json:"title"`

	// Type is the lowercase extension/category tag (pdf, txt, csv, ...).
	Type string `json:"type"`

	// Fingerprint is the digest of the raw uploaded bytes.
	// Unique across live records: re-uploading identical bytes resolves
	// to the existing document instead of creating a new one.
	Fingerprint string `json:"fingerprint"`

	// Content is the canonical (cleaned, lowercased) text used for indexing.
	Content string `json:"content,omitempty"`

	// Summary is the auto-generated short summary of Content.
	Summary string `json:"summary"`

	// Size is the raw upload size in bytes.
	Size int64 `json:"size"`

	CreatedAt time.Time `json:"created_at"`
}

// IngestResult reports the outcome of one upload.
type IngestResult struct {
	// ID of the document record. Zero when the upload was skipped.
	ID int64 `json:"id"`

	// Duplicate is true when the fingerprint matched an existing record;
	// ID then refers to that record and no index mutation happened.
	Duplicate bool `json:"duplicate"`

	// Skipped is true when no usable text could be extracted.
	// This is a valid terminal state, not a failure.
	Skipped bool `json:"skipped"`
}

// ConsistencyReport describes store/index drift found by a consistency check.
type ConsistencyReport struct {
	// Checked is the number of live document records inspected.
	Checked int `json:"checked"`

	// Missing lists ids present in the store but absent from the lexical index.
	Missing []int64 `json:"missing,omitempty"`

	// Orphans lists ids present in an index but absent from the store.
	Orphans []int64 `json:"orphans,omitempty"`

	// Healed is the number of documents repaired by re-running indexing.
	Healed int `json:"healed"`
}
