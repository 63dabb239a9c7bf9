package textproc

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint computes the content digest used for deduplication.
// It hashes the raw uploaded bytes, not the extracted text: two files with
// identical bytes are duplicates even before extraction runs.
func Fingerprint(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
