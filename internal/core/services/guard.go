package services

import "sync"

// Guard serializes store+index mutations so that the three writes one
// document needs (store record, lexical postings, semantic vector) appear
// atomic to readers. Writers (ingest, reindex, delete) take the write lock;
// queries and listings take the read lock. A query racing a mutation may
// see the pre- or post-mutation view, never a partially applied one.
type Guard struct {
	sync.RWMutex
}

// NewGuard creates the shared mutation guard.
func NewGuard() *Guard {
	return &Guard{}
}
