package postgres

import (
	"context"
	"database/sql"

	"github.com/docteca/docteca-core/internal/core/domain"
	"github.com/docteca/docteca-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.DocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Save inserts a document and returns its assigned id. The fingerprint
// column carries a unique constraint, so a concurrent insert of the same
// bytes resolves to the already-stored record instead of erroring.
func (s *DocumentStore) Save(ctx context.Context, doc *domain.Document) (int64, error) {
	query := `
		INSERT INTO documents (title, doc_type, fingerprint, summary, content, byte_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (fingerprint) DO NOTHING
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		doc.Title,
		doc.Type,
		doc.Fingerprint,
		doc.Summary,
		doc.Content,
		doc.Size,
		doc.CreatedAt,
	).Scan(&id)

	if err == sql.ErrNoRows {
		// Conflict path: the fingerprint is already stored.
		existing, err := s.GetByFingerprint(ctx, doc.Fingerprint)
		if err != nil {
			return 0, err
		}
		return existing.ID, nil
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// Get retrieves a document by id
func (s *DocumentStore) Get(ctx context.Context, id int64) (*domain.Document, error) {
	query := `
		SELECT id, title, doc_type, fingerprint, summary, content, byte_size, created_at
		FROM documents
		WHERE id = $1
	`

	return s.scanDocument(s.db.QueryRowContext(ctx, query, id))
}

// GetByFingerprint retrieves a document by content fingerprint
func (s *DocumentStore) GetByFingerprint(ctx context.Context, fingerprint string) (*domain.Document, error) {
	query := `
		SELECT id, title, doc_type, fingerprint, summary, content, byte_size, created_at
		FROM documents
		WHERE fingerprint = $1
	`

	return s.scanDocument(s.db.QueryRowContext(ctx, query, fingerprint))
}

func (s *DocumentStore) scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document

	err := row.Scan(
		&doc.ID,
		&doc.Title,
		&doc.Type,
		&doc.Fingerprint,
		&doc.Summary,
		&doc.Content,
		&doc.Size,
		&doc.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

// List returns all documents, most recently ingested first
func (s *DocumentStore) List(ctx context.Context) ([]*domain.Document, error) {
	query := `
		SELECT id, title, doc_type, fingerprint, summary, content, byte_size, created_at
		FROM documents
		ORDER BY id DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		var doc domain.Document
		err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Type,
			&doc.Fingerprint,
			&doc.Summary,
			&doc.Content,
			&doc.Size,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

// IDs returns the ids of all live documents
func (s *DocumentStore) IDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM documents ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// Delete deletes a document
func (s *DocumentStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM documents WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Count returns total document count
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM documents`
	var count int
	err := s.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
