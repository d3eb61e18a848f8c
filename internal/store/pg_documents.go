package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"fiches/internal/models"
)

// PGDocumentStore keeps documents in the PostgreSQL documents table, with
// data, styles and theme as JSONB columns.
type PGDocumentStore struct {
	db *sql.DB
}

// NewPGDocumentStore creates a new PGDocumentStore with the given database connection.
func NewPGDocumentStore(db *sql.DB) *PGDocumentStore {
	return &PGDocumentStore{db: db}
}

// Create inserts a new document.
func (s *PGDocumentStore) Create(ctx context.Context, doc *models.Document) error {
	if !validID(doc.ID) {
		return fmt.Errorf("create document: invalid id %q", doc.ID)
	}
	data, styles, theme, err := encodeMaps(doc)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, template_id, data, styles, theme, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, doc.ID, doc.Title, doc.TemplateID, data, styles, theme, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Find retrieves a document by id. Returns nil if not found.
func (s *PGDocumentStore) Find(ctx context.Context, id string) (*models.Document, error) {
	if !validID(id) {
		return nil, nil
	}
	doc := &models.Document{}
	var data, styles, theme []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, template_id, data, styles, theme, created_at, updated_at
		FROM documents WHERE id = $1
	`, id).Scan(
		&doc.ID, &doc.Title, &doc.TemplateID, &data, &styles, &theme,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	if err := json.Unmarshal(data, &doc.Data); err != nil {
		return nil, fmt.Errorf("decode document data: %w", err)
	}
	if err := json.Unmarshal(styles, &doc.Styles); err != nil {
		return nil, fmt.Errorf("decode document styles: %w", err)
	}
	if err := json.Unmarshal(theme, &doc.Theme); err != nil {
		return nil, fmt.Errorf("decode document theme: %w", err)
	}
	return doc, nil
}

// Update replaces the editable columns of a document.
func (s *PGDocumentStore) Update(ctx context.Context, doc *models.Document) error {
	if !validID(doc.ID) {
		return ErrNotFound
	}
	data, styles, theme, err := encodeMaps(doc)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE documents SET
			title = $1, template_id = $2, data = $3, styles = $4, theme = $5, updated_at = $6
		WHERE id = $7
	`, doc.Title, doc.TemplateID, data, styles, theme, doc.UpdatedAt, doc.ID)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the index projection of every document, most recently
// updated first.
func (s *PGDocumentStore) List(ctx context.Context) ([]models.DocumentIndexEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, template_id, created_at, updated_at
		FROM documents
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	index := []models.DocumentIndexEntry{}
	for rows.Next() {
		var e models.DocumentIndexEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.TemplateID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		index = append(index, e)
	}
	return index, rows.Err()
}

func encodeMaps(doc *models.Document) (data, styles, theme []byte, err error) {
	if data, err = json.Marshal(emptyIfNil(doc.Data)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode data: %w", err)
	}
	if styles, err = json.Marshal(emptyIfNil(doc.Styles)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode styles: %w", err)
	}
	if theme, err = json.Marshal(emptyIfNil(doc.Theme)); err != nil {
		return nil, nil, nil, fmt.Errorf("encode theme: %w", err)
	}
	return data, styles, theme, nil
}

func emptyIfNil[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return M{}
	}
	return m
}
