package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"fiches/internal/models"
)

// Seed imports documents into an empty documents table, typically the ones
// previously kept in the data directory. It does nothing when the table
// already holds documents, so it is safe to call on every start.
func Seed(ctx context.Context, db *sql.DB, docs []*models.Document) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return fmt.Errorf("seed check documents: %w", err)
	}

	if count > 0 || len(docs) == 0 {
		slog.Info("document seed skipped", "existing", count, "candidates", len(docs))
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, d := range docs {
		data, styles, theme, err := marshalMaps(d)
		if err != nil {
			return fmt.Errorf("seed document %s: %w", d.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (id, title, template_id, data, styles, theme, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING
		`, d.ID, d.Title, d.TemplateID, data, styles, theme, d.CreatedAt, d.UpdatedAt)
		if err != nil {
			return fmt.Errorf("seed insert document %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("documents seeded", "count", len(docs))
	return nil
}

func marshalMaps(d *models.Document) (data, styles, theme []byte, err error) {
	if data, err = json.Marshal(nonNil(d.Data)); err != nil {
		return nil, nil, nil, err
	}
	if styles, err = json.Marshal(nonNil(d.Styles)); err != nil {
		return nil, nil, nil, err
	}
	if theme, err = json.Marshal(nonNil(d.Theme)); err != nil {
		return nil, nil, nil, err
	}
	return data, styles, theme, nil
}

// nonNil replaces a nil map with an empty one so it encodes as {}.
func nonNil[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return M{}
	}
	return m
}
