// store_test.go provides the shared test helpers for the store tests. The
// PostgreSQL tests are skipped if the database is not available.
package store

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"fiches/internal/database"
	"fiches/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "fiches")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "fiches")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanDocuments removes test documents by id. Call in t.Cleanup().
func cleanDocuments(t *testing.T, db *sql.DB, ids ...string) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM documents WHERE id = $1", id)
	}
}

// testDocument builds a document updated at the given offset from a fixed
// instant.
func testDocument(title string, offset time.Duration) *models.Document {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &models.Document{
		ID:         uuid.New().String(),
		Title:      title,
		TemplateID: "sido-orange",
		CreatedAt:  base,
		UpdatedAt:  base.Add(offset),
		Data:       map[string]any{"title": title, "themes": []any{"a", "b"}},
		Styles:     map[string]models.FieldStyle{},
		Theme:      map[string]string{"primary": "#F97316"},
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"0b6f5f3e-6c1d-4d8e-9b1a-2f3c4d5e6f70", true},
		{"0B6F5F3E-6C1D-4D8E-9B1A-2F3C4D5E6F70", false},
		{"../index", false},
		{"urn:uuid:0b6f5f3e-6c1d-4d8e-9b1a-2f3c4d5e6f70", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := validID(tc.id); got != tc.want {
			t.Errorf("validID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}
