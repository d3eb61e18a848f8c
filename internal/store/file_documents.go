package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/natefinch/atomic"

	"fiches/internal/models"
)

// FileDocumentStore keeps each document in DATA_DIR/documents/<id>.json and
// the listing in DATA_DIR/index.json. Files are pretty-printed JSON replaced
// atomically. Writes are serialized so the index read-modify-write of two
// requests cannot interleave; the document and index files are still
// written one after the other.
type FileDocumentStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileDocumentStore creates the data directory layout if needed.
func NewFileDocumentStore(dataDir string) (*FileDocumentStore, error) {
	s := &FileDocumentStore{dir: dataDir}
	if err := os.MkdirAll(s.documentsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create documents dir: %w", err)
	}
	return s, nil
}

func (s *FileDocumentStore) documentsDir() string {
	return filepath.Join(s.dir, "documents")
}

func (s *FileDocumentStore) indexPath() string {
	return filepath.Join(s.dir, "index.json")
}

func (s *FileDocumentStore) docPath(id string) string {
	return filepath.Join(s.documentsDir(), id+".json")
}

// Create writes a new document and appends its index entry.
func (s *FileDocumentStore) Create(_ context.Context, doc *models.Document) error {
	if !validID(doc.ID) {
		return fmt.Errorf("create document: invalid id %q", doc.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSON(s.docPath(doc.ID), doc); err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	index, err := s.readIndex()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	index = append(index, doc.IndexEntry())
	if err := writeJSON(s.indexPath(), index); err != nil {
		return fmt.Errorf("create document index: %w", err)
	}
	return nil
}

// Find loads a document by id. Returns nil if not found.
func (s *FileDocumentStore) Find(_ context.Context, id string) (*models.Document, error) {
	if !validID(id) {
		return nil, nil
	}
	doc, err := readDocument(s.docPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find document %s: %w", id, err)
	}
	return doc, nil
}

// Update replaces the document file, then refreshes the title, template id
// and update time of its index entry.
func (s *FileDocumentStore) Update(_ context.Context, doc *models.Document) error {
	if !validID(doc.ID) {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.docPath(doc.ID)); errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err := writeJSON(s.docPath(doc.ID), doc); err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	index, err := s.readIndex()
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	found := false
	for i := range index {
		if index[i].ID == doc.ID {
			index[i].Title = doc.Title
			index[i].TemplateID = doc.TemplateID
			index[i].UpdatedAt = doc.UpdatedAt
			found = true
		}
	}
	if !found {
		// The document predates its index entry; list it from now on.
		slog.Warn("document missing from index, adding it", "id", doc.ID)
		index = append(index, doc.IndexEntry())
	}
	if err := writeJSON(s.indexPath(), index); err != nil {
		return fmt.Errorf("update document index: %w", err)
	}
	return nil
}

// List returns the index sorted by update time, most recent first.
func (s *FileDocumentStore) List(_ context.Context) ([]models.DocumentIndexEntry, error) {
	index, err := s.readIndex()
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	sortIndex(index)
	return index, nil
}

// All loads every document file in the data directory, in id order.
// Unreadable files are logged and skipped.
func (s *FileDocumentStore) All(_ context.Context) ([]*models.Document, error) {
	entries, err := os.ReadDir(s.documentsDir())
	if err != nil {
		return nil, fmt.Errorf("read documents dir: %w", err)
	}
	var docs []*models.Document
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || !validID(strings.TrimSuffix(name, ".json")) {
			continue
		}
		doc, err := readDocument(filepath.Join(s.documentsDir(), name))
		if err != nil {
			slog.Warn("skipping unreadable document", "file", name, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *FileDocumentStore) readIndex() ([]models.DocumentIndexEntry, error) {
	raw, err := os.ReadFile(s.indexPath())
	if errors.Is(err, os.ErrNotExist) {
		return []models.DocumentIndexEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	var index []models.DocumentIndexEntry
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	if index == nil {
		index = []models.DocumentIndexEntry{}
	}
	return index, nil
}

func readDocument(path string) (*models.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := &models.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// sortIndex orders entries by update time, newest first.
func sortIndex(index []models.DocumentIndexEntry) {
	sort.SliceStable(index, func(i, j int) bool {
		return index[i].UpdatedAt.After(index[j].UpdatedAt)
	})
}
