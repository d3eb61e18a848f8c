// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Documents live in a temp dir file store and templates are copies of the
// shipped templates in another temp dir.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"fiches/internal/documents"
	"fiches/internal/render"
	"fiches/internal/store"
	"fiches/internal/theme"
)

// memExporter records uploads in memory.
type memExporter struct {
	mu      sync.Mutex
	uploads map[string][]byte
}

func (m *memExporter) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.uploads == nil {
		m.uploads = make(map[string][]byte)
	}
	m.uploads[key] = raw
	return nil
}

func (m *memExporter) FileURL(key string) string {
	return "https://cdn.test/" + key
}

// testEnv bundles the service and a router carrying the handler routes.
type testEnv struct {
	docs         *documents.Service
	handler      http.Handler
	templatesDir string
}

// copyTemplates copies the shipped template files into a temp dir.
func copyTemplates(t *testing.T) string {
	t.Helper()

	src := filepath.Join("..", "..", "templates")
	dst := t.TempDir()
	entries, err := os.ReadDir(src)
	if err != nil {
		t.Fatalf("read templates: %v", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(src, e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(dst, e.Name()), raw, 0o600); err != nil {
			t.Fatalf("write %s: %v", e.Name(), err)
		}
	}
	return dst
}

// newTestEnv wires the handlers. exporter may be nil to disable export.
func newTestEnv(t *testing.T, exporter documents.Exporter) *testEnv {
	t.Helper()

	fileStore, err := store.NewFileDocumentStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileDocumentStore: %v", err)
	}
	templatesDir := copyTemplates(t)
	templates := store.NewTemplateStore(templatesDir)
	catalog, err := theme.NewCatalog(theme.DefaultPresets())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	svc := documents.New(fileStore, templates, catalog, nil, exporter)

	renderer, err := render.New(false)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	printer, err := NewPrinter(svc, renderer)
	if err != nil {
		t.Fatalf("NewPrinter: %v", err)
	}
	api := NewAPI(svc, templates, printer)
	pages := NewPages(svc, templates, renderer, printer)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", api.Health)
		r.Get("/templates", api.ListTemplates)
		r.Get("/templates/{id}", api.GetTemplate)
		r.Get("/documents", api.ListDocuments)
		r.Post("/documents", api.CreateDocument)
		r.Get("/documents/{id}", api.GetDocument)
		r.Put("/documents/{id}", api.UpdateDocument)
		r.Post("/documents/{id}/duplicate", api.DuplicateDocument)
		r.Post("/documents/{id}/palette", api.ApplyPalette)
		r.Post("/documents/{id}/export", api.ExportDocument)
		r.Get("/palettes", api.ListPalettes)
	})
	r.Get("/", pages.Home)
	r.Post("/documents", pages.CreateDocument)
	r.Get("/documents/{id}", pages.Editor)
	r.Get("/documents/{id}/workspace", pages.Workspace)
	r.Post("/documents/{id}/edit", pages.Edit)
	r.Post("/documents/{id}/duplicate", pages.DuplicateDocument)
	r.Post("/documents/{id}/export", pages.Export)
	r.Get("/print/{id}", pages.Print)

	return &testEnv{docs: svc, handler: r, templatesDir: templatesDir}
}

// do sends a request and returns the recorder.
func (e *testEnv) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

// form posts url-encoded values.
func (e *testEnv) form(t *testing.T, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodPost, target, body, append([]string{"Content-Type", "application/x-www-form-urlencoded"}, headers...)...)
}

// createDoc creates a document through the service.
func (e *testEnv) createDoc(t *testing.T, in documents.CreateInput) string {
	t.Helper()
	doc, err := e.docs.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return doc.ID
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return v
}

const missingID = "00000000-0000-4000-8000-000000000999"
