// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package documents implements the document lifecycle on top of the stores:
// creation from a template, updates, duplication, palette application and
// export. Every write goes through NormalizeData so list and tag fields are
// persisted as flat, trimmed string lists. Text is otherwise stored as
// typed; escaping happens when pages are rendered.
package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"fiches/internal/cache"
	"fiches/internal/models"
	"fiches/internal/multivalue"
	"fiches/internal/storage"
	"fiches/internal/store"
	"fiches/internal/theme"
)

// Sentinel errors checked by the HTTP layer.
var (
	ErrNotFound         = errors.New("document not found")
	ErrTemplateRequired = errors.New("templateId is required")
	ErrUnknownTemplate  = errors.New("unknown templateId")
	ErrExportDisabled   = errors.New("export storage is not configured")
)

// copySuffix is appended to the title of a duplicated document.
const copySuffix = " (copie)"

// TemplateSource looks templates up by id. Find returns (nil, nil) when the
// template does not exist.
type TemplateSource interface {
	Find(id string) (*models.Template, error)
}

// Exporter publishes rendered pages. It is satisfied by *storage.Client.
type Exporter interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	FileURL(key string) string
}

// CreateInput is the payload of a new document. Only TemplateID is required.
type CreateInput struct {
	Title      string                       `json:"title"`
	TemplateID string                       `json:"templateId"`
	Data       map[string]any               `json:"data"`
	Styles     map[string]models.FieldStyle `json:"styles"`
	Theme      map[string]string            `json:"theme"`
}

// UpdateInput carries the parts of a document to replace. Nil members are
// left untouched. The template of a document never changes.
type UpdateInput struct {
	Title  *string                      `json:"title"`
	Data   map[string]any               `json:"data"`
	Styles map[string]models.FieldStyle `json:"styles"`
	Theme  map[string]string            `json:"theme"`
}

// Service coordinates the document store, the template files, the palette
// catalog, the print page cache and the optional exporter.
type Service struct {
	docs      store.DocumentStore
	templates TemplateSource
	presets   *theme.Catalog
	pageCache *cache.PageCache
	exporter  Exporter

	now   func() time.Time
	newID func() string
}

// New creates a document service. pageCache may be nil to disable caching
// and exporter may be nil to disable export.
func New(docs store.DocumentStore, templates TemplateSource, presets *theme.Catalog, pageCache *cache.PageCache, exporter Exporter) *Service {
	return &Service{
		docs:      docs,
		templates: templates,
		presets:   presets,
		pageCache: pageCache,
		exporter:  exporter,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// ExportEnabled reports whether an exporter is configured.
func (s *Service) ExportEnabled() bool {
	return s.exporter != nil
}

// Presets returns the palette presets in display order.
func (s *Service) Presets() []theme.Preset {
	if s.presets == nil {
		return nil
	}
	return s.presets.List()
}

// Preset returns a palette preset by id.
func (s *Service) Preset(id string) (theme.Preset, error) {
	if s.presets == nil {
		return theme.Preset{}, fmt.Errorf("%w: %s", theme.ErrUnknownPreset, id)
	}
	return s.presets.Get(id)
}

// Create validates the template, fills in defaults and stores a new
// document. A blank title becomes DefaultDocumentTitle and a missing theme
// starts from the template colors.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Document, error) {
	templateID := strings.TrimSpace(in.TemplateID)
	if templateID == "" {
		return nil, ErrTemplateRequired
	}
	tmpl, err := s.templates.Find(templateID)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	if tmpl == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}

	now := s.now()
	doc := &models.Document{
		ID:         s.newID(),
		Title:      title(in.Title),
		TemplateID: tmpl.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
		Data:       multivalue.NormalizeData(tmpl, in.Data),
		Styles:     cleanStyles(in.Styles),
		Theme:      cleanTheme(in.Theme),
	}
	if in.Theme == nil {
		doc.Theme = tmpl.Colors.Map()
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

// Get loads a document.
func (s *Service) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.docs.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	fillMaps(doc)
	return doc, nil
}

// Template returns the template of a document, or nil when the template
// file no longer exists. Layouts render a placeholder in that case.
func (s *Service) Template(doc *models.Document) (*models.Template, error) {
	tmpl, err := s.templates.Find(doc.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("find template %s: %w", doc.TemplateID, err)
	}
	return tmpl, nil
}

// Update replaces the provided parts of a document and refreshes its
// update time.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*models.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.Template(doc)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		doc.Title = title(*in.Title)
	}
	if in.Data != nil {
		doc.Data = multivalue.NormalizeData(tmpl, in.Data)
	}
	if in.Styles != nil {
		doc.Styles = cleanStyles(in.Styles)
	}
	if in.Theme != nil {
		doc.Theme = cleanTheme(in.Theme)
	}
	return doc, s.save(ctx, doc)
}

// Save persists a whole document, typically the result of editor
// transitions. The template id of the stored document wins.
func (s *Service) Save(ctx context.Context, doc *models.Document) (*models.Document, error) {
	title := doc.Title
	return s.Update(ctx, doc.ID, UpdateInput{
		Title:  &title,
		Data:   orEmpty(doc.Data),
		Styles: orEmpty(doc.Styles),
		Theme:  orEmpty(doc.Theme),
	})
}

// List returns the document index, most recently updated first.
func (s *Service) List(ctx context.Context) ([]models.DocumentIndexEntry, error) {
	entries, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return entries, nil
}

// Duplicate stores a copy of a document under a new id, titled with the
// " (copie)" suffix.
func (s *Service) Duplicate(ctx context.Context, id string) (*models.Document, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := src.Clone()
	doc.ID = s.newID()
	doc.Title = src.Title + copySuffix
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("duplicate document %s: %w", id, err)
	}
	return doc, nil
}

// ApplyPalette overwrites the four theme roles of a document with the ones
// derived from a preset. The error wraps theme.ErrUnknownPreset when the
// preset does not exist.
func (s *Service) ApplyPalette(ctx context.Context, id, presetID string) (*models.Document, error) {
	preset, err := s.Preset(presetID)
	if err != nil {
		return nil, err
	}
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Theme = theme.Apply(doc.Theme, preset.Theme())
	return doc, s.save(ctx, doc)
}

// Export uploads a rendered print page and returns its public URL.
func (s *Service) Export(ctx context.Context, doc *models.Document, page []byte) (string, error) {
	if s.exporter == nil {
		return "", ErrExportDisabled
	}
	key := storage.ExportKey(doc.ID, doc.Title)
	if err := s.exporter.Upload(ctx, key, "text/html; charset=utf-8", bytes.NewReader(page), int64(len(page))); err != nil {
		return "", fmt.Errorf("export document %s: %w", doc.ID, err)
	}
	return s.exporter.FileURL(key), nil
}

// CachedPrint returns the cached print page of a document.
func (s *Service) CachedPrint(ctx context.Context, id string) ([]byte, bool) {
	return s.pageCache.Get(ctx, cache.PrintKey(id))
}

// CachePrint stores the rendered print page of a document.
func (s *Service) CachePrint(ctx context.Context, id string, page []byte) {
	s.pageCache.Set(ctx, cache.PrintKey(id), page)
}

// CountByTemplate counts index entries per template id.
func CountByTemplate(entries []models.DocumentIndexEntry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.TemplateID]++
	}
	return counts
}

// save writes an existing document and drops its cached pages.
func (s *Service) save(ctx context.Context, doc *models.Document) error {
	doc.UpdatedAt = s.now()
	if err := s.docs.Update(ctx, doc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("update document %s: %w", doc.ID, err)
	}
	s.pageCache.InvalidateDocument(ctx, doc.ID)
	return nil
}

// title falls back to the default title when raw is blank.
func title(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return models.DefaultDocumentTitle
	}
	return raw
}

// cleanStyles drops empty style entries.
func cleanStyles(styles map[string]models.FieldStyle) map[string]models.FieldStyle {
	out := make(map[string]models.FieldStyle, len(styles))
	for k, v := range styles {
		if !v.IsZero() {
			out[k] = v
		}
	}
	return out
}

// cleanTheme keeps the non-empty colors of the four roles.
func cleanTheme(overrides map[string]string) map[string]string {
	out := make(map[string]string, len(models.Roles))
	for _, role := range models.Roles {
		if v := strings.TrimSpace(overrides[role]); v != "" {
			out[role] = v
		}
	}
	return out
}

// fillMaps replaces nil maps of a decoded document with empty ones.
func fillMaps(doc *models.Document) {
	doc.Data = orEmpty(doc.Data)
	doc.Styles = orEmpty(doc.Styles)
	doc.Theme = orEmpty(doc.Theme)
}

func orEmpty[M ~map[K]V, K comparable, V any](m M) M {
	if m == nil {
		return M{}
	}
	return m
}
