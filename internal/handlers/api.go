// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fiches/internal/documents"
	"fiches/internal/models"
	"fiches/internal/store"
	"fiches/internal/theme"
)

// Error messages of the JSON API. Clients match on them.
const (
	msgTemplateNotFound = "Template not found"
	msgDocumentNotFound = "Document not found"
	msgTemplateRequired = "templateId is required"
	msgUnknownTemplate  = "Unknown templateId"
	msgUnknownPreset    = "Unknown preset"
	msgInvalidJSON      = "Invalid JSON body"
	msgExportDisabled   = "Export storage is not configured"
)

// API groups the JSON endpoints under /api.
type API struct {
	docs      *documents.Service
	templates *store.TemplateStore
	printer   *Printer
}

// NewAPI creates the JSON API handler group.
func NewAPI(docs *documents.Service, templates *store.TemplateStore, printer *Printer) *API {
	return &API{docs: docs, templates: templates, printer: printer}
}

// paletteResponse is a preset with the theme it applies.
type paletteResponse struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Colors []string    `json:"colors"`
	Theme  theme.Roles `json:"theme"`
}

// Health answers {"ok":true}.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListTemplates returns the template summaries sorted by name.
func (a *API) ListTemplates(w http.ResponseWriter, r *http.Request) {
	summaries, err := a.templates.Summaries()
	if err != nil {
		serverError(w, r, "list templates failed", err)
		return
	}
	if summaries == nil {
		summaries = []models.TemplateSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetTemplate returns one full template.
func (a *API) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := a.templates.Find(chi.URLParam(r, "id"))
	if err != nil {
		serverError(w, r, "find template failed", err)
		return
	}
	if tmpl == nil {
		writeError(w, http.StatusNotFound, msgTemplateNotFound)
		return
	}
	writeJSON(w, http.StatusOK, tmpl)
}

// ListDocuments returns the document index, most recent first.
func (a *API) ListDocuments(w http.ResponseWriter, r *http.Request) {
	entries, err := a.docs.List(r.Context())
	if err != nil {
		serverError(w, r, "list documents failed", err)
		return
	}
	if entries == nil {
		entries = []models.DocumentIndexEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// CreateDocument creates a document and answers 201 {"id"}.
func (a *API) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var in documents.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if msg := firstError(validateTitle(in.Title), validateData(in.Data), validateStyles(in.Styles)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	doc, err := a.docs.Create(r.Context(), in)
	switch {
	case errors.Is(err, documents.ErrTemplateRequired):
		writeError(w, http.StatusBadRequest, msgTemplateRequired)
	case errors.Is(err, documents.ErrUnknownTemplate):
		writeError(w, http.StatusBadRequest, msgUnknownTemplate)
	case err != nil:
		serverError(w, r, "create document failed", err)
	default:
		writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID})
	}
}

// GetDocument returns one document.
func (a *API) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := a.docs.Get(r.Context(), chi.URLParam(r, "id"))
	if a.documentError(w, r, "get document failed", err) {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// UpdateDocument replaces the provided parts of a document.
func (a *API) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var in documents.UpdateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	title := ""
	if in.Title != nil {
		title = *in.Title
	}
	if msg := firstError(validateTitle(title), validateData(in.Data), validateStyles(in.Styles)); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	_, err := a.docs.Update(r.Context(), chi.URLParam(r, "id"), in)
	if a.documentError(w, r, "update document failed", err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DuplicateDocument copies a document and answers 201 {"id"}.
func (a *API) DuplicateDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := a.docs.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if a.documentError(w, r, "duplicate document failed", err) {
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": doc.ID})
}

// ListPalettes returns the palette presets with their derived themes.
func (a *API) ListPalettes(w http.ResponseWriter, r *http.Request) {
	presets := a.docs.Presets()
	out := make([]paletteResponse, 0, len(presets))
	for _, p := range presets {
		out = append(out, paletteResponse{
			ID:     p.ID,
			Name:   p.Name,
			Colors: p.Colors[:],
			Theme:  p.Theme(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ApplyPalette applies a preset to a document theme.
func (a *API) ApplyPalette(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Preset string `json:"preset"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	doc, err := a.docs.ApplyPalette(r.Context(), chi.URLParam(r, "id"), in.Preset)
	if errors.Is(err, theme.ErrUnknownPreset) {
		writeError(w, http.StatusBadRequest, msgUnknownPreset)
		return
	}
	if a.documentError(w, r, "apply palette failed", err) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "theme": doc.Theme})
}

// ExportDocument uploads the print page of a document and returns its URL.
func (a *API) ExportDocument(w http.ResponseWriter, r *http.Request) {
	if !a.docs.ExportEnabled() {
		writeError(w, http.StatusServiceUnavailable, msgExportDisabled)
		return
	}
	ctx := r.Context()
	doc, err := a.docs.Get(ctx, chi.URLParam(r, "id"))
	if a.documentError(w, r, "export document failed", err) {
		return
	}
	page, err := a.printer.Page(ctx, doc)
	if err != nil {
		serverError(w, r, "render print page failed", err)
		return
	}
	url, err := a.docs.Export(ctx, doc, page)
	if err != nil {
		serverError(w, r, "export document failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// documentError writes the response for a failed document operation and
// reports whether there was an error.
func (a *API) documentError(w http.ResponseWriter, r *http.Request, msg string, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, documents.ErrNotFound):
		writeError(w, http.StatusNotFound, msgDocumentNotFound)
	default:
		serverError(w, r, msg, err)
	}
	return true
}
