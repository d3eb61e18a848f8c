// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fiches/internal/documents"
	"fiches/internal/editor"
	"fiches/internal/layout"
	"fiches/internal/models"
	"fiches/internal/render"
	"fiches/internal/store"
	"fiches/internal/theme"
)

// Edit operations posted by the editor panel.
const (
	opTitle  = "title"
	opValue  = "value"
	opStyle  = "style"
	opReset  = "reset"
	opTheme  = "theme"
	opPreset = "preset"
)

// fontWeights are the weights offered by the style panel.
var fontWeights = []int{100, 200, 300, 400, 500, 600, 700, 800, 900}

// Pages groups the server-rendered HTML pages: home, editor and print.
type Pages struct {
	docs      *documents.Service
	templates *store.TemplateStore
	renderer  *render.Renderer
	printer   *Printer
}

// NewPages creates the page handler group.
func NewPages(docs *documents.Service, templates *store.TemplateStore, renderer *render.Renderer, printer *Printer) *Pages {
	return &Pages{docs: docs, templates: templates, renderer: renderer, printer: printer}
}

// Home lists the templates with their document counts and the documents.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request) {
	templates, err := p.templates.Summaries()
	if err != nil {
		slog.Error("list templates failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	entries, err := p.docs.List(r.Context())
	if err != nil {
		slog.Error("list documents failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	counts := documents.CountByTemplate(entries)
	names := make(map[string]string, len(templates))
	view := render.HomeView{}
	for _, t := range templates {
		names[t.ID] = t.Name
		view.Templates = append(view.Templates, render.TemplateCard{Template: t, Count: counts[t.ID]})
	}
	for _, e := range entries {
		name, ok := names[e.TemplateID]
		if !ok {
			name = e.TemplateID
		}
		view.Documents = append(view.Documents, render.DocumentRow{Entry: e, TemplateName: name})
	}

	p.renderer.Page(w, r, "home", &render.PageData{
		Title:   "Mes fiches",
		Section: "home",
		Data:    view,
	})
}

// CreateDocument handles the home page form and opens the new document.
func (p *Pages) CreateDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	title := r.PostFormValue("title")
	if msg := validateTitle(title); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	doc, err := p.docs.Create(r.Context(), documents.CreateInput{
		Title:      title,
		TemplateID: r.PostFormValue("templateId"),
	})
	switch {
	case errors.Is(err, documents.ErrTemplateRequired), errors.Is(err, documents.ErrUnknownTemplate):
		p.notFound(w, r, "Template introuvable", "Ce template n'existe pas ou plus.")
	case err != nil:
		slog.Error("create document failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	default:
		p.redirect(w, r, "/documents/"+doc.ID)
	}
}

// DuplicateDocument copies a document and opens the copy.
func (p *Pages) DuplicateDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := p.docs.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if p.documentError(w, r, err) {
		return
	}
	p.redirect(w, r, "/documents/"+doc.ID)
}

// Editor renders the editor page. The "field" query parameter selects the
// field being edited.
func (p *Pages) Editor(w http.ResponseWriter, r *http.Request) {
	state, view, ok := p.load(w, r)
	if !ok {
		return
	}
	p.renderer.Page(w, r, "editor", &render.PageData{
		Title:   state.Document.Title,
		Section: "editor",
		Data:    view,
	})
}

// Workspace renders the editor workspace alone, for HTMX swaps after a
// region is clicked or another field is picked.
func (p *Pages) Workspace(w http.ResponseWriter, r *http.Request) {
	_, view, ok := p.load(w, r)
	if !ok {
		return
	}
	p.renderer.Partial(w, "editor", "workspace", view)
}

// Edit applies one editor operation, saves the document and answers with
// the refreshed preview, or the whole workspace when the panel changes too.
func (p *Pages) Edit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	state, ok := p.state(w, r, r.PostFormValue("field"))
	if !ok {
		return
	}

	op := r.PostFormValue("op")
	next, msg := p.apply(state, op, r.PostForm)
	if msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	saved, err := p.docs.Save(r.Context(), next.Document)
	if p.documentError(w, r, err) {
		return
	}
	next.Document = saved

	view, err := p.editorView(next)
	if err != nil {
		slog.Error("render editor failed", "error", err, "id", saved.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	block := "preview"
	if op == opReset || op == opPreset {
		block = "workspace"
	}
	p.renderer.Partial(w, "editor", block, view)
}

// Print renders the A4 print page.
func (p *Pages) Print(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := p.docs.Get(ctx, chi.URLParam(r, "id"))
	if p.documentError(w, r, err) {
		return
	}
	page, err := p.printer.Page(ctx, doc)
	if err != nil {
		slog.Error("render print page failed", "error", err, "id", doc.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// Export uploads the print page and answers with a link, for the editor
// toolbar.
func (p *Pages) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doc, err := p.docs.Get(ctx, chi.URLParam(r, "id"))
	if p.documentError(w, r, err) {
		return
	}

	var view render.ExportView
	page, err := p.printer.Page(ctx, doc)
	if err == nil {
		view.URL, err = p.docs.Export(ctx, doc, page)
	}
	switch {
	case errors.Is(err, documents.ErrExportDisabled):
		view.Error = "Export non configuré."
	case err != nil:
		slog.Error("export document failed", "error", err, "id", doc.ID)
		view.Error = "L'export a échoué."
	}
	p.renderer.Partial(w, "editor", "export", view)
}

// apply runs one editor operation on the state. It returns a message when
// the form is invalid.
func (p *Pages) apply(s editor.State, op string, form url.Values) (editor.State, string) {
	value := form.Get("value")
	switch op {
	case opTitle:
		if msg := validateTitle(value); msg != "" {
			return s, msg
		}
		return s.SetTitle(value), ""

	case opValue:
		if _, ok := s.SelectedField(); !ok {
			return s, "Unknown field."
		}
		if msg := validateData(map[string]any{s.Selected: value}); msg != "" {
			return s, msg
		}
		return s.SetField(s.Selected, value), ""

	case opStyle:
		if _, ok := s.SelectedField(); !ok {
			return s, "Unknown field."
		}
		// The panel posts every control; only the ones that differ from the
		// effective style become overrides.
		eff := s.PanelStyle()
		if v := form.Get("fontFamily"); v != "" && v != eff.FontFamily {
			s = s.SetFontFamily(v)
		}
		if v, err := strconv.ParseFloat(form.Get("fontSize"), 64); err == nil && v != eff.FontSize {
			s = s.SetFontSize(v)
		}
		if v, err := strconv.Atoi(form.Get("fontWeight")); err == nil && v != eff.FontWeight {
			s = s.SetFontWeight(v)
		}
		if v := form.Get("textColor"); v != "" && !strings.EqualFold(v, eff.TextColor) {
			s = s.SetTextColor(v)
		}
		return s, ""

	case opReset:
		return s.ResetStyle(), ""

	case opTheme:
		current := s.Theme()
		for _, role := range models.Roles {
			if v := form.Get(role); v != "" && !strings.EqualFold(v, current[role]) {
				s = s.SetThemeColor(role, v)
			}
		}
		return s, ""

	case opPreset:
		preset, err := p.docs.Preset(form.Get("preset"))
		if err != nil {
			return s, "Unknown preset."
		}
		return s.ApplyPreset(preset), ""

	default:
		return s, "Unknown operation."
	}
}

// load reads the document and builds the editor view, writing the error
// response itself when it fails.
func (p *Pages) load(w http.ResponseWriter, r *http.Request) (editor.State, render.EditorView, bool) {
	state, ok := p.state(w, r, r.URL.Query().Get("field"))
	if !ok {
		return state, render.EditorView{}, false
	}
	view, err := p.editorView(state)
	if err != nil {
		slog.Error("render editor failed", "error", err, "id", state.Document.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return state, view, false
	}
	return state, view, true
}

// state loads the document of the request into an editor state with field
// selected when the template declares it.
func (p *Pages) state(w http.ResponseWriter, r *http.Request, field string) (editor.State, bool) {
	doc, err := p.docs.Get(r.Context(), chi.URLParam(r, "id"))
	if p.documentError(w, r, err) {
		return editor.State{}, false
	}
	tmpl, err := p.docs.Template(doc)
	if err != nil {
		slog.Error("find template failed", "error", err, "id", doc.ID)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return editor.State{}, false
	}
	if tmpl == nil {
		tmpl = &models.Template{ID: doc.TemplateID}
	}
	return editor.New(doc, tmpl).Select(field), true
}

// editorView projects an editor state for the editor template.
func (p *Pages) editorView(s editor.State) (render.EditorView, error) {
	doc := s.Document
	selectURL := func(field string) string {
		return "/documents/" + doc.ID + "/workspace?field=" + url.QueryEscape(field)
	}
	preview, err := layout.HTML(
		layout.Render(layout.Input{Document: doc, Template: s.Template, Selected: s.Selected}),
		layout.HTMLOptions{SelectURL: selectURL, Target: "#workspace"},
	)
	if err != nil {
		return render.EditorView{}, err
	}

	view := render.EditorView{
		Document:      doc,
		TemplateName:  s.Template.Name,
		Known:         len(s.Template.Fields) > 0,
		Fields:        s.Template.Fields,
		Fonts:         editor.FontChoices(),
		Weights:       fontWeights,
		Preview:       preview,
		ExportEnabled: p.docs.ExportEnabled(),
	}
	if view.TemplateName == "" {
		view.TemplateName = s.Template.ID
	}

	if f, ok := s.SelectedField(); ok {
		eff := s.PanelStyle()
		_, overridden := doc.Styles[f.Key]
		view.Field = f
		view.HasField = true
		view.FieldText = s.FieldText(f.Key)
		view.Multi = f.Type.IsMultiValue()
		view.Style = render.StyleView{
			FontFamily: eff.FontFamily,
			FontSize:   eff.FontSize,
			FontWeight: eff.FontWeight,
			TextColor:  eff.TextColor,
			Overridden: overridden,
		}
	}

	current := s.Theme()
	for _, role := range models.Roles {
		view.Theme = append(view.Theme, render.RoleColor{Role: role, Value: current[role]})
	}
	for _, preset := range p.docs.Presets() {
		view.Presets = append(view.Presets, presetSwatch(preset))
	}
	return view, nil
}

func presetSwatch(preset theme.Preset) render.PresetSwatch {
	return render.PresetSwatch{ID: preset.ID, Name: preset.Name, Colors: preset.Colors[:]}
}

// redirect sends the browser to target; HTMX requests get HX-Redirect.
func (p *Pages) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if render.IsHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// documentError writes the response for a failed document lookup and
// reports whether there was an error.
func (p *Pages) documentError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, documents.ErrNotFound):
		p.notFound(w, r, "Fiche introuvable", "Cette fiche n'existe pas ou a été supprimée.")
	default:
		slog.Error("document operation failed", "error", err, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
	return true
}

func (p *Pages) notFound(w http.ResponseWriter, r *http.Request, title, msg string) {
	p.renderer.PageStatus(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: title,
		Data:  msg,
	})
}
