// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the fiches pages.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"fiches/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMXVersion is the htmx release loaded by the pages.
const HTMXVersion = "2.0.4"

// PageData holds all data passed to page templates.
type PageData struct {
	Title   string // Page title for <title> tag
	Section string // Active navigation section ("home", "editor")
	Data    any    // Page-specific view model
}

// Renderer handles template parsing and execution for the pages.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"print": true,
}

// roleLabels are the display names of the theme roles.
var roleLabels = map[string]string{
	models.RolePrimary:    "Primaire",
	models.RoleAccent:     "Accent",
	models.RoleBackground: "Fond",
	models.RoleText:       "Texte",
}

// New creates a Renderer by parsing all page templates from the embedded
// filesystem. Each page template is paired with the base layout.
// When devMode is true, the layout shows a development badge.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// isDev returns true when the app runs in development mode.
			"isDev": func() bool {
				return devMode
			},
			"htmxVersion": func() string {
				return HTMXVersion
			},
			"activeClass": func(current, target string) string {
				if current == target {
					return "nav-link is-active"
				}
				return "nav-link"
			},
			"roleLabel": func(role string) string {
				if l, ok := roleLabels[role]; ok {
					return l
				}
				return role
			},
			// date formats a timestamp the way French users read it.
			"date": func(t time.Time) string {
				if t.IsZero() {
					return ""
				}
				return t.Local().Format("02/01/2006 15:04")
			},
			"number": func(v float64) string {
				return strconv.FormatFloat(v, 'f', -1, 64)
			},
			"plural": func(n int, one, many string) string {
				if n == 1 {
					return one
				}
				return many
			},
		},
	}

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	// Parse each page template paired with the base layout.
	for _, page := range pages {
		name := page[len("templates/"):]
		if name == "base.html" {
			continue
		}

		// Strip .html extension for the template name.
		tmplName := name[:len(name)-len(".html")]

		var tmpl *template.Template
		var parseErr error

		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(templateFS, page)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/base.html", page,
			)
		}

		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Page renders a full page or an HTMX partial, depending on the request
// headers. For HTMX requests, only the "content" block is sent. For full
// page loads, the entire base layout is rendered.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	execName := "base.html"
	if IsHTMX(r) {
		execName = "content"
	} else if standaloneTemplates[name] {
		execName = name + ".html"
	}

	rn.write(w, status, tmpl, execName, data)
}

// Partial renders one named block of a page template, for HTMX swaps.
func (rn *Renderer) Partial(w http.ResponseWriter, name, block string, data any) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}
	rn.write(w, http.StatusOK, tmpl, block, data)
}

// Standalone renders a standalone page into memory, so callers can cache
// or upload the result.
func (rn *Renderer) Standalone(name string, data any) ([]byte, error) {
	if !standaloneTemplates[name] {
		return nil, fmt.Errorf("template %q is not standalone", name)
	}
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, name+".html", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// write executes into a buffer first so a template error never leaves a
// half-written page behind a 200 status.
func (rn *Renderer) write(w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, name, data); err != nil {
		slog.Error("template execution failed", "template", tmpl.Name(), "block", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request header).
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
