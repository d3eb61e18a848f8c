package handlers

import (
	"context"
	"fmt"
	"html/template"

	"fiches/internal/documents"
	"fiches/internal/layout"
	"fiches/internal/models"
	"fiches/internal/render"
	"fiches/web"
)

// Printer renders the standalone print page of a document, going through
// the page cache when one is configured.
type Printer struct {
	docs     *documents.Service
	renderer *render.Renderer
	css      template.CSS
}

// NewPrinter loads the print stylesheets once.
func NewPrinter(docs *documents.Service, renderer *render.Renderer) (*Printer, error) {
	css, err := web.PrintCSS()
	if err != nil {
		return nil, fmt.Errorf("load print css: %w", err)
	}
	return &Printer{
		docs:     docs,
		renderer: renderer,
		css:      template.CSS(css), // #nosec G203 -- embedded stylesheet
	}, nil
}

// Page returns the print HTML of doc. A cached copy is used when present;
// otherwise the page is rendered and cached.
func (p *Printer) Page(ctx context.Context, doc *models.Document) ([]byte, error) {
	if cached, ok := p.docs.CachedPrint(ctx, doc.ID); ok {
		return cached, nil
	}

	tmpl, err := p.docs.Template(doc)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		tmpl = &models.Template{ID: doc.TemplateID}
	}
	fiche, err := layout.HTML(layout.Render(layout.Input{Document: doc, Template: tmpl}), layout.HTMLOptions{Print: true})
	if err != nil {
		return nil, err
	}
	page, err := p.renderer.Standalone("print", render.PrintView{
		Title: doc.Title,
		Fiche: fiche,
		CSS:   p.css,
	})
	if err != nil {
		return nil, err
	}

	p.docs.CachePrint(ctx, doc.ID, page)
	return page, nil
}
