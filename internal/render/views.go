package render

import (
	"html/template"

	"fiches/internal/editor"
	"fiches/internal/models"
)

// HomeView lists the templates a document can start from and the existing
// documents.
type HomeView struct {
	Templates []TemplateCard
	Documents []DocumentRow
}

// TemplateCard is a template with the number of documents using it.
type TemplateCard struct {
	Template models.TemplateSummary
	Count    int
}

// DocumentRow is one line of the document list.
type DocumentRow struct {
	Entry        models.DocumentIndexEntry
	TemplateName string
}

// RoleColor is the effective color of one theme role.
type RoleColor struct {
	Role  string
	Value string
}

// PresetSwatch is a palette preset as shown in the theme panel.
type PresetSwatch struct {
	ID     string
	Name   string
	Colors []string
}

// StyleView is the effective style of the selected field.
type StyleView struct {
	FontFamily string
	FontSize   float64
	FontWeight int
	TextColor  string
	Overridden bool
}

// EditorView is everything the editor page shows: the form for the
// selected field, its style, the theme and the live preview.
type EditorView struct {
	Document     *models.Document
	TemplateName string
	Known        bool // the template file exists
	Fields       []models.TemplateField

	Field     models.TemplateField
	HasField  bool
	FieldText string
	Multi     bool

	Style   StyleView
	Fonts   []editor.FontChoice
	Weights []int

	Theme   []RoleColor
	Presets []PresetSwatch

	Preview       template.HTML
	ExportEnabled bool
}

// PrintView is the standalone print page. The stylesheet is inlined so an
// exported copy renders without the server.
type PrintView struct {
	Title string
	Fiche template.HTML
	CSS   template.CSS
}

// ExportView reports the result of an export.
type ExportView struct {
	URL   string
	Error string
}
