// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor holds the state of a document being edited and the
// transitions the editor page applies to it. Every transition takes a State
// and returns a new one; the document inside the input is never modified.
package editor

import (
	"math"
	"strings"

	"fiches/internal/layout"
	"fiches/internal/models"
	"fiches/internal/multivalue"
	"fiches/internal/style"
	"fiches/internal/theme"
)

// Style panel fallbacks used when neither the document nor the template
// sets a property.
const (
	DefaultFontFamily = "ui-sans-serif"
	DefaultFontSize   = 12
	DefaultTextColor  = "#111827"

	MinFontSize = 8
	MaxFontSize = 48
)

// FontChoice is an entry of the font family picker.
type FontChoice struct {
	Label string
	Value string
}

var fontChoices = []FontChoice{
	{Label: "Sans (system)", Value: "ui-sans-serif"},
	{Label: "Serif", Value: "ui-serif"},
	{Label: "Mono", Value: "ui-monospace"},
	{Label: "Georgia", Value: "Georgia"},
	{Label: "Times", Value: `"Times New Roman"`},
}

// FontChoices returns the families offered by the style panel.
func FontChoices() []FontChoice {
	return append([]FontChoice(nil), fontChoices...)
}

// State is a document under edit together with its template and the key of
// the selected field.
type State struct {
	Document *models.Document
	Template *models.Template
	Selected string
}

// New starts editing doc with the first template field selected.
func New(doc *models.Document, tmpl *models.Template) State {
	s := State{Document: doc, Template: tmpl}
	if len(tmpl.Fields) > 0 {
		s.Selected = tmpl.Fields[0].Key
	}
	return s
}

// SelectedField returns the template field currently selected.
func (s State) SelectedField() (models.TemplateField, bool) {
	if s.Selected == "" {
		return models.TemplateField{}, false
	}
	return s.Template.Field(s.Selected)
}

// Select makes key the selected field. Keys the template does not declare
// leave the state unchanged.
func (s State) Select(key string) State {
	if _, ok := s.Template.Field(key); ok {
		s.Selected = key
	}
	return s
}

// SetTitle renames the document. When the data has a title value it follows
// the document title.
func (s State) SetTitle(title string) State {
	doc := s.Document.Clone()
	doc.Title = title
	if _, ok := doc.Data["title"]; ok {
		doc.Data["title"] = title
	}
	s.Document = doc
	return s
}

// SetField stores the raw editor text of a field. List and tag fields are
// split as the user types, keeping a trailing empty item so a separator just
// typed survives; the final normalization happens on save.
func (s State) SetField(key, raw string) State {
	ft := models.FieldTypeText
	if f, ok := s.Template.Field(key); ok {
		ft = f.Type
	}
	doc := s.Document.Clone()
	doc.Data[key] = multivalue.Coerce(ft, raw, multivalue.ParseOptions{KeepTrailingEmpty: true})
	s.Document = doc
	return s
}

// FieldText returns the editable text of a field.
func (s State) FieldText(key string) string {
	ft := models.FieldTypeText
	if f, ok := s.Template.Field(key); ok {
		ft = f.Type
	}
	return multivalue.Serialize(ft, s.Document.Data[key])
}

// SetFontFamily overrides the font family of the selected field.
func (s State) SetFontFamily(family string) State {
	family = strings.TrimSpace(family)
	return s.editStyle(func(fs *models.FieldStyle) { fs.FontFamily = family })
}

// SetFontSize overrides the font size of the selected field, clamped to the
// range offered by the panel.
func (s State) SetFontSize(size float64) State {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return s
	}
	size = math.Min(MaxFontSize, math.Max(MinFontSize, size))
	return s.editStyle(func(fs *models.FieldStyle) { fs.FontSize = style.Size(size) })
}

// SetFontWeight overrides the font weight of the selected field.
func (s State) SetFontWeight(weight int) State {
	if weight < 100 || weight > 900 {
		return s
	}
	return s.editStyle(func(fs *models.FieldStyle) { fs.FontWeight = style.Weight(weight) })
}

// SetTextColor overrides the text color of the selected field. Only
// "#RRGGBB" colors are accepted.
func (s State) SetTextColor(color string) State {
	color = strings.TrimSpace(color)
	if !theme.IsHex(color) {
		return s
	}
	return s.editStyle(func(fs *models.FieldStyle) { fs.TextColor = color })
}

// ResetStyle drops every override of the selected field.
func (s State) ResetStyle() State {
	if s.Selected == "" {
		return s
	}
	if _, ok := s.Document.Styles[s.Selected]; !ok {
		return s
	}
	doc := s.Document.Clone()
	delete(doc.Styles, s.Selected)
	s.Document = doc
	return s
}

func (s State) editStyle(fn func(*models.FieldStyle)) State {
	if _, ok := s.SelectedField(); !ok {
		return s
	}
	doc := s.Document.Clone()
	fs := doc.Styles[s.Selected]
	fn(&fs)
	doc.Styles[s.Selected] = fs
	s.Document = doc
	return s
}

// SetThemeColor overrides one theme role of the document.
func (s State) SetThemeColor(role, color string) State {
	color = strings.TrimSpace(color)
	if !isRole(role) || !theme.IsHex(color) {
		return s
	}
	doc := s.Document.Clone()
	doc.Theme[role] = color
	s.Document = doc
	return s
}

// ApplyPreset writes the theme derived from a palette preset onto the
// document theme.
func (s State) ApplyPreset(p theme.Preset) State {
	doc := s.Document.Clone()
	doc.Theme = theme.Apply(doc.Theme, p.Theme())
	s.Document = doc
	return s
}

// Theme returns the theme in effect for the document.
func (s State) Theme() map[string]string {
	return theme.Merge(s.Template.Colors, s.Document.Theme)
}

// EffectiveStyle returns the style shown in the panel for the selected
// field, resolved like the layout resolves it: the document override, then
// the template default, then the layout base, then the panel fallbacks.
// The text color falls back to the theme text color. Every property is set.
func (s State) EffectiveStyle() style.RenderStyle {
	text := s.Theme()[models.RoleText]
	if !theme.IsHex(text) {
		text = DefaultTextColor
	}
	return style.Cascade(
		models.FieldStyle{
			FontFamily: DefaultFontFamily,
			FontSize:   style.Size(DefaultFontSize),
			FontWeight: style.Weight(400),
			TextColor:  text,
		},
		layout.BaseStyle(s.Template.ID, s.Selected),
		s.Template.DefaultStyle(s.Selected),
		s.Document.Styles[s.Selected],
	)
}

// PanelStyle is the effective style with every property resolved, as the
// style panel controls show it.
type PanelStyle struct {
	FontFamily string
	FontSize   float64
	FontWeight int
	TextColor  string
}

// PanelStyle returns EffectiveStyle as plain values.
func (s State) PanelStyle() PanelStyle {
	rs := s.EffectiveStyle()
	ps := PanelStyle{FontFamily: rs.FontFamily, TextColor: rs.TextColor}
	if rs.FontSize != nil {
		ps.FontSize = *rs.FontSize
	}
	if rs.FontWeight != nil {
		ps.FontWeight = *rs.FontWeight
	}
	return ps
}

func isRole(role string) bool {
	for _, r := range models.Roles {
		if r == role {
			return true
		}
	}
	return false
}
