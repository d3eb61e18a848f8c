// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data types shared by the stores, the rendering
// layer and the HTTP handlers.
package models

import (
	"encoding/json"
	"math"
)

// FieldType categorizes a template field by how its value is edited and stored.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeList     FieldType = "list"
	FieldTypeTags     FieldType = "tags"
)

// IsMultiValue returns true for field types stored as an ordered string list.
func (ft FieldType) IsMultiValue() bool {
	return ft == FieldTypeList || ft == FieldTypeTags
}

// FieldStyle is a partial set of typography properties. Every property is
// optional: an empty string or nil pointer means "not set".
type FieldStyle struct {
	FontFamily string   `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontWeight *int     `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	TextColor  string   `json:"textColor,omitempty" yaml:"textColor,omitempty"`
}

// IsZero reports whether no property is set.
func (s FieldStyle) IsZero() bool {
	return s.FontFamily == "" && s.FontSize == nil && s.FontWeight == nil && s.TextColor == ""
}

// UnmarshalJSON decodes a style leniently: a property whose value has the
// wrong type is dropped instead of failing the whole document. Font weights
// must be whole numbers.
func (s *FieldStyle) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		*s = FieldStyle{}
		return nil
	}

	var out FieldStyle
	if v, ok := raw["fontFamily"].(string); ok {
		out.FontFamily = v
	}
	if v, ok := raw["textColor"].(string); ok {
		out.TextColor = v
	}
	if v, ok := raw["fontSize"].(float64); ok {
		out.FontSize = &v
	}
	if v, ok := raw["fontWeight"].(float64); ok && v == math.Trunc(v) {
		w := int(v)
		out.FontWeight = &w
	}
	*s = out
	return nil
}

// Colors holds the four named theme colors a template ships with.
type Colors struct {
	Primary    string `json:"primary" yaml:"primary"`
	Accent     string `json:"accent" yaml:"accent"`
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
}

// Theme role names, used as keys of a document's theme overrides.
const (
	RolePrimary    = "primary"
	RoleAccent     = "accent"
	RoleBackground = "background"
	RoleText       = "text"
)

// Roles lists the theme roles in display order.
var Roles = []string{RolePrimary, RoleAccent, RoleBackground, RoleText}

// Map returns the colors keyed by role name.
func (c Colors) Map() map[string]string {
	return map[string]string{
		RolePrimary:    c.Primary,
		RoleAccent:     c.Accent,
		RoleBackground: c.Background,
		RoleText:       c.Text,
	}
}

// TemplateField is one named, typed slot in a template.
type TemplateField struct {
	Key          string      `json:"key" yaml:"key"`
	Label        string      `json:"label" yaml:"label"`
	Type         FieldType   `json:"type" yaml:"type"`
	Required     bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Placeholder  string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText     string      `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	DefaultStyle *FieldStyle `json:"defaultStyle,omitempty" yaml:"defaultStyle,omitempty"`
}

// Template is a fixed schema of labeled fields plus default colors. Templates
// are loaded from files and never modified at runtime.
type Template struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Colors      Colors          `json:"colors" yaml:"colors"`
	Fields      []TemplateField `json:"fields" yaml:"fields"`
}

// Field returns the field declared with the given key.
func (t *Template) Field(key string) (TemplateField, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return TemplateField{}, false
}

// DefaultStyle returns the declared default style of a field, or an empty
// style when the field is unknown or declares none.
func (t *Template) DefaultStyle(key string) FieldStyle {
	f, ok := t.Field(key)
	if !ok || f.DefaultStyle == nil {
		return FieldStyle{}
	}
	return *f.DefaultStyle
}

// TemplateSummary is the listing projection of a template.
type TemplateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Colors      Colors `json:"colors"`
}

// Summary projects the template for listings.
func (t *Template) Summary() TemplateSummary {
	return TemplateSummary{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Colors:      t.Colors,
	}
}
