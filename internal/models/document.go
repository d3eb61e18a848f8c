// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// DefaultDocumentTitle is used when a document is created without a title.
const DefaultDocumentTitle = "Nouvelle fiche"

// Document is a user-created instance of a template: field values plus
// per-field style overrides and theme color overrides. Data values are
// strings for text/textarea fields and ordered string lists for list/tags
// fields; they are kept as decoded JSON so legacy shapes survive a round trip.
type Document struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	TemplateID string                `json:"templateId"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	Data       map[string]any        `json:"data"`
	Styles     map[string]FieldStyle `json:"styles"`
	Theme      map[string]string     `json:"theme"`
}

// DocumentIndexEntry is the listing projection of a document, stored
// separately from the document itself.
type DocumentIndexEntry struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"templateId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IndexEntry projects the document into its index entry.
func (d *Document) IndexEntry() DocumentIndexEntry {
	return DocumentIndexEntry{
		ID:         d.ID,
		Title:      d.Title,
		TemplateID: d.TemplateID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// Clone returns a deep copy of the document maps so callers can edit the
// copy without touching the original.
func (d *Document) Clone() *Document {
	c := *d
	c.Data = make(map[string]any, len(d.Data))
	for k, v := range d.Data {
		switch list := v.(type) {
		case []string:
			v = append([]string(nil), list...)
		case []any:
			v = append([]any(nil), list...)
		}
		c.Data[k] = v
	}
	c.Styles = make(map[string]FieldStyle, len(d.Styles))
	for k, v := range d.Styles {
		c.Styles[k] = v
	}
	c.Theme = make(map[string]string, len(d.Theme))
	for k, v := range d.Theme {
		c.Theme[k] = v
	}
	return &c
}
