// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package layout turns a document and its template into a visual tree.
//
// Every known template id has its own hand-written layout. The layouts share
// a data-access contract only: the theme comes from theme.Merge, values from
// the multivalue codec and styles from the style merger. A template id
// without a layout renders a placeholder node instead of failing, so adding
// a template file means adding a Kind and its LayoutFunc here.
//
// The tree is independent of any output format; WriteHTML encodes it as
// markup for the editor preview and the print page.
package layout

import (
	"fiches/internal/models"
)

// Kind identifies which hand-written layout renders a template.
type Kind int

const (
	KindUnknown Kind = iota
	KindSidoOrange
	KindCahiersMint
	KindSidoVrilles
)

// kindIDs maps template ids to their layout kind.
var kindIDs = map[string]Kind{
	"sido-orange":  KindSidoOrange,
	"cahiers-mint": KindCahiersMint,
	"sido-vrilles": KindSidoVrilles,
}

// Kinds returns every layout kind, KindUnknown included.
func Kinds() []Kind {
	return []Kind{KindUnknown, KindSidoOrange, KindCahiersMint, KindSidoVrilles}
}

// KindOf resolves a template id to its layout kind.
func KindOf(templateID string) Kind {
	if k, ok := kindIDs[templateID]; ok {
		return k
	}
	return KindUnknown
}

// String returns the template id served by the kind.
func (k Kind) String() string {
	for id, kind := range kindIDs {
		if kind == k {
			return id
		}
	}
	return "unknown"
}

// Input is everything a layout reads. Selected is the key of the field
// currently being edited, or empty.
type Input struct {
	Document *models.Document
	Template *models.Template
	Selected string
}

// LayoutFunc renders one template's visual composition. It must be pure.
type LayoutFunc func(Input) *Node

var layouts = map[Kind]LayoutFunc{
	KindUnknown:     unknownLayout,
	KindSidoOrange:  sidoOrange,
	KindCahiersMint: cahiersMint,
	KindSidoVrilles: sidoVrilles,
}

var bases = map[Kind]map[string]models.FieldStyle{
	KindSidoOrange:  sidoOrangeBase,
	KindCahiersMint: cahiersMintBase,
	KindSidoVrilles: sidoVrillesBase,
}

// BaseStyle returns the style a layout gives a field before template
// defaults and document overrides apply. Unknown templates and fields have
// an empty base.
func BaseStyle(templateID, key string) models.FieldStyle {
	fs := bases[KindOf(templateID)][key]
	if fs.FontSize != nil {
		v := *fs.FontSize
		fs.FontSize = &v
	}
	if fs.FontWeight != nil {
		v := *fs.FontWeight
		fs.FontWeight = &v
	}
	return fs
}

// Render dispatches the input to the layout of its template. A nil template
// renders like an unknown template named after the document's template id;
// a nil document renders like an empty one.
func Render(in Input) *Node {
	if in.Template == nil {
		in.Template = &models.Template{}
		if in.Document != nil {
			in.Template.ID = in.Document.TemplateID
		}
	}
	if in.Document == nil {
		in.Document = &models.Document{TemplateID: in.Template.ID}
	}
	fn, ok := layouts[KindOf(in.Template.ID)]
	if !ok {
		fn = unknownLayout
	}
	return fn(in)
}

// Activate finds the region carrying key and passes the key to onSelect.
// It reports whether such a region exists.
func Activate(root *Node, key string, onSelect func(string)) bool {
	if key == "" {
		return false
	}
	n := root.Find(key)
	if n == nil {
		return false
	}
	if onSelect != nil {
		onSelect(n.Field)
	}
	return true
}
