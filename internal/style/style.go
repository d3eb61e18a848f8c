// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package style merges a field's declared default style with a document's
// per-field override into the style actually used for rendering.
package style

import (
	"strconv"

	"fiches/internal/models"
)

// RenderStyle is the effective style of a field region. Unset properties are
// left to the rendering surface (browser default size, inherited color).
type RenderStyle struct {
	FontFamily string
	FontSize   *float64
	FontWeight *int
	TextColor  string
}

// Resolve merges def and override property by property; the override wins
// whenever it sets a property.
func Resolve(def, override models.FieldStyle) RenderStyle {
	return Cascade(def, override)
}

// Cascade applies the layers in order, each later layer overriding the
// properties it sets.
func Cascade(layers ...models.FieldStyle) RenderStyle {
	var rs RenderStyle
	for _, l := range layers {
		if l.FontFamily != "" {
			rs.FontFamily = l.FontFamily
		}
		if l.FontSize != nil {
			v := *l.FontSize
			rs.FontSize = &v
		}
		if l.FontWeight != nil {
			v := *l.FontWeight
			rs.FontWeight = &v
		}
		if l.TextColor != "" {
			rs.TextColor = l.TextColor
		}
	}
	return rs
}

// Declarations returns the CSS property/value pairs for the set properties,
// in a stable order.
func (rs RenderStyle) Declarations() [][2]string {
	var decls [][2]string
	if rs.FontFamily != "" {
		decls = append(decls, [2]string{"font-family", rs.FontFamily})
	}
	if rs.FontSize != nil {
		decls = append(decls, [2]string{"font-size", strconv.FormatFloat(*rs.FontSize, 'f', -1, 64) + "px"})
	}
	if rs.FontWeight != nil {
		decls = append(decls, [2]string{"font-weight", strconv.Itoa(*rs.FontWeight)})
	}
	if rs.TextColor != "" {
		decls = append(decls, [2]string{"color", rs.TextColor})
	}
	return decls
}

// Size returns a pointer to v, for building styles in code.
func Size(v float64) *float64 { return &v }

// Weight returns a pointer to v, for building styles in code.
func Weight(v int) *int { return &v }
