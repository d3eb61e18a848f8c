// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package multivalue converts field values between the free-form text typed
// in the editor and the ordered string lists stored for "list" and "tags"
// fields. All functions are total: unexpected shapes degrade to empty values.
package multivalue

import (
	"regexp"
	"strconv"
	"strings"

	"fiches/internal/models"
)

var (
	// separators matches a run of item separators.
	separators = regexp.MustCompile(`[\n\r,;]+`)
	// trailingSeparator matches text ending in a separator, optionally
	// followed by whitespace.
	trailingSeparator = regexp.MustCompile(`[\n\r,;]\s*$`)
)

// ParseOptions tunes edit-time parsing.
type ParseOptions struct {
	// KeepTrailingEmpty appends one empty item when the text ends with a
	// separator, so a controlled input re-rendered from the parsed value
	// keeps the separator the user just typed.
	KeepTrailingEmpty bool
}

// Serialize renders a stored value as editable text: list items one per
// line, tags joined by ", ", anything else as a plain string.
func Serialize(ft models.FieldType, v any) string {
	switch ft {
	case models.FieldTypeList:
		if items, ok := toStrings(v); ok {
			return strings.Join(items, "\n")
		}
	case models.FieldTypeTags:
		if items, ok := toStrings(v); ok {
			return strings.Join(items, ", ")
		}
	}
	return AsString(v)
}

// Parse splits editor text into items. Empty items are dropped, except for
// the single trailing one kept by opts.KeepTrailingEmpty.
func Parse(raw string, opts ParseOptions) []string {
	items := split(raw)
	if opts.KeepTrailingEmpty && trailingSeparator.MatchString(raw) {
		items = append(items, "")
	}
	return items
}

// Normalize produces the persisted form of a multi-value field: every
// element is re-split on the separators, trimmed, and empties are dropped.
// It accepts a string, a string list or a list of scalars.
func Normalize(v any) []string {
	switch val := v.(type) {
	case string:
		return split(val)
	default:
		items, ok := toStrings(v)
		if !ok {
			return []string{}
		}
		out := []string{}
		for _, item := range items {
			out = append(out, split(item)...)
		}
		return out
	}
}

// AsString returns v as display text. Nil is empty, numbers use their
// shortest form and lists are joined with commas.
func AsString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, AsString(item))
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// AsStringList reads a stored multi-value field for display. Both storage
// formats are accepted: a flat list, or a legacy list whose elements still
// contain separators (["a, b", "c"] yields a, b, c). A plain string is split
// the same way.
func AsStringList(v any) []string {
	return Normalize(v)
}

// Coerce converts the raw editor text of a field into its edit-time value.
func Coerce(ft models.FieldType, raw string, opts ParseOptions) any {
	if ft.IsMultiValue() {
		return Parse(raw, opts)
	}
	return raw
}

// NormalizeData returns the persisted form of a document's data. List and
// tags fields are normalized, text fields are stringified, keys the template
// does not declare are copied unchanged. The input map is not modified.
func NormalizeData(tmpl *models.Template, data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	if tmpl == nil {
		return out
	}
	for _, f := range tmpl.Fields {
		v, ok := data[f.Key]
		if !ok {
			continue
		}
		if f.Type.IsMultiValue() {
			out[f.Key] = Normalize(v)
		} else {
			out[f.Key] = AsString(v)
		}
	}
	return out
}

// split separates s on runs of separators, trims items and drops empties.
func split(s string) []string {
	out := []string{}
	for _, part := range separators.Split(s, -1) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// toStrings converts list-shaped values to strings. Non-list values report
// false.
func toStrings(v any) ([]string, bool) {
	switch val := v.(type) {
	case []string:
		return val, true
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, AsString(item))
		}
		return out, true
	default:
		return nil, false
	}
}
