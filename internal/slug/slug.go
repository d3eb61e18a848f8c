// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns document titles into file-name-safe slugs, used for
// export object keys and download names. Accented letters are folded to
// their base letter so French titles stay readable.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, whitespace or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators matches runs of whitespace and hyphens.
	separators = regexp.MustCompile(`[\s-]+`)
)

// ligatures are letters that do not decompose into a base letter.
var ligatures = strings.NewReplacer("œ", "oe", "Œ", "oe", "æ", "ae", "Æ", "ae", "ß", "ss")

// Fold removes diacritics: "Écrire à l'été" becomes "Ecrire a l'ete".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, ligatures.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// Generate creates a slug from the given string.
// Example: "Le Horla, Maupassant (1887)" → "le-horla-maupassant-1887"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(Fold(s)))
	// Apostrophes join words in French ("l'été" → "l-ete").
	result = strings.NewReplacer("'", " ", "’", " ").Replace(result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// OrDefault returns the slug of s, or def when s has no usable characters.
func OrDefault(s, def string) string {
	if g := Generate(s); g != "" {
		return g
	}
	return def
}
