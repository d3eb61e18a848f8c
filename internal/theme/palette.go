package theme

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"fiches/internal/models"
)

// PaletteSize is the number of swatches in a palette preset.
const PaletteSize = 5

// Roles is a fully populated four-role theme.
type Roles struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Primary    string `json:"primary"`
	Accent     string `json:"accent"`
}

// Map returns the roles keyed by role name.
func (r Roles) Map() map[string]string {
	return map[string]string{
		models.RoleBackground: r.Background,
		models.RoleText:       r.Text,
		models.RolePrimary:    r.Primary,
		models.RoleAccent:     r.Accent,
	}
}

// ParseHex decodes a "#RRGGBB" color into its channels.
func ParseHex(hex string) (r, g, b uint8, ok bool) {
	h := strings.TrimSpace(hex)
	if len(h) != 7 || h[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// IsHex reports whether s is a valid "#RRGGBB" color.
func IsHex(s string) bool {
	_, _, _, ok := ParseHex(s)
	return ok
}

// Luminance returns the relative luminance of a hex color in [0, 1].
func Luminance(hex string) (float64, bool) {
	r, g, b, ok := ParseHex(hex)
	if !ok {
		return 0, false
	}
	l := (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 255
	return math.Min(1, math.Max(0, l)), true
}

// FromPalette derives a theme from a five-swatch palette. The darkest swatch
// becomes the text color, the lightest the background, and the middle
// swatches provide primary and accent. Malformed swatches are ignored; when
// fewer than five remain the swatches are mapped by position instead.
func FromPalette(colors [PaletteSize]string) Roles {
	type swatch struct {
		hex string
		lum float64
	}

	valid := make([]swatch, 0, PaletteSize)
	for _, c := range colors {
		if l, ok := Luminance(c); ok {
			valid = append(valid, swatch{hex: strings.TrimSpace(c), lum: l})
		}
	}

	if len(valid) < PaletteSize {
		return Roles{
			Background: colors[1],
			Primary:    colors[2],
			Accent:     colors[3],
			Text:       colors[4],
		}
	}

	sort.SliceStable(valid, func(i, j int) bool { return valid[i].lum < valid[j].lum })

	middle := append([]swatch(nil), valid[1:len(valid)-1]...)
	sort.SliceStable(middle, func(i, j int) bool { return middle[i].lum < middle[j].lum })

	k := len(middle)
	lo := (k - 1) / 2
	hi := k / 2 // ceil((k-1)/2)

	return Roles{
		Text:       valid[0].hex,
		Background: valid[len(valid)-1].hex,
		Primary:    middle[lo].hex,
		Accent:     middle[hi].hex,
	}
}

// Apply writes the roles onto a copy of the document theme overrides; keys
// other than the four roles are preserved.
func Apply(overrides map[string]string, r Roles) map[string]string {
	out := make(map[string]string, len(overrides)+4)
	for k, v := range overrides {
		out[k] = v
	}
	for k, v := range r.Map() {
		out[k] = v
	}
	return out
}

// Merge returns the theme in effect: the template colors overridden key by
// key by the non-empty document overrides. Override keys that are not one
// of the four roles are carried over. Neither input is modified.
func Merge(colors models.Colors, overrides map[string]string) map[string]string {
	out := colors.Map()
	for k, v := range overrides {
		if v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
