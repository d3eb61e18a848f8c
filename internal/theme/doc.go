// Package theme resolves the colors in effect for a document.
//
// A document's theme is the template's four named colors overridden role by
// role by the document's own theme map (Merge). Palette presets offer
// one-click themes: FromPalette turns a five-swatch preset into the four
// roles by sorting the swatches on perceptual luminance.
//
//	merged := theme.Merge(tmpl.Colors, doc.Theme)
//	roles := theme.FromPalette(preset.Colors)
//	doc.Theme = theme.Apply(doc.Theme, roles)
package theme
