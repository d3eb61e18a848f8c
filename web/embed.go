// Package web provides embedded static assets (CSS) for the fiches pages.
// The stylesheets are served at /static/ and the fiche stylesheets are also
// inlined into print pages so exported copies are self-contained.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS

// PrintStylesheets are concatenated into the print page, in order.
var PrintStylesheets = []string{"fiche.css", "print.css"}

// PrintCSS returns the stylesheets of the print page joined together.
func PrintCSS() (string, error) {
	var b strings.Builder
	for _, name := range PrintStylesheets {
		raw, err := fs.ReadFile(StaticFS, "static/"+name)
		if err != nil {
			return "", fmt.Errorf("read stylesheet %s: %w", name, err)
		}
		b.Write(raw)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
