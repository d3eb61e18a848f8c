package layout

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// HTMLOptions controls how a tree is encoded as markup.
type HTMLOptions struct {
	// SelectURL returns the URL fetched when a region is clicked. When nil,
	// regions carry only their data-field attribute.
	SelectURL func(field string) string
	// Target is the hx-target selector for the selection response.
	Target string
	// Print drops the selection chrome.
	Print bool
}

// allowedTags lists the elements layouts may produce; anything else is
// written as a div.
var allowedTags = map[string]bool{
	"div": true, "span": true, "ul": true, "li": true,
}

type htmlNode struct {
	Tag      string
	Class    string
	Field    string
	Title    string
	Text     string
	Style    template.CSS
	URL      string
	Target   string
	Children []htmlNode
}

var nodeTmpl = template.Must(template.New("layout").Parse(`
{{- define "attrs"}} class="{{.Class}}"
	{{- if .Style}} style="{{.Style}}"{{end}}
	{{- if .Title}} title="{{.Title}}"{{end}}
	{{- if .Field}} data-field="{{.Field}}"{{end}}
	{{- if .URL}} hx-get="{{.URL}}" hx-trigger="click consume"{{if .Target}} hx-target="{{.Target}}"{{end}} hx-swap="outerHTML"{{end}}
{{- end}}
{{- define "children"}}{{.Text}}{{range .Children}}{{template "node" .}}{{end}}{{end}}
{{- define "node"}}
	{{- if eq .Tag "span"}}<span{{template "attrs" .}}>{{template "children" .}}</span>
	{{- else if eq .Tag "ul"}}<ul{{template "attrs" .}}>{{template "children" .}}</ul>
	{{- else if eq .Tag "li"}}<li{{template "attrs" .}}>{{template "children" .}}</li>
	{{- else}}<div{{template "attrs" .}}>{{template "children" .}}</div>
	{{- end}}
{{- end}}`))

// WriteHTML encodes the tree as HTML. Text is escaped and style values are
// reduced to a safe character set before being emitted as CSS.
func WriteHTML(w io.Writer, root *Node, opts HTMLOptions) error {
	if root == nil {
		return nil
	}
	if err := nodeTmpl.ExecuteTemplate(w, "node", toHTML(root, opts)); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// HTML is WriteHTML into a string, for embedding in page templates.
func HTML(root *Node, opts HTMLOptions) (template.HTML, error) {
	var b strings.Builder
	if err := WriteHTML(&b, root, opts); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil // #nosec G203 -- produced by html/template
}

func toHTML(n *Node, opts HTMLOptions) htmlNode {
	h := htmlNode{
		Tag:   n.Tag,
		Class: n.Class,
		Title: n.Title,
		Text:  n.Text,
		Style: cssOf(n.Style),
	}
	if !allowedTags[h.Tag] {
		h.Tag = "div"
	}
	if n.Field != "" {
		h.Field = n.Field
		if !opts.Print {
			if n.Selected {
				h.Class = joinClass(h.Class, "is-selected")
			}
			if opts.SelectURL != nil {
				h.URL = opts.SelectURL(n.Field)
				h.Target = opts.Target
			}
		}
	}
	for _, c := range n.Children {
		if c != nil {
			h.Children = append(h.Children, toHTML(c, opts))
		}
	}
	return h
}

func cssOf(decls []Decl) template.CSS {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		if !validProperty(d.Property) {
			continue
		}
		v := sanitizeCSSValue(d.Value)
		if v == "" {
			continue
		}
		parts = append(parts, d.Property+": "+v)
	}
	return template.CSS(strings.Join(parts, "; ")) // #nosec G203 -- sanitized above
}

func validProperty(p string) bool {
	if p == "" {
		return false
	}
	for _, r := range p {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
			return false
		}
	}
	return true
}

// sanitizeCSSValue keeps the characters found in colors, lengths, weights
// and font family lists.
func sanitizeCSSValue(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune(" #,.-_%\"'", r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
