package layout

import (
	"strings"

	"fiches/internal/models"
	"fiches/internal/multivalue"
	"fiches/internal/style"
	"fiches/internal/theme"
)

// Placeholder texts shown for empty fields.
const (
	placeholderTitle  = "Titre"
	placeholderAuthor = "Auteur"
	placeholderEmpty  = "…"
)

// scope carries the resolved inputs of one layout invocation.
type scope struct {
	doc      *models.Document
	tmpl     *models.Template
	selected string
	theme    map[string]string
	base     map[string]models.FieldStyle
}

func newScope(in Input, base map[string]models.FieldStyle) *scope {
	return &scope{
		doc:      in.Document,
		tmpl:     in.Template,
		selected: in.Selected,
		theme:    theme.Merge(in.Template.Colors, in.Document.Theme),
		base:     base,
	}
}

func (s *scope) color(role string) string {
	return s.theme[role]
}

// style resolves a field's style: layout base, then the template default,
// then the document override.
func (s *scope) style(key string) style.RenderStyle {
	return style.Cascade(s.base[key], s.tmpl.DefaultStyle(key), s.doc.Styles[key])
}

// value reads a field as display text.
func (s *scope) value(key string) string {
	ft := models.FieldTypeText
	if f, ok := s.tmpl.Field(key); ok {
		ft = f.Type
	}
	return multivalue.Serialize(ft, s.doc.Data[key])
}

func (s *scope) list(key string) []string {
	return multivalue.AsStringList(s.doc.Data[key])
}

// lines reads a field as non-empty trimmed lines.
func (s *scope) lines(key string) []string {
	var out []string
	for _, l := range strings.Split(s.value(key), "\n") {
		if l = strings.TrimSpace(strings.TrimSuffix(l, "\r")); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// region wraps children in a selectable region for key.
func (s *scope) region(key, class string, children ...*Node) *Node {
	n := el("div", joinClass(ClassRegion, class), children...)
	n.Field = key
	n.Selected = s.selected == key
	return n
}

// root builds the themed outer node of a layout.
func (s *scope) root(children ...*Node) *Node {
	n := el("div", ClassRoot+" fiche-"+s.tmpl.ID, children...)
	n.with(
		Decl{"background", s.color(models.RoleBackground)},
		Decl{"color", s.color(models.RoleText)},
	)
	cfg := theme.RendererConfig(s.tmpl.ID, s.theme)
	for _, role := range models.Roles {
		if v, ok := cfg.CSSVars["--"+role]; ok {
			n.with(Decl{"--" + role, v})
		}
	}
	return n
}

// textOr renders a field value or its placeholder.
func (s *scope) textOr(tag, class, key, placeholder string) *Node {
	if v := s.value(key); v != "" {
		return text(tag, class, v).styled(s.style(key))
	}
	return text(tag, joinClass(class, ClassPlaceholder), placeholder).styled(s.style(key))
}

// bullets renders items as a list, or a single placeholder item.
func (s *scope) bullets(key string, items []string) *Node {
	ul := el("ul", ClassList).styled(s.style(key))
	if len(items) == 0 {
		ul.Children = append(ul.Children, text("li", ClassPlaceholder, placeholderEmpty))
		return ul
	}
	for _, item := range items {
		ul.Children = append(ul.Children, text("li", "", item))
	}
	return ul
}

func sectionTitle(s string) *Node {
	return text("div", ClassSectionTitle, s)
}

// hexWithAlpha appends a two-digit alpha to a "#RRGGBB" color and leaves
// anything else untouched.
func hexWithAlpha(hex, alpha string) string {
	h := strings.TrimSpace(hex)
	if theme.IsHex(h) {
		return h + alpha
	}
	return hex
}

func joinClass(classes ...string) string {
	var parts []string
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

func fontStyle(family string, size float64, weight int) models.FieldStyle {
	fs := models.FieldStyle{FontFamily: family, FontSize: style.Size(size)}
	if weight > 0 {
		fs.FontWeight = style.Weight(weight)
	}
	return fs
}
