package layout

import (
	"strings"

	"fiches/internal/style"
)

// Class names shared by the layouts and the stylesheet.
const (
	ClassRoot         = "fiche"
	ClassUnknown      = "fiche-unknown"
	ClassRegion       = "region"
	ClassSectionTitle = "section-title"
	ClassPlaceholder  = "placeholder"
	ClassPreWrap      = "prewrap"
	ClassChip         = "chip"
	ClassList         = "bullets"
)

// Decl is one CSS declaration.
type Decl struct {
	Property string
	Value    string
}

// Node is an element of the visual tree. A node with a Field is a
// selectable region for that template field.
type Node struct {
	Tag      string
	Class    string
	Field    string
	Selected bool
	Title    string
	Text     string
	Style    []Decl
	Children []*Node
}

func el(tag, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: children}
}

func text(tag, class, s string) *Node {
	return &Node{Tag: tag, Class: class, Text: s}
}

// with appends declarations to the node style and returns the node.
func (n *Node) with(decls ...Decl) *Node {
	for _, d := range decls {
		if d.Value != "" {
			n.Style = append(n.Style, d)
		}
	}
	return n
}

func (n *Node) styled(rs style.RenderStyle) *Node {
	for _, d := range rs.Declarations() {
		n.Style = append(n.Style, Decl{Property: d[0], Value: d[1]})
	}
	return n
}

// HasClass reports whether the node carries the class name c.
func (n *Node) HasClass(c string) bool {
	for _, f := range strings.Fields(n.Class) {
		if f == c {
			return true
		}
	}
	return false
}

// Walk visits the node and its descendants depth first, stopping early when
// fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first region for field key, or nil.
func (n *Node) Find(key string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if c.Field == key {
			found = c
			return false
		}
		return true
	})
	return found
}

// Regions returns the field keys of all selectable regions in tree order.
func (n *Node) Regions() []string {
	var keys []string
	n.Walk(func(c *Node) bool {
		if c.Field != "" {
			keys = append(keys, c.Field)
		}
		return true
	})
	return keys
}

// TextContent concatenates the text of the node and its descendants,
// separated by single spaces.
func (n *Node) TextContent() string {
	var parts []string
	n.Walk(func(c *Node) bool {
		if c.Text != "" {
			parts = append(parts, c.Text)
		}
		return true
	})
	return strings.Join(parts, " ")
}
