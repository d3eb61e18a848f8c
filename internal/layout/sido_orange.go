package layout

import "fiches/internal/models"

var sidoOrangeBase = map[string]models.FieldStyle{
	"title":   fontStyle("ui-serif", 22, 800),
	"author":  fontStyle("ui-sans-serif", 13, 600),
	"context": fontStyle("ui-sans-serif", 12, 0),
	"themes":  fontStyle("ui-sans-serif", 12, 0),
	"quotes":  fontStyle("ui-serif", 12, 0),
	"opinion": fontStyle("ui-sans-serif", 12, 0),
}

// sidoOrange is a reading sheet: header with title and author, then
// context, theme chips, quotes and a personal opinion.
func sidoOrange(in Input) *Node {
	s := newScope(in, sidoOrangeBase)
	primary := s.color(models.RolePrimary)

	header := el("div", "header",
		el("div", "header-main",
			s.region("title", "bare", s.textOr("div", "title", "title", placeholderTitle)).
				with(Decl{"color", s.color(models.RoleText)}),
			s.region("author", "bare muted", s.textOr("div", "", "author", placeholderAuthor)),
		),
		(&Node{Tag: "div", Class: "swatch", Title: "Couleur primaire"}).with(Decl{"background", primary}),
	)

	chips := el("div", "chips").styled(s.style("themes"))
	if items := s.list("themes"); len(items) > 0 {
		for _, t := range items {
			chips.Children = append(chips.Children, text("span", ClassChip, t).with(
				Decl{"background", hexWithAlpha(primary, "22")},
				Decl{"color", s.color(models.RoleText)},
			))
		}
	} else {
		chips.Children = append(chips.Children, text("span", ClassPlaceholder, placeholderEmpty))
	}

	grid := el("div", "grid two-cols",
		s.region("context", "span-2",
			sectionTitle("Contexte / Résumé"),
			s.textOr("div", ClassPreWrap, "context", placeholderEmpty),
		),
		s.region("themes", "", sectionTitle("Thèmes"), chips),
		s.region("quotes", "", sectionTitle("Citations"), s.bullets("quotes", s.list("quotes"))),
		s.region("opinion", "span-2",
			sectionTitle("Avis personnel"),
			s.textOr("div", ClassPreWrap, "opinion", placeholderEmpty),
		),
	)

	footer := el("div", "footer muted",
		text("span", "", "Template: "+s.tmpl.Name),
		text("span", ClassChip, "accent").with(Decl{"background", hexWithAlpha(s.color(models.RoleAccent), "22")}),
	)

	return s.root(header, grid, footer)
}
