package layout

import "fiches/internal/models"

var sidoVrillesBase = map[string]models.FieldStyle{
	"title":          fontStyle("ui-serif", 28, 900),
	"subtitle":       fontStyle("ui-sans-serif", 12, 800),
	"keywords":       fontStyle("ui-sans-serif", 10, 0),
	"writingContext": fontStyle("ui-sans-serif", 12, 0),
	"themes":         fontStyle("ui-sans-serif", 11, 800),
	"structure":      fontStyle("ui-sans-serif", 12, 0),
	"linkToCourse":   fontStyle("ui-sans-serif", 12, 0),
	"definitions":    fontStyle("ui-sans-serif", 12, 0),
	"author":         fontStyle("ui-sans-serif", 14, 900),
	"authorFacts":    fontStyle("ui-sans-serif", 11, 800),
	"toRead":         fontStyle("ui-sans-serif", 12, 0),
}

// sidoVrilles is the course sheet: a banner header, tinted panels for the
// writing context and definitions, and an author card with selectable facts.
func sidoVrilles(in Input) *Node {
	s := newScope(in, sidoVrillesBase)
	primary := s.color(models.RolePrimary)
	textColor := s.color(models.RoleText)

	keywords := el("div", "keywords").styled(s.style("keywords"))
	if items := s.list("keywords"); len(items) > 0 {
		for _, k := range items {
			keywords.Children = append(keywords.Children, text("span", "", k))
		}
	} else {
		keywords.Children = append(keywords.Children, text("div", ClassPlaceholder, "mots-clés…"))
	}

	header := el("div", "header",
		el("div", "header-main",
			s.region("title", "bare",
				el("div", "pill", s.textOr("div", "title", "title", placeholderTitle)).
					with(Decl{"background", hexWithAlpha(primary, "E6")}),
			),
			s.region("subtitle", "bare", s.textOr("div", "upper", "subtitle", "Sous-titre")),
		),
		s.region("keywords", "bare", keywords),
	)

	panel := func(key, title string) *Node {
		return s.region(key, "flush",
			el("div", "panel",
				sectionTitle(title),
				s.textOr("div", ClassPreWrap, key, placeholderEmpty),
			).with(
				Decl{"background", hexWithAlpha(primary, "D9")},
				Decl{"color", textColor},
			),
		)
	}

	themes := el("div", "stack")
	if items := s.list("themes"); len(items) > 0 {
		for _, t := range items {
			chip := text("span", ClassChip+" upper", t).with(
				Decl{"background", hexWithAlpha(primary, "E6")},
				Decl{"color", textColor},
			)
			themes.Children = append(themes.Children, chip.styled(s.style("themes")))
		}
	} else {
		themes.Children = append(themes.Children, text("span", ClassPlaceholder, placeholderEmpty))
	}

	var structure *Node
	if lines := s.lines("structure"); len(lines) > 0 {
		structure = s.bullets("structure", lines)
	} else {
		structure = text("div", ClassPlaceholder, placeholderEmpty)
	}
	structureBox := el("div", "boxed", structure).with(
		Decl{"border-color", hexWithAlpha(primary, "99")},
		Decl{"background", hexWithAlpha(s.color(models.RoleBackground), "F2")},
	)

	middle := el("div", "grid two-cols",
		s.region("themes", "", sectionTitle("Thèmes"), themes),
		s.region("structure", "", sectionTitle("Structure"), structureBox),
	)

	course := s.region("linkToCourse", "",
		sectionTitle("Lien avec le parcours"),
		el("div", "boxed dotted", s.textOr("div", ClassPreWrap, "linkToCourse", placeholderEmpty)).
			with(Decl{"border-color", hexWithAlpha(primary, "99")}),
	)

	facts := el("div", "chips")
	if items := s.list("authorFacts"); len(items) > 0 {
		for _, f := range items {
			chip := text("span", ClassChip, f).with(Decl{"background", "#11182712"})
			facts.Children = append(facts.Children, chip.styled(s.style("authorFacts")))
		}
	} else {
		facts.Children = append(facts.Children, text("span", ClassPlaceholder, placeholderEmpty))
	}

	authorCard := s.region("author", "",
		el("div", "card-head",
			text("div", "pill upper", "Auteur").with(Decl{"background", hexWithAlpha(primary, "E6")}),
			text("div", "muted small", "Portrait (optionnel)"),
		),
		el("div", "card-body",
			(&Node{Tag: "div", Class: "portrait", Title: "Zone image (non gérée)"}).with(
				Decl{"border-color", hexWithAlpha(primary, "66")},
				Decl{"background", "#11182710"},
			),
			el("div", "card-text",
				s.textOr("div", "truncate", "author", "Nom de l’auteur·e"),
				s.region("authorFacts", "bare", facts),
			),
		),
	)
	// The card reads as selected while either of its fields is edited.
	authorCard.Selected = s.selected == "author" || s.selected == "authorFacts"

	toRead := s.region("toRead", "",
		el("div", "card-head",
			text("div", "pill upper", "À lire").with(Decl{"background", hexWithAlpha(s.color(models.RoleBackground), "FF")}),
			(&Node{Tag: "span", Class: "bar"}).with(Decl{"background", hexWithAlpha(primary, "CC")}),
		),
		el("div", "panel", s.bullets("toRead", s.list("toRead"))).
			with(Decl{"background", hexWithAlpha(primary, "D9")}),
	)

	return s.root(
		header,
		panel("writingContext", "Contexte d’écriture"),
		middle,
		course,
		panel("definitions", "Définition des termes"),
		el("div", "grid two-cols", authorCard, toRead),
	)
}
