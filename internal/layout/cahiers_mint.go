package layout

import "fiches/internal/models"

var cahiersMintBase = map[string]models.FieldStyle{
	"title":      fontStyle("ui-sans-serif", 24, 900),
	"author":     fontStyle("ui-sans-serif", 13, 600),
	"characters": fontStyle("ui-sans-serif", 12, 0),
	"summary":    fontStyle("ui-sans-serif", 12, 0),
	"structure":  fontStyle("ui-sans-serif", 12, 0),
	"takeaways":  fontStyle("ui-sans-serif", 12, 0),
}

func cahiersMint(in Input) *Node {
	s := newScope(in, cahiersMintBase)

	banner := el("div", "banner",
		s.region("title", "bare", s.textOr("div", "title", "title", placeholderTitle)),
		s.region("author", "bare muted", s.textOr("div", "", "author", placeholderAuthor)),
	).with(Decl{"background", hexWithAlpha(s.color(models.RolePrimary), "12")})

	grid := el("div", "grid two-cols",
		s.region("characters", "", sectionTitle("Personnages"), s.bullets("characters", s.list("characters"))),
		s.region("takeaways", "", sectionTitle("Idées clés"), s.bullets("takeaways", s.list("takeaways"))),
		s.region("summary", "span-2",
			sectionTitle("Résumé"),
			s.textOr("div", ClassPreWrap, "summary", placeholderEmpty),
		),
		s.region("structure", "span-2",
			sectionTitle("Structure"),
			s.textOr("div", ClassPreWrap, "structure", placeholderEmpty),
		),
	)

	return s.root(banner, grid)
}
