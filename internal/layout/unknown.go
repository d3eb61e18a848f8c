package layout

// unknownLayout marks a template id that has no layout. It never fails.
func unknownLayout(in Input) *Node {
	return el("div", ClassUnknown,
		text("span", "", "Template inconnu: "),
		text("span", "mono", in.Template.ID),
	)
}
