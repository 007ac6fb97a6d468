package lang

// GenericParameterNames is a best-effort parameter-name extractor shared by
// every language Spec: most tree-sitter parameter-list grammars wrap each
// parameter in its own node carrying either a "name" or "pattern" field, or
// are themselves a bare identifier (C-style `int x`), so a single heuristic
// covers TS/JS, Python, Java, PHP, Ruby, Rust, and C without per-language
// bespoke parameter walkers.
func GenericParameterNames(paramsNode Node) []string {
	var names []string
	for _, child := range paramsNode.Children() {
		switch child.Kind() {
		case ",", "(", ")", "comment":
			continue
		}

		if n := child.ChildByField("name"); !n.IsZero() {
			names = append(names, n.Text())
			continue
		}
		if n := child.ChildByField("pattern"); !n.IsZero() {
			names = append(names, n.Text())
			continue
		}
		if n := child.ChildByField("declarator"); !n.IsZero() {
			names = append(names, identifierLeaf(n))
			continue
		}

		if child.Kind() == "identifier" {
			names = append(names, child.Text())
		}
	}
	return names
}

// identifierLeaf finds the innermost identifier inside a (possibly
// pointer/array-wrapped) C-style declarator.
func identifierLeaf(n Node) string {
	var found string
	Walk(n, func(n Node) bool {
		if n.Kind() == "identifier" && found == "" {
			found = n.Text()
		}
		return found == ""
	})
	return found
}
