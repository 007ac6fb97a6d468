package lang

import "strings"

// CleanImportPath strips the quote characters tree-sitter string literals
// carry and trims whitespace, matching the normalization spec §4.8 requires
// before path-boundary matching.
func CleanImportPath(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.Trim(raw, "'\"`")
	return raw
}

// ExplicitExports walks export statements for languages with syntax for
// them (TS/JS): anything textually reachable from an `export` keyword at
// top level. exportKinds names the node kinds that introduce an export
// statement; a nested declaration's name (or its variable declarators'
// names) is read through spec's name lookup.
func ExplicitExports(root Node, spec *Spec, exportKinds map[string]bool) []string {
	var names []string
	seen := map[string]bool{}
	add := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}

	for _, c := range root.Children() {
		if !exportKinds[c.Kind()] {
			continue
		}
		// export default / export { a, b } / export const x = ... / export function f() {}
		if decl := c.ChildByField("declaration"); !decl.IsZero() {
			if n := nameField(decl, spec); n != "" {
				add(n)
			}
			for _, declr := range decl.ChildrenOfKind("variable_declarator") {
				add(nameField(declr, spec))
			}
			continue
		}
		// export { a, b, c as d }
		Walk(c, func(n Node) bool {
			if n.Kind() == "identifier" || n.Kind() == "export_specifier" {
				if n.Kind() == "export_specifier" {
					if alias := n.ChildByField("alias"); !alias.IsZero() {
						add(alias.Text())
						return false
					}
					if name := n.ChildByField("name"); !name.IsZero() {
						add(name.Text())
						return false
					}
				}
			}
			return true
		})
	}
	return names
}

// ImplicitExports lists every top-level declaration as an export, for
// languages without explicit export syntax (PHP, Python, Ruby, ...): spec
// §4.1 calls for "all top-level symbols" when a language has no gate
// keyword comparable to TS/JS `export`.
func ImplicitExports(_ Node, topLevel []Symbol) []string {
	names := make([]string, 0, len(topLevel))
	for _, s := range topLevel {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names
}
