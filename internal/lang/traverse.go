package lang

// Traverse drives the recursive container-descending walk described in
// spec §4.2: visit container bodies, collect chunks for nodes matching the
// traverser's target types, and emit a single chunk for a variable-bound
// function expression (JS/TS `const x = () => {...}`).
func Traverse(root Node, spec *Spec) []ChunkCandidate {
	var candidates []ChunkCandidate

	var walk func(n Node, enclosingClass string)
	walk = func(n Node, enclosingClass string) {
		kind := n.Kind()

		if spec.ExtractVariableFunction != nil {
			if name, ok := spec.ExtractVariableFunction(n); ok {
				candidates = append(candidates, ChunkCandidate{
					Node:       n,
					Kind:       KindFunction,
					SymbolName: name,
					Signature:  signatureUpToBody(n, 200),
				})
				return
			}
		}

		switch spec.NodeRole(kind) {
		case RoleClass, RoleInterface:
			name := nameField(n, spec)
			ck := KindClass
			if spec.NodeRole(kind) == RoleInterface {
				ck = KindInterface
			}
			candidates = append(candidates, ChunkCandidate{
				Node:       n,
				Kind:       ck,
				SymbolName: name,
			})
			descendBody(n, spec, name, walk)
			return

		case RoleFunction, RoleMethod:
			name := nameField(n, spec)
			ck := KindFunction
			parent := ""
			if enclosingClass != "" {
				ck = KindMethod
				parent = enclosingClass
			}
			var params []string
			if spec.ExtractParameters != nil {
				if pn := n.ChildByField(spec.ParametersField); !pn.IsZero() {
					params = spec.ExtractParameters(pn)
				}
			}
			candidates = append(candidates, ChunkCandidate{
				Node:        n,
				Kind:        ck,
				SymbolName:  name,
				ParentClass: parent,
				Signature:   signatureUpToBody(n, 200),
				Parameters:  params,
			})
			descendBody(n, spec, enclosingClass, walk)
			return
		}

		for _, c := range n.Children() {
			walk(c, enclosingClass)
		}
	}

	walk(root, "")
	return candidates
}

func descendBody(n Node, spec *Spec, enclosingClass string, walk func(Node, string)) {
	// Some grammars (Ruby) don't expose a "body" field on container nodes;
	// their statements sit directly among the container's children instead.
	if spec.BodyField == "" {
		for _, c := range n.Children() {
			walk(c, enclosingClass)
		}
		return
	}
	body := n.ChildByField(spec.BodyField)
	if body.IsZero() {
		return
	}
	for _, c := range body.Children() {
		walk(c, enclosingClass)
	}
}

func nameField(n Node, spec *Spec) string {
	field := spec.NameField
	if field == "" {
		field = "name"
	}
	if nameNode := n.ChildByField(field); !nameNode.IsZero() {
		return nameNode.Text()
	}
	// C-style declarators nest the identifier inside a pointer/array
	// wrapper under "declarator" rather than exposing a flat "name" field.
	if declNode := n.ChildByField("declarator"); !declNode.IsZero() {
		return identifierLeaf(declNode)
	}
	// Rust impl blocks name the implementing type under "type", not "name".
	if n.Kind() == "impl_item" {
		if typeNode := n.ChildByField("type"); !typeNode.IsZero() {
			return typeNode.Text()
		}
	}
	return ""
}

// TopLevelSymbols collects every direct top-level declaration in a file,
// used by implicit-export languages (PHP/Python) whose export extractor
// simply lists everything declared at module scope.
func TopLevelSymbols(root Node, spec *Spec) []Symbol {
	var out []Symbol
	for _, c := range root.Children() {
		switch spec.NodeRole(c.Kind()) {
		case RoleFunction:
			out = append(out, Symbol{Name: nameField(c, spec), Kind: KindFunction, StartLine: c.StartLine(), EndLine: c.EndLine()})
		case RoleClass:
			out = append(out, Symbol{Name: nameField(c, spec), Kind: KindClass, StartLine: c.StartLine(), EndLine: c.EndLine()})
		case RoleInterface:
			out = append(out, Symbol{Name: nameField(c, spec), Kind: KindInterface, StartLine: c.StartLine(), EndLine: c.EndLine()})
		}
		if spec.ExtractVariableFunction != nil {
			if name, ok := spec.ExtractVariableFunction(c); ok {
				out = append(out, Symbol{Name: name, Kind: KindFunction, StartLine: c.StartLine(), EndLine: c.EndLine()})
			}
		}
	}
	return out
}
