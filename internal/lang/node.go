package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Node is a thin adapter over tree-sitter's stringly-typed node surface,
// giving the rest of the codebase a strongly-typed handle to walk without
// exposing every caller to *sitter.Node directly (spec §9's Design Notes:
// "wrap them in small adapters so the rest of the code sees strongly-typed
// NodeKind values").
type Node struct {
	inner  *sitter.Node
	source []byte
}

// WrapNode binds a raw tree-sitter node to its source buffer.
func WrapNode(n *sitter.Node, source []byte) Node {
	return Node{inner: n, source: source}
}

// IsZero reports whether this Node wraps no underlying tree-sitter node.
func (n Node) IsZero() bool { return n.inner == nil }

// Kind returns the tree-sitter node type string (e.g. "function_declaration").
func (n Node) Kind() string {
	if n.inner == nil {
		return ""
	}
	return n.inner.Kind()
}

// StartLine returns the 1-based line the node starts on.
func (n Node) StartLine() int {
	if n.inner == nil {
		return 0
	}
	return int(n.inner.StartPosition().Row) + 1
}

// EndLine returns the 1-based, inclusive line the node ends on.
func (n Node) EndLine() int {
	if n.inner == nil {
		return 0
	}
	return int(n.inner.EndPosition().Row) + 1
}

// Text returns the verbatim source text spanned by the node.
func (n Node) Text() string {
	if n.inner == nil {
		return ""
	}
	return string(n.source[n.inner.StartByte():n.inner.EndByte()])
}

// ChildByField returns the named field child, if any.
func (n Node) ChildByField(name string) Node {
	if n.inner == nil {
		return Node{}
	}
	c := n.inner.ChildByFieldName(name)
	if c == nil {
		return Node{}
	}
	return Node{inner: c, source: n.source}
}

// Children returns the node's direct children.
func (n Node) Children() []Node {
	if n.inner == nil {
		return nil
	}
	count := int(n.inner.ChildCount())
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.inner.Child(uint(i))
		if c == nil {
			continue
		}
		out = append(out, Node{inner: c, source: n.source})
	}
	return out
}

// ChildrenOfKind returns direct children whose Kind matches kind.
func (n Node) ChildrenOfKind(kind string) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}

// Walk performs a pre-order traversal, calling visit for every node
// (including n itself). Returning false from visit skips that node's
// children but continues the walk.
func Walk(n Node, visit func(Node) bool) {
	if n.inner == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, visit)
	}
}

// signatureUpToBody returns the source text from the start of n up to (but
// not including) the first "{" or "=>", clipped to maxLen runes.
func signatureUpToBody(n Node, maxLen int) string {
	text := n.Text()
	if idx := strings.IndexAny(text, "{"); idx >= 0 {
		text = text[:idx]
	}
	if idx := strings.Index(text, "=>"); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return text
}
