// Package lang implements the compile-time language registry: per-language
// file-extension detection, tree-sitter traversal, and the node-classification
// tables the complexity engine and chunker consume (spec §4.1).
package lang

import sitter "github.com/tree-sitter/go-tree-sitter"

// ID is a canonical, closed-set language identifier (spec §3 CodeChunk.metadata.language).
type ID string

const (
	TypeScript ID = "typescript"
	JavaScript ID = "javascript"
	Python     ID = "python"
	PHP        ID = "php"
	Java       ID = "java"
	C          ID = "c"
	Ruby       ID = "ruby"
	Rust       ID = "rust"
)

// ChunkKind is the canonical chunk kind from spec §3.
type ChunkKind string

const (
	KindFunction  ChunkKind = "function"
	KindMethod    ChunkKind = "method"
	KindClass     ChunkKind = "class"
	KindInterface ChunkKind = "interface"
	KindBlock     ChunkKind = "block"
	KindTemplate  ChunkKind = "template"
)

// Role classifies what a tree-sitter node kind means to the traverser: a
// chunk root, a transparent container whose body should be descended into,
// or neither.
type Role int

const (
	RoleNone Role = iota
	RoleFunction
	RoleMethod
	RoleClass
	RoleInterface
	RoleVariableFunction // e.g. JS/TS `const x = () => {...}`
)

// Symbol is a single named declaration discovered while walking a file
// (used to build Symbols.{Functions,Classes,Interfaces} and Exports).
type Symbol struct {
	Name      string
	Kind      ChunkKind
	StartLine int
	EndLine   int
}

// CallSite records a call expression found inside a chunk's span.
type CallSite struct {
	Symbol string
	Line   int
}

// ChunkCandidate is a chunk root discovered by the traverser, prior to
// attaching file-level import/export metadata (done by the caller).
type ChunkCandidate struct {
	Node        Node
	Kind        ChunkKind
	SymbolName  string
	ParentClass string // enclosing class/trait name, for methods
	Signature   string
	Parameters  []string
}

// ComplexityTables hold the per-node-kind classification the complexity
// engine needs (spec §4.1 "per-node classification tables for complexity").
type ComplexityTables struct {
	// DecisionPoints are node kinds that add 1 to cyclomatic complexity.
	DecisionPoints map[string]bool
	// BinaryExpressionKinds are node kinds representing a binary expression;
	// cyclomatic only counts them when the operator field reads as && / ||
	// (or the language's and/or keywords).
	BinaryExpressionKinds map[string]bool
	LogicalOperators      map[string]bool // "&&", "||", "and", "or", ...

	// NestingNodes add 1+nestingLevel to cognitive complexity and increase
	// the level for their non-condition, non-else/elif children.
	NestingNodes map[string]bool
	// NonNestingCounted add a fixed +1 to cognitive complexity without
	// increasing nesting (else/elif siblings, ternaries).
	NonNestingCounted map[string]bool
	// LambdaNodes add +1 to cognitive complexity only when already nested.
	LambdaNodes map[string]bool

	// OperatorTokenKinds and OperandNodeKinds classify leaves for Halstead.
	OperatorTokenKinds map[string]bool
	OperandNodeKinds   map[string]bool

	// CallNodeKinds identify call-expression nodes for callSites extraction.
	CallNodeKinds map[string]bool
}

// Spec is the static, compile-time description of one language (spec §4.1).
type Spec struct {
	ID         ID
	Extensions []string

	NewParser func() *sitter.Parser

	// NodeRole classifies a tree-sitter node kind for the traverser.
	NodeRole func(kind string) Role
	// ClassLikeKinds identifies nodes whose enclosing-class name resolves
	// for a nested method.
	ClassLikeKinds map[string]bool
	// BodyField is the field name holding a container's descendable body.
	BodyField string
	// NameField is the field name holding a declaration's identifier.
	NameField string
	// ParametersField is the field name holding a function's parameter list.
	ParametersField string

	Complexity ComplexityTables

	// ExtractImports returns raw import paths and, for each path, the
	// symbols imported from it (spec §4.1 import extractor).
	ExtractImports func(root Node) (paths []string, importedSymbols map[string][]string)
	// ExtractExports returns the names a file makes importable (spec §4.1
	// export extractor): explicit for TS/JS, implicit (all top-level decls)
	// for PHP/Python/etc.
	ExtractExports func(root Node, topLevel []Symbol) []string

	// ExtractParameters reads a node's parameter list into display strings.
	ExtractParameters func(n Node) []string

	// ExtractVariableFunction recognizes a variable-bound function
	// expression (JS/TS `const x = () => {...}`) and returns the bound
	// name. Nil for languages with no such construct.
	ExtractVariableFunction func(n Node) (name string, ok bool)
}
