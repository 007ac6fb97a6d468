package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

func init() {
	register(&Spec{
		ID:         Ruby,
		Extensions: []string{".rb"},
		NewParser: func() *sitter.Parser {
			p := sitter.NewParser()
			p.SetLanguage(sitter.NewLanguage(ruby.Language()))
			return p
		},
		NodeRole:          rubyNodeRole,
		ClassLikeKinds:    map[string]bool{"class": true, "module": true},
		BodyField:         "", // ruby statements sit directly among children
		NameField:         "name",
		ParametersField:   "parameters",
		Complexity:        rubyComplexityTables,
		ExtractImports:    rubyExtractImports,
		ExtractExports:    func(root Node, topLevel []Symbol) []string { return ImplicitExports(root, topLevel) },
		ExtractParameters: GenericParameterNames,
	})
}

func rubyNodeRole(kind string) Role {
	switch kind {
	case "class", "module":
		return RoleClass
	case "method", "singleton_method":
		return RoleFunction
	default:
		return RoleNone
	}
}

// rubyExtractImports looks for top-level `require`/`require_relative` calls,
// the closest Ruby has to an import statement.
func rubyExtractImports(root Node) ([]string, map[string][]string) {
	var paths []string

	for _, n := range root.Children() {
		if n.Kind() != "call" {
			continue
		}
		method := n.ChildByField("method")
		if method.IsZero() {
			continue
		}
		if method.Text() != "require" && method.Text() != "require_relative" {
			continue
		}
		args := n.ChildByField("arguments")
		if args.IsZero() {
			continue
		}
		for _, a := range args.ChildrenOfKind("string") {
			paths = append(paths, CleanImportPath(a.Text()))
		}
	}

	return paths, nil
}

var rubyComplexityTables = ComplexityTables{
	DecisionPoints: map[string]bool{
		"if": true, "elsif": true, "unless": true, "while": true, "until": true,
		"for": true, "rescue": true, "when": true, "conditional": true,
	},
	BinaryExpressionKinds: map[string]bool{"binary": true},
	LogicalOperators:      map[string]bool{"&&": true, "||": true, "and": true, "or": true},
	NestingNodes: map[string]bool{
		"if": true, "unless": true, "while": true, "until": true, "for": true,
		"rescue": true, "case": true,
	},
	NonNestingCounted: map[string]bool{"elsif": true, "else": true, "conditional": true},
	LambdaNodes:       map[string]bool{"lambda": true, "block": true},
	OperatorTokenKinds: map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true, "=": true,
		"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
		"&&": true, "||": true, "!": true,
	},
	OperandNodeKinds: map[string]bool{
		"identifier": true, "constant": true, "integer": true, "float": true,
		"string": true, "symbol": true, "true": true, "false": true, "nil": true,
	},
	CallNodeKinds: map[string]bool{"call": true, "method_call": true},
}
