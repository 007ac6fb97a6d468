package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

func init() {
	register(&Spec{
		ID:         Rust,
		Extensions: []string{".rs"},
		NewParser: func() *sitter.Parser {
			p := sitter.NewParser()
			p.SetLanguage(sitter.NewLanguage(rust.Language()))
			return p
		},
		NodeRole: rustNodeRole,
		ClassLikeKinds: map[string]bool{
			"struct_item": true, "enum_item": true, "trait_item": true, "impl_item": true,
		},
		BodyField:         "body",
		NameField:         "name",
		ParametersField:   "parameters",
		Complexity:        rustComplexityTables,
		ExtractImports:    rustExtractImports,
		ExtractExports:    func(root Node, topLevel []Symbol) []string { return ImplicitExports(root, topLevel) },
		ExtractParameters: GenericParameterNames,
	})
}

func rustNodeRole(kind string) Role {
	switch kind {
	case "struct_item", "enum_item", "impl_item":
		return RoleClass
	case "trait_item":
		return RoleInterface
	case "function_item":
		return RoleFunction
	default:
		return RoleNone
	}
}

func rustExtractImports(root Node) ([]string, map[string][]string) {
	var paths []string

	for _, n := range root.Children() {
		if n.Kind() != "use_declaration" {
			continue
		}
		arg := n.ChildByField("argument")
		if arg.IsZero() {
			continue
		}
		paths = append(paths, arg.Text())
	}

	return paths, nil
}

var rustComplexityTables = ComplexityTables{
	DecisionPoints: map[string]bool{
		"if_expression": true, "for_expression": true, "while_expression": true,
		"loop_expression": true, "match_arm": true,
	},
	BinaryExpressionKinds: map[string]bool{"binary_expression": true},
	LogicalOperators:      map[string]bool{"&&": true, "||": true},
	NestingNodes: map[string]bool{
		"if_expression": true, "for_expression": true, "while_expression": true,
		"loop_expression": true, "match_expression": true,
	},
	NonNestingCounted: map[string]bool{"else_clause": true},
	LambdaNodes:       map[string]bool{"closure_expression": true},
	OperatorTokenKinds: map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true, "=": true,
		"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
		"&&": true, "||": true, "!": true,
	},
	OperandNodeKinds: map[string]bool{
		"identifier": true, "integer_literal": true, "float_literal": true,
		"string_literal": true, "true": true, "false": true,
	},
	CallNodeKinds: map[string]bool{"call_expression": true, "macro_invocation": true},
}
