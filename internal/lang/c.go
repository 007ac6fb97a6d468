package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

func init() {
	register(&Spec{
		ID:         C,
		Extensions: []string{".c", ".h"},
		NewParser: func() *sitter.Parser {
			p := sitter.NewParser()
			p.SetLanguage(sitter.NewLanguage(c.Language()))
			return p
		},
		NodeRole: cNodeRole,
		ClassLikeKinds: map[string]bool{
			"struct_specifier": true, "union_specifier": true, "enum_specifier": true,
		},
		BodyField:         "body",
		NameField:         "name", // falls back to declarator walk, see nameField
		ParametersField:   "parameters",
		Complexity:        cComplexityTables,
		ExtractImports:    cExtractImports,
		ExtractExports:    func(root Node, topLevel []Symbol) []string { return ImplicitExports(root, topLevel) },
		ExtractParameters: GenericParameterNames,
	})
}

func cNodeRole(kind string) Role {
	switch kind {
	case "struct_specifier", "union_specifier", "enum_specifier":
		return RoleClass
	case "function_definition":
		return RoleFunction
	default:
		return RoleNone
	}
}

func cExtractImports(root Node) ([]string, map[string][]string) {
	var paths []string

	for _, n := range root.Children() {
		if n.Kind() != "preproc_include" {
			continue
		}
		text := strings.TrimSpace(strings.TrimPrefix(n.Text(), "#include"))
		text = strings.Trim(text, "<>\"")
		if text != "" {
			paths = append(paths, strings.TrimSpace(text))
		}
	}

	return paths, nil
}

var cComplexityTables = ComplexityTables{
	DecisionPoints: map[string]bool{
		"if_statement": true, "for_statement": true, "while_statement": true,
		"do_statement": true, "case_statement": true, "conditional_expression": true,
	},
	BinaryExpressionKinds: map[string]bool{"binary_expression": true},
	LogicalOperators:      map[string]bool{"&&": true, "||": true},
	NestingNodes: map[string]bool{
		"if_statement": true, "for_statement": true, "while_statement": true,
		"do_statement": true, "switch_statement": true,
	},
	NonNestingCounted: map[string]bool{"else_clause": true, "conditional_expression": true},
	LambdaNodes:       map[string]bool{}, // C has no anonymous function literal
	OperatorTokenKinds: map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true, "=": true,
		"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
		"&&": true, "||": true, "!": true, "&": true, "|": true, "^": true,
	},
	OperandNodeKinds: map[string]bool{
		"identifier": true, "number_literal": true, "string_literal": true, "char_literal": true,
	},
	CallNodeKinds: map[string]bool{"call_expression": true},
}
