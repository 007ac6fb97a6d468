package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

func init() {
	register(&Spec{
		ID:         Java,
		Extensions: []string{".java"},
		NewParser: func() *sitter.Parser {
			p := sitter.NewParser()
			p.SetLanguage(sitter.NewLanguage(java.Language()))
			return p
		},
		NodeRole: javaNodeRole,
		ClassLikeKinds: map[string]bool{
			"class_declaration": true, "interface_declaration": true, "enum_declaration": true,
		},
		BodyField:         "body",
		NameField:         "name",
		ParametersField:   "parameters",
		Complexity:        javaComplexityTables,
		ExtractImports:    javaExtractImports,
		ExtractExports:    func(root Node, topLevel []Symbol) []string { return ImplicitExports(root, topLevel) },
		ExtractParameters: GenericParameterNames,
	})
}

func javaNodeRole(kind string) Role {
	switch kind {
	case "class_declaration", "enum_declaration":
		return RoleClass
	case "interface_declaration":
		return RoleInterface
	case "method_declaration", "constructor_declaration":
		return RoleMethod
	default:
		return RoleNone
	}
}

// javaExtractImports reads import_declaration nodes; the Java grammar gives
// these no named field, just a scoped identifier / asterisk text between
// `import` and `;`.
func javaExtractImports(root Node) ([]string, map[string][]string) {
	var paths []string

	for _, n := range root.Children() {
		if n.Kind() != "import_declaration" {
			continue
		}
		text := strings.TrimSuffix(strings.TrimSpace(n.Text()), ";")
		text = strings.TrimPrefix(text, "import")
		text = strings.TrimPrefix(text, " static")
		path := strings.TrimSpace(text)
		if path != "" {
			paths = append(paths, path)
		}
	}

	return paths, nil
}

var javaComplexityTables = ComplexityTables{
	DecisionPoints: map[string]bool{
		"if_statement": true, "for_statement": true, "enhanced_for_statement": true,
		"while_statement": true, "do_statement": true, "catch_clause": true,
		"switch_label": true, "ternary_expression": true,
	},
	BinaryExpressionKinds: map[string]bool{"binary_expression": true},
	LogicalOperators:      map[string]bool{"&&": true, "||": true},
	NestingNodes: map[string]bool{
		"if_statement": true, "for_statement": true, "enhanced_for_statement": true,
		"while_statement": true, "do_statement": true, "catch_clause": true,
		"switch_expression": true,
	},
	NonNestingCounted: map[string]bool{"ternary_expression": true},
	LambdaNodes:       map[string]bool{"lambda_expression": true},
	OperatorTokenKinds: map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true, "=": true,
		"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
		"&&": true, "||": true, "!": true,
	},
	OperandNodeKinds: map[string]bool{
		"identifier": true, "decimal_integer_literal": true, "string_literal": true,
		"true": true, "false": true, "null_literal": true,
	},
	CallNodeKinds: map[string]bool{"method_invocation": true, "object_creation_expression": true},
}
