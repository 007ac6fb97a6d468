package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

func init() {
	register(&Spec{
		ID:         PHP,
		Extensions: []string{".php"},
		NewParser: func() *sitter.Parser {
			p := sitter.NewParser()
			p.SetLanguage(sitter.NewLanguage(php.LanguagePHP()))
			return p
		},
		NodeRole: phpNodeRole,
		ClassLikeKinds: map[string]bool{
			"class_declaration": true, "interface_declaration": true, "trait_declaration": true,
		},
		BodyField:         "body",
		NameField:         "name",
		ParametersField:   "parameters",
		Complexity:        phpComplexityTables,
		ExtractImports:    phpExtractImports,
		ExtractExports:    func(root Node, topLevel []Symbol) []string { return ImplicitExports(root, topLevel) },
		ExtractParameters: GenericParameterNames,
	})
}

func phpNodeRole(kind string) Role {
	switch kind {
	case "class_declaration", "trait_declaration":
		return RoleClass
	case "interface_declaration":
		return RoleInterface
	case "function_definition":
		return RoleFunction
	case "method_declaration":
		return RoleMethod
	default:
		return RoleNone
	}
}

func phpExtractImports(root Node) ([]string, map[string][]string) {
	var paths []string
	imported := map[string][]string{}

	Walk(root, func(n Node) bool {
		if n.Kind() != "namespace_use_declaration" {
			return true
		}
		Walk(n, func(cn Node) bool {
			if cn.Kind() != "namespace_use_clause" {
				return true
			}
			nameNode := cn.ChildByField("name")
			if nameNode.IsZero() {
				return true
			}
			path := nameNode.Text()
			paths = append(paths, path)
			if alias := cn.ChildByField("alias"); !alias.IsZero() {
				imported[path] = append(imported[path], alias.Text())
			}
			return true
		})
		return false
	})

	return paths, imported
}

var phpComplexityTables = ComplexityTables{
	DecisionPoints: map[string]bool{
		"if_statement": true, "for_statement": true, "foreach_statement": true,
		"while_statement": true, "do_statement": true, "catch_clause": true,
		"case_statement": true, "conditional_expression": true, "match_expression": true,
	},
	BinaryExpressionKinds: map[string]bool{"binary_expression": true},
	LogicalOperators:      map[string]bool{"&&": true, "||": true, "and": true, "or": true},
	NestingNodes: map[string]bool{
		"if_statement": true, "for_statement": true, "foreach_statement": true,
		"while_statement": true, "do_statement": true, "catch_clause": true,
		"switch_statement": true,
	},
	NonNestingCounted: map[string]bool{"else_clause": true, "conditional_expression": true},
	LambdaNodes:       map[string]bool{"anonymous_function_creation_expression": true, "arrow_function": true},
	OperatorTokenKinds: map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true, ".": true, "=": true,
		"==": true, "===": true, "!=": true, "!==": true, "<": true, ">": true,
		"<=": true, ">=": true, "&&": true, "||": true, "!": true,
	},
	OperandNodeKinds: map[string]bool{
		"name": true, "variable_name": true, "integer": true, "float": true, "string": true,
	},
	CallNodeKinds: map[string]bool{"function_call_expression": true, "member_call_expression": true, "scoped_call_expression": true},
}
