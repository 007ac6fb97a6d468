package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

func init() {
	register(tsSpec(TypeScript))
	// JavaScript is served by the TypeScript grammar, a documented superset:
	// tree-sitter-typescript's own README recommends it for plain JS when a
	// dedicated tree-sitter-javascript parser isn't already a dependency.
	register(tsSpec(JavaScript))
}

func tsSpec(id ID) *Spec {
	exts := []string{".ts", ".tsx"}
	if id == JavaScript {
		exts = []string{".js", ".jsx", ".mjs", ".cjs"}
	}

	return &Spec{
		ID:         id,
		Extensions: exts,
		NewParser: func() *sitter.Parser {
			p := sitter.NewParser()
			p.SetLanguage(sitter.NewLanguage(typescript.LanguageTypescript()))
			return p
		},
		NodeRole:        tsNodeRole,
		ClassLikeKinds:  map[string]bool{"class_declaration": true},
		BodyField:       "body",
		NameField:       "name",
		ParametersField: "parameters",
		Complexity:      tsComplexityTables,
		ExtractImports:  tsExtractImports,
		ExtractExports: func(root Node, _ []Symbol) []string {
			return ExplicitExports(root, tsSpec(id), map[string]bool{"export_statement": true})
		},
		ExtractParameters:      GenericParameterNames,
		ExtractVariableFunction: tsExtractVariableFunction,
	}
}

func tsNodeRole(kind string) Role {
	switch kind {
	case "class_declaration":
		return RoleClass
	case "interface_declaration":
		return RoleInterface
	case "function_declaration", "generator_function_declaration":
		return RoleFunction
	case "method_definition":
		return RoleMethod
	default:
		return RoleNone
	}
}

// tsExtractVariableFunction recognizes `const f = (...) => {...}` and
// `const f = function (...) {...}` bindings, the one JS/TS construct where a
// function chunk hides behind a variable declarator rather than a named
// declaration node.
func tsExtractVariableFunction(n Node) (string, bool) {
	if n.Kind() != "variable_declarator" {
		return "", false
	}
	value := n.ChildByField("value")
	if value.IsZero() {
		return "", false
	}
	switch value.Kind() {
	case "arrow_function", "function_expression", "function":
		name := n.ChildByField("name")
		if name.IsZero() {
			return "", false
		}
		return name.Text(), true
	default:
		return "", false
	}
}

func tsExtractImports(root Node) ([]string, map[string][]string) {
	var paths []string
	imported := map[string][]string{}

	Walk(root, func(n Node) bool {
		if n.Kind() != "import_statement" {
			return true
		}
		source := n.ChildByField("source")
		if source.IsZero() {
			return true
		}
		path := CleanImportPath(source.Text())
		paths = append(paths, path)

		var names []string
		for _, clause := range n.ChildrenOfKind("import_clause") {
			Walk(clause, func(cn Node) bool {
				switch cn.Kind() {
				case "identifier":
					names = append(names, cn.Text())
				case "import_specifier":
					if alias := cn.ChildByField("alias"); !alias.IsZero() {
						names = append(names, alias.Text())
					} else if name := cn.ChildByField("name"); !name.IsZero() {
						names = append(names, name.Text())
					}
					return false
				case "namespace_import":
					names = append(names, cn.Text())
					return false
				}
				return true
			})
		}
		if len(names) > 0 {
			imported[path] = append(imported[path], names...)
		}
		return false
	})

	return paths, imported
}

var tsComplexityTables = ComplexityTables{
	DecisionPoints: map[string]bool{
		"if_statement": true, "for_statement": true, "for_in_statement": true,
		"while_statement": true, "do_statement": true, "catch_clause": true,
		"case_clause": true, "ternary_expression": true,
	},
	BinaryExpressionKinds: map[string]bool{"binary_expression": true},
	LogicalOperators:      map[string]bool{"&&": true, "||": true, "??": true},
	NestingNodes: map[string]bool{
		"if_statement": true, "for_statement": true, "for_in_statement": true,
		"while_statement": true, "do_statement": true, "catch_clause": true,
		"switch_statement": true,
	},
	NonNestingCounted: map[string]bool{"else_clause": true, "ternary_expression": true},
	LambdaNodes:       map[string]bool{"arrow_function": true, "function_expression": true},
	OperatorTokenKinds: map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "%": true, "=": true,
		"==": true, "===": true, "!=": true, "!==": true, "<": true, ">": true,
		"<=": true, ">=": true, "&&": true, "||": true, "??": true, "!": true,
	},
	OperandNodeKinds: map[string]bool{
		"identifier": true, "number": true, "string": true, "string_fragment": true,
		"property_identifier": true, "true": true, "false": true, "null": true, "undefined": true,
	},
	CallNodeKinds: map[string]bool{"call_expression": true, "new_expression": true},
}
