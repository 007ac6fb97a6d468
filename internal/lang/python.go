package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

func init() {
	register(&Spec{
		ID:         Python,
		Extensions: []string{".py", ".pyi"},
		NewParser: func() *sitter.Parser {
			p := sitter.NewParser()
			p.SetLanguage(sitter.NewLanguage(python.Language()))
			return p
		},
		NodeRole:          pyNodeRole,
		ClassLikeKinds:    map[string]bool{"class_definition": true},
		BodyField:         "body",
		NameField:         "name",
		ParametersField:   "parameters",
		Complexity:        pyComplexityTables,
		ExtractImports:    pyExtractImports,
		ExtractExports:    func(root Node, topLevel []Symbol) []string { return ImplicitExports(root, topLevel) },
		ExtractParameters: GenericParameterNames,
	})
}

func pyNodeRole(kind string) Role {
	switch kind {
	case "class_definition":
		return RoleClass
	case "function_definition":
		return RoleFunction
	default:
		return RoleNone
	}
}

func pyExtractImports(root Node) ([]string, map[string][]string) {
	var paths []string
	imported := map[string][]string{}

	for _, n := range root.Children() {
		switch n.Kind() {
		case "import_statement":
			for _, name := range n.ChildrenOfKind("dotted_name") {
				path := name.Text()
				paths = append(paths, path)
			}
			for _, alias := range n.ChildrenOfKind("aliased_import") {
				if nameNode := alias.ChildByField("name"); !nameNode.IsZero() {
					paths = append(paths, nameNode.Text())
				}
			}
		case "import_from_statement":
			moduleNode := n.ChildByField("module_name")
			if moduleNode.IsZero() {
				continue
			}
			path := moduleNode.Text()
			paths = append(paths, path)

			var names []string
			for _, nameNode := range n.ChildrenOfKind("dotted_name") {
				if nameNode.Text() == path {
					continue
				}
				names = append(names, nameNode.Text())
			}
			for _, alias := range n.ChildrenOfKind("aliased_import") {
				if aliasNode := alias.ChildByField("alias"); !aliasNode.IsZero() {
					names = append(names, aliasNode.Text())
				}
			}
			if len(names) > 0 {
				imported[path] = append(imported[path], names...)
			}
		}
	}

	return paths, imported
}

var pyComplexityTables = ComplexityTables{
	DecisionPoints: map[string]bool{
		"if_statement": true, "for_statement": true, "while_statement": true,
		"except_clause": true, "elif_clause": true, "conditional_expression": true,
		"with_statement": true,
	},
	BinaryExpressionKinds: map[string]bool{"boolean_operator": true},
	LogicalOperators:      map[string]bool{"and": true, "or": true},
	NestingNodes: map[string]bool{
		"if_statement": true, "for_statement": true, "while_statement": true,
		"except_clause": true, "with_statement": true,
	},
	NonNestingCounted: map[string]bool{"elif_clause": true, "else_clause": true, "conditional_expression": true},
	LambdaNodes:       map[string]bool{"lambda": true},
	OperatorTokenKinds: map[string]bool{
		"+": true, "-": true, "*": true, "/": true, "//": true, "%": true, "**": true,
		"=": true, "==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
		"and": true, "or": true, "not": true,
	},
	OperandNodeKinds: map[string]bool{
		"identifier": true, "integer": true, "float": true, "string": true,
		"true": true, "false": true, "none": true,
	},
	CallNodeKinds: map[string]bool{"call": true},
}
