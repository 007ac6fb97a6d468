package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_ResolvesByExtension(t *testing.T) {
	t.Parallel()

	cases := map[string]ID{
		"service.ts":   TypeScript,
		"widget.tsx":   TypeScript,
		"app.js":       JavaScript,
		"main.py":      Python,
		"index.php":    PHP,
		"App.java":     Java,
		"driver.c":     C,
		"worker.rb":    Ruby,
		"lib.rs":       Rust,
		"unknown.toml": "",
	}

	for path, want := range cases {
		spec, ok := Detect(path)
		if want == "" {
			assert.False(t, ok, path)
			continue
		}
		require.True(t, ok, path)
		assert.Equal(t, want, spec.ID, path)
	}
}

func TestAll_ReturnsEverySupportedLanguage(t *testing.T) {
	t.Parallel()

	specs := All()
	ids := make(map[ID]bool, len(specs))
	for _, s := range specs {
		ids[s.ID] = true
	}

	for _, want := range []ID{TypeScript, JavaScript, Python, PHP, Java, C, Ruby, Rust} {
		assert.True(t, ids[want], "missing %s", want)
	}
}

func parseSource(t *testing.T, spec *Spec, source string) Node {
	t.Helper()
	parser := spec.NewParser()
	defer parser.Close()
	src := []byte(source)
	tree := parser.Parse(src, nil)
	require.NotNil(t, tree)
	t.Cleanup(tree.Close)
	return WrapNode(tree.RootNode(), src)
}

func TestTraverse_TypeScriptClassAndArrowFunction(t *testing.T) {
	t.Parallel()

	spec, ok := Get(TypeScript)
	require.True(t, ok)

	source := `
export class UserService {
  findUser(id: string): User {
    return this.repo.find(id);
  }
}

const double = (n: number) => n * 2;
`
	root := parseSource(t, spec, source)
	candidates := Traverse(root, spec)

	var class, method, fn *ChunkCandidate
	for i := range candidates {
		switch candidates[i].SymbolName {
		case "UserService":
			class = &candidates[i]
		case "findUser":
			method = &candidates[i]
		case "double":
			fn = &candidates[i]
		}
	}

	require.NotNil(t, class)
	assert.Equal(t, KindClass, class.Kind)

	require.NotNil(t, method)
	assert.Equal(t, KindMethod, method.Kind)
	assert.Equal(t, "UserService", method.ParentClass)

	require.NotNil(t, fn)
	assert.Equal(t, KindFunction, fn.Kind)
}

func TestTraverse_PythonClassAndMethod(t *testing.T) {
	t.Parallel()

	spec, ok := Get(Python)
	require.True(t, ok)

	source := `
class Greeter:
    def greet(self, name):
        return "hi " + name

def standalone():
    pass
`
	root := parseSource(t, spec, source)
	candidates := Traverse(root, spec)

	var method, fn *ChunkCandidate
	for i := range candidates {
		switch candidates[i].SymbolName {
		case "greet":
			method = &candidates[i]
		case "standalone":
			fn = &candidates[i]
		}
	}

	require.NotNil(t, method)
	assert.Equal(t, KindMethod, method.Kind)
	assert.Equal(t, "Greeter", method.ParentClass)
	assert.Equal(t, []string{"self", "name"}, method.Parameters)

	require.NotNil(t, fn)
	assert.Equal(t, KindFunction, fn.Kind)
}

func TestExtractCallSites_FindsCallsWithinChunk(t *testing.T) {
	t.Parallel()

	spec, ok := Get(Python)
	require.True(t, ok)

	source := `
def run():
    validate()
    process(1, 2)
`
	root := parseSource(t, spec, source)
	candidates := Traverse(root, spec)
	require.Len(t, candidates, 1)

	sites := ExtractCallSites(candidates[0].Node, spec)
	var names []string
	for _, s := range sites {
		names = append(names, s.Symbol)
	}
	assert.Contains(t, names, "validate")
	assert.Contains(t, names, "process")
}

func TestExtractImports_TypeScriptNamedImports(t *testing.T) {
	t.Parallel()

	spec, ok := Get(TypeScript)
	require.True(t, ok)

	source := `import { Foo, Bar as Baz } from "./helpers";`
	root := parseSource(t, spec, source)
	paths, imported := spec.ExtractImports(root)

	require.Contains(t, paths, "./helpers")
	assert.ElementsMatch(t, []string{"Foo", "Baz"}, imported["./helpers"])
}
