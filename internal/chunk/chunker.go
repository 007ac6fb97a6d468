package chunk

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lien-dev/lien/internal/complexity"
	"github.com/lien-dev/lien/internal/config"
	"github.com/lien-dev/lien/internal/lang"
)

// StrictMode controls whether a parse failure for a supported extension
// propagates or falls back to line chunking (spec §4.2 step 4).
type StrictMode bool

const (
	Strict    StrictMode = true
	BestEffort StrictMode = false
)

// Chunker turns file content into CodeChunks according to the language
// registry, falling back to windowed line chunking for unsupported
// extensions or parse failures.
type Chunker struct {
	cfg config.ChunkingConfig
	core config.CoreConfig
}

// New builds a Chunker from the chunking and core sections of the loaded
// config (chunkSize/chunkOverlap live under core per spec §6 defaults).
func New(core config.CoreConfig, cfg config.ChunkingConfig) *Chunker {
	return &Chunker{cfg: cfg, core: core}
}

// Chunk produces the chunk set for one file. path is workspace-relative
// with forward slashes, matching spec §3's metadata.file contract.
func (c *Chunker) Chunk(ctx context.Context, path string, content []byte, mode StrictMode) ([]CodeChunk, error) {
	if isTemplatePath(path) {
		return templateChunks(path, content), nil
	}

	if !c.cfg.UseAST {
		return lineChunks(path, "", content, c.core.ChunkSize, c.core.ChunkOverlap), nil
	}

	spec, ok := lang.Detect(path)
	if !ok {
		return lineChunks(path, "", content, c.core.ChunkSize, c.core.ChunkOverlap), nil
	}

	chunks, err := c.astChunks(path, content, spec)
	if err != nil {
		if bool(mode) {
			return nil, fmt.Errorf("ast chunking %s: %w", path, err)
		}
		if c.cfg.ASTFallback == "error" {
			return nil, fmt.Errorf("ast chunking %s: %w", path, err)
		}
		return lineChunks(path, string(spec.ID), content, c.core.ChunkSize, c.core.ChunkOverlap), nil
	}
	return chunks, nil
}

func (c *Chunker) astChunks(path string, content []byte, spec *lang.Spec) ([]CodeChunk, error) {
	parser := spec.NewParser()
	defer parser.Close()

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("parser returned no tree")
	}
	defer tree.Close()

	root := lang.WrapNode(tree.RootNode(), content)

	imports, importedSymbols := spec.ExtractImports(root)
	topLevel := lang.TopLevelSymbols(root, spec)
	exports := spec.ExtractExports(root, topLevel)

	candidates := lang.Traverse(root, spec)

	chunks := make([]CodeChunk, 0, len(candidates))
	for _, cand := range candidates {
		metrics := complexity.Compute(cand.Node, spec)
		callSites := lang.ExtractCallSites(cand.Node, spec)

		chunks = append(chunks, CodeChunk{
			Content: cand.Node.Text(),
			Metadata: Metadata{
				File:                path,
				StartLine:           cand.Node.StartLine(),
				EndLine:             cand.Node.EndLine(),
				Kind:                Kind(cand.Kind),
				Language:            string(spec.ID),
				SymbolName:          cand.SymbolName,
				SymbolType:          string(cand.Kind),
				ParentClass:         cand.ParentClass,
				Signature:           cand.Signature,
				Parameters:          cand.Parameters,
				Symbols:             symbolNamesOf(cand.Kind, cand.SymbolName),
				Imports:             imports,
				ImportedSymbols:     importedSymbols,
				Exports:             exports,
				CallSites:           toCallSites(callSites),
				Complexity:          metrics.Cyclomatic,
				CognitiveComplexity: metrics.Cognitive,
				HalsteadVolume:      metrics.HalsteadVolume,
				HalsteadDifficulty:  metrics.HalsteadDifficulty,
				HalsteadEffort:      metrics.HalsteadEffort,
				HalsteadBugs:        metrics.HalsteadBugs,
			},
		})
	}

	// A supported language with no function/class/interface candidates
	// (e.g. a file whose only top-level content is a const/var binding)
	// still needs a chunk: fall back to one whole-file block spanning the
	// parsed root, carrying the imports/exports/call sites already
	// extracted above (spec §4.2 step 2 "otherwise produce a single block
	// chunk for the whole file").
	if len(chunks) == 0 {
		metrics := complexity.Compute(root, spec)
		callSites := lang.ExtractCallSites(root, spec)
		chunks = append(chunks, CodeChunk{
			Content: root.Text(),
			Metadata: Metadata{
				File:                path,
				StartLine:           root.StartLine(),
				EndLine:             root.EndLine(),
				Kind:                KindBlock,
				Language:            string(spec.ID),
				Symbols:             SymbolNames{},
				Imports:             imports,
				ImportedSymbols:     importedSymbols,
				Exports:             exports,
				CallSites:           toCallSites(callSites),
				Complexity:          metrics.Cyclomatic,
				CognitiveComplexity: metrics.Cognitive,
				HalsteadVolume:      metrics.HalsteadVolume,
				HalsteadDifficulty:  metrics.HalsteadDifficulty,
				HalsteadEffort:      metrics.HalsteadEffort,
				HalsteadBugs:        metrics.HalsteadBugs,
			},
		})
	}

	return chunks, nil
}

func symbolNamesOf(kind lang.ChunkKind, name string) SymbolNames {
	switch kind {
	case lang.KindFunction, lang.KindMethod:
		return SymbolNames{Functions: []string{name}}
	case lang.KindClass:
		return SymbolNames{Classes: []string{name}}
	case lang.KindInterface:
		return SymbolNames{Interfaces: []string{name}}
	default:
		return SymbolNames{}
	}
}

func toCallSites(sites []lang.CallSite) []CallSite {
	out := make([]CallSite, 0, len(sites))
	for _, s := range sites {
		out = append(out, CallSite{Symbol: s.Symbol, Line: s.Line})
	}
	return out
}

// lineChunks windows a file's lines into overlapping blocks, skipping
// all-whitespace windows (spec §4.2 step 1).
func lineChunks(path, language string, content []byte, chunkSize, chunkOverlap int) []CodeChunk {
	lines := strings.Split(string(content), "\n")
	total := len(lines)
	if total == 0 {
		return nil
	}

	var chunks []CodeChunk
	start := 0
	for start < total {
		end := start + chunkSize
		if end > total {
			end = total
		}

		window := lines[start:end]
		if !isAllWhitespace(window) {
			chunks = append(chunks, CodeChunk{
				Content: strings.Join(window, "\n"),
				Metadata: Metadata{
					File:      path,
					StartLine: start + 1,
					EndLine:   end,
					Kind:      KindBlock,
					Language:  language,
					Symbols:   SymbolNames{},
				},
			})
		}

		if end >= total {
			break
		}
		start = end - chunkOverlap
		if start < 0 {
			start = 0
		}
	}
	return chunks
}

func isAllWhitespace(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

func isTemplatePath(path string) bool {
	if strings.HasSuffix(path, ".liquid") {
		return true
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
			if seg == "templates" {
				return true
			}
		}
	}
	return false
}

// templateChunks produces a single whole-file chunk of kind=template; the
// contract spec §4.2 leaves template parsing itself out of scope.
func templateChunks(path string, content []byte) []CodeChunk {
	lines := strings.Split(string(content), "\n")
	return []CodeChunk{{
		Content: string(content),
		Metadata: Metadata{
			File:      path,
			StartLine: 1,
			EndLine:   len(lines),
			Kind:      KindTemplate,
			Symbols:   SymbolNames{},
		},
	}}
}
