package depgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/maypok86/otter"

	"github.com/lien-dev/lien/internal/chunk"
)

// Direction controls which way GraphEngine.Query traverses edges.
type Direction string

const (
	DirectionForward Direction = "forward"
	DirectionReverse Direction = "reverse"
	DirectionBoth    Direction = "both"
)

// GraphNode is one file (or, with moduleLevel, one collapsed directory) in
// the dependency graph (spec §4.8).
type GraphNode struct {
	ID         string
	Complexity int
}

// GraphEdge records a single import relationship: From imports To.
type GraphEdge struct {
	From string
	To   string
}

// QueryResult is one BFS hit with the depth at which it was discovered.
type QueryResult struct {
	Node  GraphNode
	Depth int
}

const reverseCacheWeight = 10 * 1024 * 1024

// GraphEngine holds the in-memory dependency graph plus a reverse-lookup
// cache for O(1) "who depends on this file" queries (spec §4.8).
type GraphEngine struct {
	workspaceRoot string
	moduleLevel   bool

	mu    sync.RWMutex
	g     graph.Graph[string, *GraphNode]
	edges []GraphEdge

	reverseCache otter.Cache[string, []string]
}

// NewGraphEngine builds an empty engine. moduleLevel, if true, collapses
// every file ID down to its leading directory component.
func NewGraphEngine(workspaceRoot string, moduleLevel bool) (*GraphEngine, error) {
	cache, err := otter.MustBuilder[string, []string](reverseCacheWeight).
		Cost(func(key string, value []string) uint32 { return uint32(len(value)*32 + 32) }).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building reverse-lookup cache: %w", err)
	}

	e := &GraphEngine{
		workspaceRoot: workspaceRoot,
		moduleLevel:   moduleLevel,
		reverseCache:  cache,
	}
	e.resetGraph()
	return e, nil
}

func (e *GraphEngine) resetGraph() {
	e.g = graph.New(func(n *GraphNode) string { return n.ID }, graph.Directed())
}

func (e *GraphEngine) collapse(file string) string {
	if !e.moduleLevel {
		return file
	}
	if idx := strings.Index(file, "/"); idx >= 0 {
		return file[:idx]
	}
	return file
}

// Build replaces the engine's graph with one derived from the given
// chunks' file/imports/complexity data.
func (e *GraphEngine) Build(ctx context.Context, chunks []chunk.CodeChunk) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resetGraph()
	e.edges = nil
	e.reverseCache.Clear()

	maxComplexity := map[string]int{}
	// normalizedFiles maps each source file's extension-stripped path
	// (what ResolveImport produces) to its collapsed graph ID, so imports
	// resolved from other files can be matched against it (spec §4.8
	// step 3 operates on normalized paths on both sides).
	normalizedFiles := map[string]string{}
	for _, c := range chunks {
		id := e.collapse(c.Metadata.File)
		if c.Metadata.Complexity > maxComplexity[id] {
			maxComplexity[id] = c.Metadata.Complexity
		}
		normalizedFiles[NormalizeImportPath(c.Metadata.File, e.workspaceRoot)] = id
	}
	for id, complexity := range maxComplexity {
		if err := e.g.AddVertex(&GraphNode{ID: id, Complexity: complexity}); err != nil && err != graph.ErrVertexAlreadyExists {
			return fmt.Errorf("adding node %s: %w", id, err)
		}
	}

	seenEdges := map[[2]string]bool{}
	for _, c := range chunks {
		fromID := e.collapse(c.Metadata.File)
		for _, imp := range c.Metadata.Imports {
			resolved, ok := ResolveImport(imp, c.Metadata.File, e.workspaceRoot)
			if !ok {
				continue
			}
			toID := e.resolveToExistingNode(resolved, normalizedFiles)
			if toID == "" || toID == fromID {
				continue
			}

			key := [2]string{fromID, toID}
			if seenEdges[key] {
				continue
			}
			seenEdges[key] = true

			if err := e.g.AddEdge(fromID, toID); err != nil {
				continue
			}
			e.edges = append(e.edges, GraphEdge{From: fromID, To: toID})
		}
	}
	return nil
}

// resolveToExistingNode finds the collapsed graph node ID whose normalized
// file path matches resolved per the path-component-boundary rule (spec
// §4.8 step 3). Ties prefer the longest normalized match, the same
// longest-specific-match heuristic the path resolution step implies.
func (e *GraphEngine) resolveToExistingNode(resolved string, normalizedFiles map[string]string) string {
	var bestNormalized, bestID string
	for normalized, id := range normalizedFiles {
		if PathsMatch(normalized, resolved) {
			if bestNormalized == "" || len(normalized) > len(bestNormalized) {
				bestNormalized = normalized
				bestID = id
			}
		}
	}
	return bestID
}

// Query runs a BFS from root in the given direction up to maxDepth (0 means
// unlimited) and returns every reachable node with its discovery depth.
func (e *GraphEngine) Query(root string, direction Direction, maxDepth int) ([]QueryResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rootID := e.collapse(root)
	if _, err := e.g.Vertex(rootID); err != nil {
		return nil, fmt.Errorf("unknown graph node %q: %w", rootID, err)
	}

	adjacency, err := e.g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("building adjacency map: %w", err)
	}
	predecessors, err := e.g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("building predecessor map: %w", err)
	}

	visited := map[string]int{rootID: 0}
	queue := []string{rootID}
	var results []QueryResult

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		depth := visited[id]

		if maxDepth > 0 && depth >= maxDepth {
			continue
		}

		neighbors := map[string]bool{}
		if direction == DirectionForward || direction == DirectionBoth {
			for to := range adjacency[id] {
				neighbors[to] = true
			}
		}
		if direction == DirectionReverse || direction == DirectionBoth {
			for from := range predecessors[id] {
				neighbors[from] = true
			}
		}

		for next := range neighbors {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = depth + 1
			queue = append(queue, next)

			node, err := e.g.Vertex(next)
			if err != nil {
				continue
			}
			results = append(results, QueryResult{Node: *node, Depth: depth + 1})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Depth != results[j].Depth {
			return results[i].Depth < results[j].Depth
		}
		return results[i].Node.ID < results[j].Node.ID
	})
	return results, nil
}

// Dependents returns (and caches) the set of files that directly import
// file, per the reverse-lookup cache described in spec §4.8.
func (e *GraphEngine) Dependents(file string) ([]string, error) {
	id := e.collapse(file)
	if cached, ok := e.reverseCache.Get(id); ok {
		return cached, nil
	}

	e.mu.RLock()
	predecessors, err := e.g.PredecessorMap()
	e.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("building predecessor map: %w", err)
	}

	deps := make([]string, 0, len(predecessors[id]))
	for from := range predecessors[id] {
		deps = append(deps, from)
	}
	sort.Strings(deps)

	e.reverseCache.Set(id, deps)
	return deps, nil
}

// DependentCount is a convenience wrapper used by the complexity analyzer
// to join chunk reports against reverse-dependency counts (spec §4.9).
func (e *GraphEngine) DependentCount(file string) int {
	deps, err := e.Dependents(file)
	if err != nil {
		return 0
	}
	return len(deps)
}

// Close releases the reverse-lookup cache's background resources.
func (e *GraphEngine) Close() {
	e.reverseCache.Close()
}
