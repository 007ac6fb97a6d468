package toolsurface

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lien-dev/lien/internal/depgraph"
	"github.com/lien-dev/lien/internal/engine"
)

// graphQueryResult is the JSON shape returned by lien_graph; it mirrors
// depgraph.QueryResult but flattens the embedded node so callers don't need
// to know the internal struct nesting.
type graphQueryResult struct {
	ID         string `json:"id"`
	Depth      int    `json:"depth"`
	Complexity int    `json:"complexity"`
}

func addGraphTool(s *server.MCPServer, ic *engine.IndexContext) {
	tool := mcp.NewTool(
		"lien_graph",
		mcp.WithDescription("Traverse the reverse-dependency graph from a root file: who imports it (reverse), what it imports (forward), or both."),
		mcp.WithString("root",
			mcp.Required(),
			mcp.Description("Workspace-relative path of the file to start the traversal from")),
		mcp.WithString("direction",
			mcp.Description("forward, reverse, or both (default: forward)")),
		mcp.WithNumber("depth",
			mcp.Description("maximum BFS depth; 0 or omitted means unlimited")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, graphHandler(ic))
}

func graphHandler(ic *engine.IndexContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		root, ok := argsMap["root"].(string)
		if !ok || root == "" {
			return mcp.NewToolResultError("root parameter is required"), nil
		}

		direction := depgraph.DirectionForward
		if d, ok := argsMap["direction"].(string); ok && d != "" {
			switch d {
			case "forward":
				direction = depgraph.DirectionForward
			case "reverse":
				direction = depgraph.DirectionReverse
			case "both":
				direction = depgraph.DirectionBoth
			default:
				return mcp.NewToolResultError(fmt.Sprintf("invalid direction %q: must be forward, reverse, or both", d)), nil
			}
		}

		depth := 0
		if d, ok := argsMap["depth"].(float64); ok {
			depth = int(d)
		}

		results, err := ic.Graph.Query(root, direction, depth)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out := make([]graphQueryResult, 0, len(results))
		for _, r := range results {
			out = append(out, graphQueryResult{ID: r.Node.ID, Depth: r.Depth, Complexity: r.Node.Complexity})
		}

		data, err := json.Marshal(out)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
