package toolsurface

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lien-dev/lien/internal/engine"
)

func addComplexityTool(s *server.MCPServer, ic *engine.IndexContext) {
	tool := mcp.NewTool(
		"lien_complexity",
		mcp.WithDescription("Report cyclomatic/cognitive/Halstead complexity violations for indexed files, joined with each file's dependent count and derived risk level."),
		mcp.WithArray("files",
			mcp.Description("Workspace-relative paths to restrict analysis to; omit to analyze every indexed file")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, complexityHandler(ic))
}

func complexityHandler(ic *engine.IndexContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var files []string
		if argsMap, ok := request.Params.Arguments.(map[string]interface{}); ok {
			if raw, ok := argsMap["files"].([]interface{}); ok {
				for _, f := range raw {
					if s, ok := f.(string); ok {
						files = append(files, s)
					}
				}
			}
		}

		report, err := ic.Analyze(ctx, files)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(report)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
