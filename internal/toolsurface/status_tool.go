package toolsurface

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lien-dev/lien/internal/engine"
)

// statusResult is the JSON shape returned by lien_status.
type statusResult struct {
	WorkspaceRoot    string `json:"workspaceRoot"`
	FilesTracked     int    `json:"filesTracked"`
	StoreVersion     int64  `json:"storeVersion"`
	InProgress       bool   `json:"inProgress"`
	PendingFiles     int    `json:"pendingFiles"`
	ActiveOperations int    `json:"activeOperations"`
	LastDurationMs   int64  `json:"lastDurationMs"`
}

func addStatusTool(s *server.MCPServer, ic *engine.IndexContext) {
	tool := mcp.NewTool(
		"lien_status",
		mcp.WithDescription("Report the manifest size, vector-store version, and reindex coordinator state for this workspace."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, statusHandler(ic))
}

func statusHandler(ic *engine.IndexContext) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		snapshot := ic.Manifest.Snapshot()
		state := ic.Coordinator.Snapshot()

		version, err := ic.Store.GetCurrentVersion(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result := statusResult{
			WorkspaceRoot:    ic.WorkspaceRoot,
			FilesTracked:     len(snapshot),
			StoreVersion:     version,
			InProgress:       state.InProgress,
			PendingFiles:     len(state.PendingFiles),
			ActiveOperations: state.ActiveOperations,
			LastDurationMs:   state.LastDurationMs,
		}

		data, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}
