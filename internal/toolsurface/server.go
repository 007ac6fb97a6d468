// Package toolsurface exposes a subset of IndexContext's read-only queries
// (dependency-graph traversal, complexity reporting) as MCP tools, so an
// editor or agent can ask questions about an already-indexed workspace
// without shelling out to the CLI. It is glue only: every tool delegates
// straight to internal/engine and formats the result as JSON text.
package toolsurface

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/lien-dev/lien/internal/engine"
)

// Server wraps an mcp-go server bound to a single workspace's IndexContext.
type Server struct {
	ic  *engine.IndexContext
	mcp *server.MCPServer
}

// New builds a Server with every read-only tool registered against ic.
func New(ic *engine.IndexContext) *Server {
	mcpServer := server.NewMCPServer(
		"lien",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	addGraphTool(mcpServer, ic)
	addComplexityTool(mcpServer, ic)
	addStatusTool(mcpServer, ic)

	return &Server{ic: ic, mcp: mcpServer}
}

// Serve runs the MCP server on stdio until ctx is cancelled or a
// SIGINT/SIGTERM arrives.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("toolsurface: serving MCP on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("mcp server: %w", err)
		}
	}()

	select {
	case <-sigCh:
		cancel()
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
