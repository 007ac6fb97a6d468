package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/lien-dev/lien/internal/toolsurface"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Serve read-only graph/complexity/status queries over MCP on stdio",
	RunE:  runTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ic, err := buildContext(ctx)
	if err != nil {
		return err
	}
	defer ic.Close()

	if _, err := ic.Index(ctx, false); err != nil {
		return err
	}

	return toolsurface.New(ic).Serve(ctx)
}
