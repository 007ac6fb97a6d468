package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var forceFlag bool

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the workspace into AST-derived chunks with vector embeddings",
	Long: `Index walks the workspace per the configured include/ignore patterns,
reconciles the result against the manifest, and chunks/embeds every changed
or added file. Running it again on an unchanged tree is a no-op.

Examples:
  # Index the current directory
  lien index

  # Re-chunk and re-embed every discovered file, regardless of its hash
  lien index --force
`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVar(&forceFlag, "force", false, "re-chunk and re-embed every file regardless of its manifest hash")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\ninterrupted, cancelling indexing...")
		cancel()
	}()

	ic, err := buildContext(ctx)
	if err != nil {
		return err
	}
	defer ic.Close()

	if verbose {
		fmt.Println("indexing", ic.WorkspaceRoot)
	}
	ic.Progress = &cliProgressReporter{}

	result, err := ic.Index(ctx, forceFlag)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("indexing cancelled")
		}
		return err
	}

	fmt.Printf("indexed: %d replaced, %d deleted, %d skipped\n",
		len(result.Replaced), len(result.Deleted), len(result.Skipped))
	for _, s := range result.Skipped {
		fmt.Printf("  skipped %s: %v\n", s.Path, s.Err)
	}
	return nil
}
