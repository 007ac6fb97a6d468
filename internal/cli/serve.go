package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lien-dev/lien/internal/engine"
)

var serveNoWatch bool

// serveCmd keeps a workspace continuously indexed: one full pass up front,
// then (unless --no-watch) a file watcher plus git-branch poller feeding
// incremental reindexes until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index once, then watch the workspace for changes",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "index once and exit instead of watching")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nshutting down...")
		cancel()
	}()

	ic, err := buildContext(ctx)
	if err != nil {
		return err
	}
	defer ic.Close()

	fmt.Println("initial index of", ic.WorkspaceRoot)
	ic.Progress = &cliProgressReporter{}
	result, err := ic.Index(ctx, false)
	if err != nil {
		return err
	}
	fmt.Printf("indexed: %d replaced, %d deleted, %d skipped\n",
		len(result.Replaced), len(result.Deleted), len(result.Skipped))

	if serveNoWatch || !ic.Config.FileWatching.Enabled {
		return nil
	}

	session, err := engine.NewSession(ic)
	if err != nil {
		return err
	}
	if err := session.StartWatching(ctx); err != nil {
		return err
	}
	defer session.Stop()

	fmt.Println("watching for changes, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
