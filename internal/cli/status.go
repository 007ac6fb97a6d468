package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the manifest, reindex coordinator, and store state for this workspace",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ic, err := buildContext(ctx)
	if err != nil {
		return err
	}
	defer ic.Close()

	snapshot := ic.Manifest.Snapshot()
	state := ic.Coordinator.Snapshot()

	version, err := ic.Store.GetCurrentVersion(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("workspace: %s\n", ic.WorkspaceRoot)
	fmt.Printf("manifest:  %d files tracked\n", len(snapshot))
	fmt.Printf("store:     version %d\n", version)
	fmt.Printf("reindex:   inProgress=%v pendingFiles=%d activeOperations=%d lastDurationMs=%d\n",
		state.InProgress, len(state.PendingFiles), state.ActiveOperations, state.LastDurationMs)

	gitState, err := ic.LoadGitState()
	if err == nil && gitState.Branch != "" {
		fmt.Printf("git:       branch=%s commit=%s\n", gitState.Branch, gitState.Commit)
	}
	return nil
}
