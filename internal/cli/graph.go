package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lien-dev/lien/internal/depgraph"
	"github.com/lien-dev/lien/internal/vectorstore"
)

// graphScanLimit mirrors internal/engine's full-scan limit: large enough to
// exceed any realistic workspace's chunk count.
const graphScanLimit = 10_000_000

var (
	graphDepth       int
	graphDirection   string
	graphModuleLevel bool
)

var graphCmd = &cobra.Command{
	Use:   "graph <rootFile>",
	Short: "Query the reverse-dependency graph from a root file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().IntVar(&graphDepth, "depth", 0, "maximum BFS depth (0 means unlimited)")
	graphCmd.Flags().StringVar(&graphDirection, "direction", "forward", "forward, reverse, or both")
	graphCmd.Flags().BoolVar(&graphModuleLevel, "module-level", false, "collapse each file to its leading directory component")
}

func runGraph(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := args[0]

	direction, err := parseDirection(graphDirection)
	if err != nil {
		return err
	}

	ic, err := buildContext(ctx)
	if err != nil {
		return err
	}
	defer ic.Close()

	if _, err := ic.Index(ctx, false); err != nil {
		return err
	}

	g := ic.Graph
	if graphModuleLevel {
		moduleGraph, err := depgraph.NewGraphEngine(ic.WorkspaceRoot, true)
		if err != nil {
			return err
		}
		defer moduleGraph.Close()

		chunks, err := ic.Store.ScanWithFilter(ctx, vectorstore.ScanFilter{Limit: graphScanLimit})
		if err != nil {
			return err
		}
		if err := moduleGraph.Build(ctx, chunks); err != nil {
			return err
		}
		g = moduleGraph
	}

	results, err := g.Query(root, direction, graphDepth)
	if err != nil {
		return err
	}

	for _, r := range results {
		fmt.Printf("%d  %s  (complexity %d)\n", r.Depth, r.Node.ID, r.Node.Complexity)
	}
	fmt.Printf("\n%d reachable nodes\n", len(results))
	return nil
}

func parseDirection(s string) (depgraph.Direction, error) {
	switch strings.ToLower(s) {
	case "forward":
		return depgraph.DirectionForward, nil
	case "reverse":
		return depgraph.DirectionReverse, nil
	case "both":
		return depgraph.DirectionBoth, nil
	default:
		return "", fmt.Errorf("invalid --direction %q: must be forward, reverse, or both", s)
	}
}
