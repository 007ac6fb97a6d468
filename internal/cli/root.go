package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	rootFlag       string
	verbose        bool
	embedProvider  string
	embedEndpoint  string
	embedDimension int
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "lien",
	Short: "Lien - local code intelligence engine",
	Long: `Lien indexes a workspace into AST-derived chunks with vector embeddings,
tracks a reverse-dependency graph, and reports cyclomatic/cognitive/Halstead
complexity, all without leaving the local filesystem.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initEnv)

	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "workspace root (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&embedProvider, "embedding-provider", "mock", "embedding provider: http or mock")
	rootCmd.PersistentFlags().StringVar(&embedEndpoint, "embedding-endpoint", "", "base URL of the remote embedding service (required for --embedding-provider=http)")
	rootCmd.PersistentFlags().IntVar(&embedDimension, "embedding-dimensions", 384, "vector width the embedding endpoint produces")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("embeddingProvider", rootCmd.PersistentFlags().Lookup("embedding-provider"))
	viper.BindPFlag("embeddingEndpoint", rootCmd.PersistentFlags().Lookup("embedding-endpoint"))
	viper.BindPFlag("embeddingDimensions", rootCmd.PersistentFlags().Lookup("embedding-dimensions"))
}

// initEnv lets LIEN_EMBEDDING_PROVIDER etc. override the persistent flags;
// the workspace's own .lien/config.yml is loaded separately per-command by
// config.LoadConfigFromDir, once the workspace root is known.
func initEnv() {
	viper.SetEnvPrefix("LIEN")
	viper.AutomaticEnv()
	viper.BindEnv("embeddingProvider", "LIEN_EMBEDDING_PROVIDER")
	viper.BindEnv("embeddingEndpoint", "LIEN_EMBEDDING_ENDPOINT")
	viper.BindEnv("embeddingDimensions", "LIEN_EMBEDDING_DIMENSIONS")

	rootFlag = viper.GetString("root")
	verbose = viper.GetBool("verbose")
	embedProvider = viper.GetString("embeddingProvider")
	embedEndpoint = viper.GetString("embeddingEndpoint")
	embedDimension = viper.GetInt("embeddingDimensions")
}

// workspaceRoot resolves --root, defaulting to the current directory.
func workspaceRoot() (string, error) {
	if rootFlag != "" {
		return rootFlag, nil
	}
	return os.Getwd()
}
