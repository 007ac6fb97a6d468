package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lien-dev/lien/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .lien/config.yml for this workspace",
	Long: `Init creates the .lien directory and a config.yml seeded with
config.Default(), the same values used when no config file is present.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := workspaceRoot()
	if err != nil {
		return err
	}

	lienDir := filepath.Join(root, ".lien")
	if err := os.MkdirAll(lienDir, 0o755); err != nil {
		return fmt.Errorf("creating .lien directory: %w", err)
	}

	configPath := filepath.Join(lienDir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf(".lien/config.yml already exists at %s, leaving it untouched\n", configPath)
		return nil
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("marshaling default configuration: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config.yml: %w", err)
	}

	fmt.Printf("wrote %s\n", configPath)
	return nil
}
