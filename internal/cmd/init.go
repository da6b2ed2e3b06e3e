package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/genscope/genscope/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default .genscope/config.yaml",
	Long: `Create the .genscope directory and a config.yaml holding the default settings.

Examples:
  genscope init          # Initialize in current directory
  genscope init ../lib   # Initialize in another directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	path, err := config.SaveDefault(dir)
	if err != nil {
		return err
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		relPath = path
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", relPath)
	return nil
}
