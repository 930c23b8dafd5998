package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Model catalog build and inspection tool",
	Long: `catalogctl builds, inspects and exports the provider/model metadata
catalog from declarative YAML sources.

Examples:
  # Build a snapshot from source files and print a summary
  catalogctl build providers.yaml models.yaml

  # Build with a visibility overrides file and write the artifact
  catalogctl build --overrides overrides.yaml --out snapshot.json sources/*.yaml

  # Print the JSON schema of the persisted artifact
  catalogctl schema`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(schemaCmd)

	rootCmd.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Override LOG_FORMAT (console, json)")
}
