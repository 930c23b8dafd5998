package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modelcatalog/internal/domain/snapshot"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the persisted snapshot artifact",
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().StringP("out", "o", "", "Write the schema to this path instead of stdout")
}

func runSchema(cmd *cobra.Command, args []string) error {
	schema := snapshot.ArtifactSchema()
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write schema %q: %w", outPath, err)
		}
		return nil
	}
	fmt.Println(string(data))
	return nil
}
