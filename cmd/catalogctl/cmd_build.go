package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"modelcatalog/internal/config"
	"modelcatalog/internal/domain/engine"
	"modelcatalog/internal/domain/filter"
	"modelcatalog/internal/domain/snapshot"
	"modelcatalog/internal/infrastructure/logger"
	"modelcatalog/internal/utils/platformerrors"
)

var buildCmd = &cobra.Command{
	Use:   "build [source files...]",
	Short: "Build a catalog snapshot from YAML source files",
	Long: `Run the full build pipeline over one or more YAML source files.
Later files override earlier ones record for record. The resulting
snapshot summary is printed; --out additionally writes the persisted
artifact as JSON.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("overrides", "", "YAML overrides file (filter + prefer)")
	buildCmd.Flags().StringP("out", "o", "", "Write the snapshot artifact to this path")
}

func runBuild(cmd *cobra.Command, args []string) error {
	log, err := buildLogger(cmd)
	if err != nil {
		return err
	}

	sources := make([]engine.Source, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("read source %q: %w", path, err)
		}
		sources = append(sources, engine.NewYAML(filepath.Base(path), data))
	}

	filterCfg := filter.Universal()
	var prefer []string
	engineCfg := engine.Config{Sources: sources, Filter: filterCfg, Logger: log}

	if overridesPath, _ := cmd.Flags().GetString("overrides"); overridesPath != "" {
		overrides, err := config.LoadOverridesFile(overridesPath)
		if err != nil {
			return err
		}
		if overrides.Filter != nil {
			engineCfg.Filter = *overrides.Filter
		}
		engineCfg.Prefer = overrides.Prefer
		for _, p := range overrides.Prefer {
			prefer = append(prefer, string(p))
		}
	}

	eng, err := engine.New(engineCfg)
	if err != nil {
		return logged(log, err)
	}
	snap, err := eng.Build(cmd.Context())
	if err != nil {
		return logged(log, err)
	}

	fmt.Printf("Snapshot %s\n", snap.BuildID)
	fmt.Printf("  generated:      %s\n", snap.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Printf("  providers:      %d\n", len(snap.Providers))
	fmt.Printf("  models:         %d visible of %d\n", len(snap.Models), len(snap.BaseModels))
	if len(prefer) > 0 {
		fmt.Printf("  prefer:         %v\n", prefer)
	}

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		artifact := snapshot.Export(snap)
		data, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return fmt.Errorf("encode artifact: %w", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write artifact %q: %w", outPath, err)
		}
		fmt.Printf("  artifact:       %s\n", outPath)
	}
	return nil
}

// logged emits a structured record for pipeline errors before they surface as
// the command's exit error.
func logged(log zerolog.Logger, err error) error {
	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		platformerrors.LogError(log, platformErr)
	}
	return err
}

func buildLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return zerolog.Nop(), err
	}
	level := cfg.LogLevel
	format := cfg.LogFormat
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	if flagFormat, _ := cmd.Flags().GetString("log-format"); flagFormat != "" {
		format = flagFormat
	}
	return logger.New(level, format)
}
