package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

// loadSettings resolves the effective configuration: config file, then
// environment, then defaults for anything still unset. Flags changed on cmd
// are applied by the caller afterwards.
func loadSettings(cmd *cobra.Command, getenv func(string) string) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Config{}, err
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	return cfg, nil
}

// readState loads a builder state JSON file. An empty path yields the seed document.
func readState(path string) (types.BuilderState, error) {
	if path == "" {
		return builder.NewDefaultState(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.BuilderState{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var state types.BuilderState
	if err := json.Unmarshal(data, &state); err != nil {
		return types.BuilderState{}, fmt.Errorf("failed to unmarshal state JSON: %w", err)
	}
	if err := schemas.ValidateBuilderStateJSON(data); err != nil {
		return types.BuilderState{}, fmt.Errorf("state file does not match schema: %w", err)
	}
	return builder.Clone(state), nil
}

// readReport loads an ATS report JSON file.
func readReport(path string) (*types.ATSReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var report types.ATSReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report JSON: %w", err)
	}
	if err := schemas.ValidateATSReportJSON(data); err != nil {
		return nil, fmt.Errorf("report file does not match schema: %w", err)
	}
	return &report, nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')
	return writeOutput(path, jsonBytes)
}

// writeOutput writes data to path, creating parent directories, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
