// Package main provides the resume_builder CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath string
	rootVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume Builder CLI and HTTP API Server",
	Long: `Resume Builder edits a structured resume, serializes it to canonical plain text,
derives rule-based insights and scores the text with an external ATS analysis service.

Configuration can be loaded from a JSON or YAML file using --config. Environment
variables override the file and command-line flags override both.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to a config.json or config.yaml file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
