package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/spf13/cobra"
)

var (
	textStateFile  string
	textOutputFile string
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Serialize a builder state to canonical plain text",
	Long:  "Serializes a builder state JSON file to the plain text that is sent to the ATS analysis service. Without --state the seed document is used.",
	RunE:  runText,
}

func init() {
	textCmd.Flags().StringVarP(&textStateFile, "state", "s", "", "Path to BuilderState JSON file (default: seed document)")
	textCmd.Flags().StringVarP(&textOutputFile, "out", "o", "", "Path to output text file (default: stdout)")
	rootCmd.AddCommand(textCmd)
}

func runText(_ *cobra.Command, _ []string) error {
	state, err := readState(textStateFile)
	if err != nil {
		return err
	}

	text := builder.ToText(state)
	if textOutputFile == "" {
		text += "\n"
	}
	if err := writeOutput(textOutputFile, []byte(text)); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}
