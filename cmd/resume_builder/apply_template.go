package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/spf13/cobra"
)

var (
	applyTemplateStateFile  string
	applyTemplateKey        string
	applyTemplateOutputFile string
)

var applyTemplateCmd = &cobra.Command{
	Use:   "apply-template",
	Short: "Apply a role template's skills and headline to a builder state",
	Long:  "Replaces the skills and headline of a builder state with those of a catalog template. Every other field is kept. Run 'templates' to list the keys.",
	RunE:  runApplyTemplate,
}

func init() {
	applyTemplateCmd.Flags().StringVarP(&applyTemplateStateFile, "state", "s", "", "Path to BuilderState JSON file (default: seed document)")
	applyTemplateCmd.Flags().StringVarP(&applyTemplateKey, "key", "k", "", "Template key (required)")
	applyTemplateCmd.Flags().StringVarP(&applyTemplateOutputFile, "out", "o", "", "Path to output BuilderState JSON file (default: stdout)")

	if err := applyTemplateCmd.MarkFlagRequired("key"); err != nil {
		panic(fmt.Sprintf("failed to mark key flag as required: %v", err))
	}

	rootCmd.AddCommand(applyTemplateCmd)
}

func runApplyTemplate(_ *cobra.Command, _ []string) error {
	state, err := readState(applyTemplateStateFile)
	if err != nil {
		return err
	}

	next, err := templates.Apply(state, applyTemplateKey)
	if err != nil {
		return err
	}

	if rootVerbose {
		observability.NewPrinter(os.Stderr).PrintBuilderState(&next, applyTemplateKey)
	}
	return writeJSON(applyTemplateOutputFile, next)
}
