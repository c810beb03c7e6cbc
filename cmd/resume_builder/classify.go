package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/spf13/cobra"
)

var classifyScore float64

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify an ATS score into its band",
	Long:  "Prints the band (Poor, Fair, Good, Excellent) for a score. Scores outside [0,101) fall back to the lowest band.",
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().Float64Var(&classifyScore, "score", 0, "ATS score (required)")

	if err := classifyCmd.MarkFlagRequired("score"); err != nil {
		panic(fmt.Sprintf("failed to mark score flag as required: %v", err))
	}

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(_ *cobra.Command, _ []string) error {
	gauge := scoring.NewGauge(classifyScore, nil)
	if rootVerbose {
		observability.NewPrinter(os.Stdout).PrintGauge(&gauge)
		return nil
	}
	_, _ = fmt.Fprintf(os.Stdout, "%s (%s)\n", gauge.Band.Label, gauge.Band.Severity)
	return nil
}
