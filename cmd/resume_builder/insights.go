package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/insights"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	insightsStateFile  string
	insightsReportFile string
	insightsJSON       bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show rule-based insights and the assistant panel for a builder state",
	Long:  "Runs the local insight rules over a builder state. With --report the assistant panel also includes the ATS score digest and the report's suggestions.",
	RunE:  runInsights,
}

func init() {
	insightsCmd.Flags().StringVarP(&insightsStateFile, "state", "s", "", "Path to BuilderState JSON file (default: seed document)")
	insightsCmd.Flags().StringVarP(&insightsReportFile, "report", "r", "", "Path to an ATS report JSON file (optional)")
	insightsCmd.Flags().BoolVar(&insightsJSON, "json", false, "Print the assistant panel as JSON")
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	state, err := readState(insightsStateFile)
	if err != nil {
		return err
	}

	var report *types.ATSReport
	if insightsReportFile != "" {
		report, err = readReport(insightsReportFile)
		if err != nil {
			return err
		}
	}

	panel := insights.Assistant(report, state)
	if insightsJSON {
		return writeJSON("", panel)
	}

	if len(panel.Insights) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No insights: the resume covers every rule.")
	}
	for _, line := range panel.Insights {
		_, _ = fmt.Fprintf(os.Stdout, "- %s\n", line)
	}
	if rootVerbose {
		observability.NewPrinter(os.Stdout).PrintAssistant(&panel)
	}
	return nil
}
