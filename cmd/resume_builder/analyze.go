package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-builder/internal/atsclient"
	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/insights"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/report"
	"github.com/spf13/cobra"
)

var (
	analyzeStateFile   string
	analyzeAnalyzerURL string
	analyzeOutputFile  string
	analyzeTimeout     time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a builder state with the ATS analysis service",
	Long: `Serializes a builder state to plain text, sends it to the ATS analysis service
and prints the score gauge, insight groups and assistant panel. With --out the raw
report is also written as JSON.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeStateFile, "state", "s", "", "Path to BuilderState JSON file (default: seed document)")
	analyzeCmd.Flags().StringVar(&analyzeAnalyzerURL, "analyzer-url", "", "Base URL of the ATS analysis service (defaults to ATS_SERVICE_URL env var)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output ATS report JSON file (optional)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", atsclient.DefaultTimeout, "Request timeout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings(cmd, os.Getenv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("analyzer-url") {
		cfg.AnalyzerURL = analyzeAnalyzerURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	state, err := readState(analyzeStateFile)
	if err != nil {
		return err
	}
	text := builder.ToText(state)

	client := atsclient.New(cfg.AnalyzerURL)
	if cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "Sending %d characters to %s\n", len([]rune(text)), client.BaseURL())
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	rep, err := client.AnalyzeText(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	if analyzeOutputFile != "" {
		if err := writeJSON(analyzeOutputFile, rep); err != nil {
			return err
		}
	}

	view := report.NewView(rep)
	panel := insights.Assistant(rep, state)
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintGauge(&view.Gauge)
	printer.PrintInsightGroups(view.Insights)
	printer.PrintAssistant(&panel)

	if cfg.Verbose {
		for _, card := range view.Summary.Cards {
			_, _ = fmt.Fprintf(os.Stdout, "%-12s %s\n", card.Label+":", card.Value)
		}
		if view.Preview.Truncated {
			_, _ = fmt.Fprintf(os.Stdout, "Extracted text: %d characters (preview truncated)\n", view.Preview.Characters)
		}
	}
	return nil
}
