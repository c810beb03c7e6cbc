package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/spf13/cobra"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the role templates",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(_ *cobra.Command, _ []string) error {
	catalog := templates.All()
	if templatesJSON {
		return writeJSON("", catalog)
	}

	for _, t := range catalog {
		marker := " "
		if t.Key == templates.DefaultKey {
			marker = "*"
		}
		_, _ = fmt.Fprintf(os.Stdout, "%s %-20s %s\n", marker, t.Key, t.Name)
		_, _ = fmt.Fprintf(os.Stdout, "  %-20s %s\n", "", t.Headline)
		_, _ = fmt.Fprintf(os.Stdout, "  %-20s %s\n", "", strings.Join(t.Skills, ", "))
	}
	return nil
}
