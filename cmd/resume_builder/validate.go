package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

// Built-in schema kinds accepted by --kind.
const (
	kindBuilderState = "builder-state"
	kindATSReport    = "ats-report"
)

var (
	validateSchemaFile string
	validateKind       string
	validateJSONFile   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a schema",
	Long:  "Validates a JSON file against a schema file (--schema) or one of the built-in schemas (--kind builder-state|ats-report). Exits with status 1 when validation fails.",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to a JSON schema file")
	validateCmd.Flags().StringVar(&validateKind, "kind", "", "Built-in schema: builder-state or ats-report")
	validateCmd.Flags().StringVar(&validateJSONFile, "json", "", "Path to the JSON file to validate (required)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}
	validateCmd.MarkFlagsMutuallyExclusive("schema", "kind")
	validateCmd.MarkFlagsOneRequired("schema", "kind")

	rootCmd.AddCommand(validateCmd)
}

func validateFile() error {
	if validateSchemaFile != "" {
		return schemas.ValidateJSON(validateSchemaFile, validateJSONFile)
	}

	data, err := os.ReadFile(validateJSONFile)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	switch validateKind {
	case kindBuilderState:
		return schemas.ValidateBuilderStateJSON(data)
	case kindATSReport:
		return schemas.ValidateATSReportJSON(data)
	default:
		return fmt.Errorf("unknown schema kind %q (want %s or %s)", validateKind, kindBuilderState, kindATSReport)
	}
}

func runValidate(_ *cobra.Command, _ []string) error {
	err := validateFile()
	if err == nil {
		_, _ = fmt.Fprintln(os.Stdout, "Validation passed")
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(os.Stderr, "Validation failed:\n%v\n", validationErr)
		os.Exit(1)
	}
	return err
}
