package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/pdf-scanner/internal/schemas"
)

var validateReportCmd = &cobra.Command{
	Use:   "validate-report",
	Short: "Validate a scan report against its JSON schema",
	Long:  "Checks a report written by 'scan --report' against schemas/scan_report.schema.json and lists every field that does not conform.",
	RunE:  runValidateReport,
}

var (
	validateReportInput  string
	validateReportSchema string
)

func init() {
	validateReportCmd.Flags().StringVarP(&validateReportInput, "in", "i", "", "Path to ScanReport JSON file (required)")
	validateReportCmd.Flags().StringVar(&validateReportSchema, "schema", "", "Path to the schema (defaults to "+schemas.ScanReportSchema+")")

	if err := validateReportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateReportCmd)
}

func runValidateReport(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(validateReportInput); os.IsNotExist(err) {
		return fmt.Errorf("report file not found: %s", validateReportInput)
	}

	schemaPath := validateReportSchema
	if schemaPath == "" {
		schemaPath = schemas.ResolveSchemaPath(schemas.ScanReportSchema)
		if schemaPath == "" {
			return fmt.Errorf("schema not found: %s (pass --schema)", schemas.ScanReportSchema)
		}
	}

	if err := schemas.ValidateJSON(schemaPath, validateReportInput); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("report %s is invalid: %w", validateReportInput, err)
		}
		if errors.As(err, &schemaLoadErr) {
			return fmt.Errorf("could not load schema: %w", err)
		}
		return fmt.Errorf("failed to validate report: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report is valid: %s\n", validateReportInput)
	return nil
}
