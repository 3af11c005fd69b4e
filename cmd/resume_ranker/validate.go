package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate ranking or candidate JSON against its schema",
	Long: `Checks JSON documents written by rank or extract against the bundled JSON
Schemas. Use "-" to read a single document from stdin.

Examples:
  resume_ranker validate ranking.json
  resume_ranker validate --schema candidate candidate.json
  resume_ranker extract cv.pdf | resume_ranker validate --schema candidate -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateSchema     string
	validateSchemaFile string
)

// schemaFiles maps --schema names to schema files.
var schemaFiles = map[string]string{
	"ranking":   schemas.RankingResultSchema,
	"candidate": schemas.CandidateRecordSchema,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSchema, "schema", "s", "ranking", "Schema to validate against: ranking or candidate")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema-file", "", "Path to a custom JSON Schema file (overrides --schema)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaPath := validateSchemaFile
	if schemaPath == "" {
		rel, ok := schemaFiles[validateSchema]
		if !ok {
			return fmt.Errorf("unknown schema %q (expected ranking or candidate)", validateSchema)
		}
		if schemaPath = schemas.ResolveSchemaPath(rel); schemaPath == "" {
			return fmt.Errorf("schema file not found: %s", rel)
		}
	}

	failed := 0
	for _, arg := range args {
		var err error
		if arg == "-" {
			err = validateStdin(cmd.InOrStdin(), schemaPath)
		} else {
			err = schemas.ValidateJSON(schemaPath, arg)
		}

		var validationErr *schemas.ValidationError
		switch {
		case err == nil:
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully validated %s\n", arg)
		case errors.As(err, &validationErr):
			failed++
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %v", arg, err)
		default:
			return fmt.Errorf("failed to validate %s: %w", arg, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
	}
	return nil
}

func validateStdin(in io.Reader, schemaPath string) error {
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	doc, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	return schemas.ValidateJSONString(string(schemaData), string(doc))
}
