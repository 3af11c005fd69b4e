package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/schemas"
)

var extractCmd = &cobra.Command{
	Use:   "extract RESUME",
	Short: "Extract a structured candidate record from one resume",
	Long: `Extracts the candidate's name, email, skills, education and years of
experience from a single resume and prints the record as JSON.

With --job or --job-url the record also lists which of the job's skills the
candidate has and which are missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var extractOutput string

func init() {
	addJobFlags(extractCmd)
	addEngineFlags(extractCmd)
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to write the candidate JSON (default: stdout)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	doc, err := ingestion.ExtractText(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	if doc.Metadata != nil && doc.Metadata.IsScanned {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s has very little text and may be a scanned image\n", args[0])
	}

	jobText, err := loadJobDescription(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	extractor, err := newExtractor(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create name recognizer: %w", err)
	}

	res := extractor.Extract(ctx, doc.Text, jobText)
	if !res.OK() {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: extraction fell back to an empty record: %v\n", res.Failure)
		if extraction.IsFailure(res.Failure, extraction.ReasonRecognizerUnavailable) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Hint: use --%s heuristic or none to extract without the NER model\n", flagNERProvider)
		}
	}
	rec := res.Record
	rec.SourceFile = args[0]

	data, err := writeJSON(cmd.OutOrStdout(), extractOutput, rec)
	if err != nil {
		return err
	}
	if err := validateOutput(cmd.ErrOrStderr(), schemas.CandidateRecordSchema, data); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintCandidate(&rec)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Successfully extracted candidate %q (%d skills)\n", rec.Name(), len(rec.SkillsFound))
	return nil
}
