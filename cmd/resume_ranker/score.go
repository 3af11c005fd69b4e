package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score RESUME",
	Short: "Quickly score one resume against a job description",
	Long: `Scores a single resume and prints the final score, the share of job skills
matched and up to three missing skills as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	addJobFlags(scoreCmd)
	addEngineFlags(scoreCmd)

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
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
	jobText, err := loadJobDescription(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	extractor, err := newExtractor(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create name recognizer: %w", err)
	}

	fb, err := pipeline.QuickFeedback(ctx, extractor, scoring.New(cfg.ToPolicy(), logger), doc.Text, jobText)
	if err != nil {
		return err
	}
	if _, err := writeJSON(cmd.OutOrStdout(), "", fb); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintQuickFeedback(*fb)
	}
	return nil
}
