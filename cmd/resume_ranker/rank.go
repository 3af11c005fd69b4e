package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/export"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/scoring"
)

var rankCmd = &cobra.Command{
	Use:   "rank [resume files or directories...]",
	Short: "Rank a batch of resumes against a job description",
	Long: `Parses every resume (PDF, DOCX, TXT, Markdown or HTML), extracts candidate
details, scores each candidate against the job's skills and writes the ranked
result as JSON. Directories are expanded to the supported files they contain.

Files that cannot be parsed are listed in failed_files and do not stop the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRank,
}

// Output formats for the rank command.
const (
	formatJSON = "json"
	formatCSV  = "csv"
)

var (
	rankFormat     string
	rankOutput     string
	rankCSV        string
	rankSummaryCSV string
)

func init() {
	addJobFlags(rankCmd)
	addEngineFlags(rankCmd)
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to write the ranking (default: stdout)")
	rankCmd.Flags().StringVarP(&rankFormat, "format", "f", formatJSON, "Ranking output format: json or csv")
	rankCmd.Flags().StringVar(&rankCSV, "csv", "", "Path to write the results CSV")
	rankCmd.Flags().StringVar(&rankSummaryCSV, "summary-csv", "", "Path to write the summary CSV")
	rankCmd.Flags().Int(flagWorkers, 0, "Concurrent extraction workers (default from config: 4)")
	rankCmd.Flags().Int(flagTop, 0, "Number of top candidates shown in verbose mode (default from config: 5)")
	rankCmd.Flags().String(flagOutputDir, "", "Directory for timestamped results and summary CSVs")
	rankCmd.Flags().String(flagMetricsFile, "", "Path to write batch metrics in Prometheus text format")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if rankFormat != formatJSON && rankFormat != formatCSV {
		return fmt.Errorf("unknown output format %q (expected json or csv)", rankFormat)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	paths, err := collectResumes(args)
	if err != nil {
		return err
	}
	jobText, err := loadJobDescription(ctx, cfg, logger, true)
	if err != nil {
		return err
	}
	extractor, err := newExtractor(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create name recognizer: %w", err)
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	metrics := observability.NewMetrics()

	opts := pipeline.RunOptions{
		ResumePaths:    paths,
		JobDescription: jobText,
		Workers:        cfg.Workers,
		Extractor:      extractor,
		Scorer:         scoring.New(cfg.ToPolicy(), logger),
		Metrics:        metrics,
		Logger:         logger,
	}
	if cfg.Verbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%3d%%] %s\n", e.Percent, e.Message)
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	if rankFormat == formatCSV {
		content, err := export.CSVString(result.Ranked)
		if err != nil {
			return fmt.Errorf("failed to render results CSV: %w", err)
		}
		if err := writeText(cmd.OutOrStdout(), rankOutput, content); err != nil {
			return err
		}
	} else {
		data, err := writeJSON(cmd.OutOrStdout(), rankOutput, result.RankingResult())
		if err != nil {
			return err
		}
		if err := validateOutput(cmd.ErrOrStderr(), schemas.RankingResultSchema, data); err != nil {
			return err
		}
	}

	now := time.Now()
	csvPath, summaryPath := rankCSV, rankSummaryCSV
	if cfg.OutputDir != "" {
		if csvPath == "" {
			csvPath = filepath.Join(cfg.OutputDir, export.Filename(now))
		}
		if summaryPath == "" {
			summaryPath = filepath.Join(cfg.OutputDir, export.SummaryFilename(now))
		}
	}
	if csvPath != "" {
		written, err := export.WriteFile(csvPath, result.Ranked)
		if err != nil {
			return fmt.Errorf("failed to export results: %w", err)
		}
		logger.Info("wrote results CSV", "path", written)
	}
	if summaryPath != "" {
		written, err := export.WriteSummaryFile(summaryPath, result.Summary, now)
		if err != nil {
			return fmt.Errorf("failed to export summary: %w", err)
		}
		logger.Info("wrote summary CSV", "path", written)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	if cfg.Verbose {
		printer.PrintJobSkills(result.JobSkills)
		printer.PrintRankingSummary(result.Summary)
		printer.PrintTopCandidates(result.Ranked, cfg.TopN)
		printer.PrintFailures(result.FailedFiles)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Successfully ranked %d candidates (%d failed)\n", result.TotalProcessed, result.FailedCount())
	if rankOutput != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Ranking written to %s\n", rankOutput)
	}
	return nil
}
