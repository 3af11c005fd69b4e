package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/ner"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/schemas"
)

// Flags shared by several commands. Each maps onto a config field and only
// overrides it when set explicitly.
const (
	flagJob              = "job"
	flagJobURL           = "job-url"
	flagNERProvider      = "ner-provider"
	flagNERModel         = "ner-model"
	flagSkillWeight      = "skill-weight"
	flagExperienceWeight = "experience-weight"
	flagLogLevel         = "log-level"
	flagVerbose          = "verbose"
	flagWorkers          = "workers"
	flagTop              = "top"
	flagOutputDir        = "output-dir"
	flagMetricsFile      = "metrics-file"
)

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagJob, "j", "", "Path to job description file (mutually exclusive with --job-url)")
	cmd.Flags().String(flagJobURL, "", "URL to fetch the job description from (mutually exclusive with --job)")
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagNERProvider, "", "Name recognizer: prose, heuristic or none (default from config: prose)")
	cmd.Flags().String(flagNERModel, "", "Directory of a custom prose NER model")
	cmd.Flags().Float64(flagSkillWeight, 0, "Weight of the skill score in the final score")
	cmd.Flags().Float64(flagExperienceWeight, 0, "Weight of the experience score in the final score")
	cmd.Flags().String(flagLogLevel, "", "Log level: debug, info, warn or error")
	cmd.Flags().BoolP(flagVerbose, "v", false, "Print detailed progress and summaries")
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// loadConfig loads the config file and environment, then applies any shared
// flags set on cmd and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if changed(cmd, flagJob) {
		cfg.Job, _ = flags.GetString(flagJob)
		if !changed(cmd, flagJobURL) {
			cfg.JobURL = ""
		}
	}
	if changed(cmd, flagJobURL) {
		cfg.JobURL, _ = flags.GetString(flagJobURL)
		if !changed(cmd, flagJob) {
			cfg.Job = ""
		}
	}
	if changed(cmd, flagNERProvider) {
		cfg.NERProvider, _ = flags.GetString(flagNERProvider)
	}
	if changed(cmd, flagNERModel) {
		cfg.NERModelPath, _ = flags.GetString(flagNERModel)
	}
	if changed(cmd, flagSkillWeight) {
		cfg.SkillWeight, _ = flags.GetFloat64(flagSkillWeight)
	}
	if changed(cmd, flagExperienceWeight) {
		cfg.ExperienceWeight, _ = flags.GetFloat64(flagExperienceWeight)
	}
	if changed(cmd, flagLogLevel) {
		cfg.LogLevel, _ = flags.GetString(flagLogLevel)
	}
	if changed(cmd, flagVerbose) {
		cfg.Verbose, _ = flags.GetBool(flagVerbose)
	}
	if changed(cmd, flagWorkers) {
		cfg.Workers, _ = flags.GetInt(flagWorkers)
	}
	if changed(cmd, flagTop) {
		cfg.TopN, _ = flags.GetInt(flagTop)
	}
	if changed(cmd, flagOutputDir) {
		cfg.OutputDir, _ = flags.GetString(flagOutputDir)
	}
	if changed(cmd, flagMetricsFile) {
		cfg.MetricsFile, _ = flags.GetString(flagMetricsFile)
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// newLogger logs to stderr. Verbose mode lowers the level to debug.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	level := cfg.LogLevel
	if cfg.Verbose && !changed(cmd, flagLogLevel) {
		level = "debug"
	}
	return observability.NewLogger(level, cmd.ErrOrStderr())
}

func newExtractor(cfg *config.Config, logger *slog.Logger) (*extraction.Extractor, error) {
	provider, err := ner.NewProvider(cfg.NERProvider, cfg.NERModelPath, logger)
	if err != nil {
		return nil, err
	}
	return extraction.New(extraction.WithRecognizer(provider), extraction.WithLogger(logger)), nil
}

// loadJobDescription reads the job description from cfg.Job or cfg.JobURL.
// With required unset, having neither yields an empty description.
func loadJobDescription(ctx context.Context, cfg *config.Config, logger *slog.Logger, required bool) (string, error) {
	switch {
	case cfg.JobURL != "":
		posting, err := ingestion.JobFromURL(ctx, cfg.JobURL, nil, logger)
		if err != nil {
			return "", fmt.Errorf("job ingestion from URL failed: %w", err)
		}
		return posting.Text, nil
	case cfg.Job != "":
		doc, err := ingestion.ExtractText(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		if strings.TrimSpace(doc.Text) == "" {
			return "", fmt.Errorf("job description %s is empty", cfg.Job)
		}
		return doc.Text, nil
	case required:
		return "", fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	default:
		return "", nil
	}
}

// collectResumes expands directories to the supported files directly inside
// them. Explicit file arguments are kept as given.
func collectResumes(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && ingestion.Supported(e.Name()) {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no resume files found")
	}
	return paths, nil
}

// writeJSON writes v as indented JSON to path, or to out when path is empty,
// and returns the encoded bytes.
func writeJSON(out io.Writer, path string, v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		if _, err := fmt.Fprintln(out, string(data)); err != nil {
			return nil, fmt.Errorf("failed to write output: %w", err)
		}
		return data, nil
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}
	return data, nil
}

// writeText writes content to path, or to out when path is empty.
func writeText(out io.Writer, path, content string) error {
	if path == "" {
		if _, err := io.WriteString(out, content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// validateOutput checks data against a schema when the schema file can be
// found. Only a document that fails validation is an error; a missing or
// unloadable schema is reported as a warning.
func validateOutput(errOut io.Writer, schemaFile string, data []byte) error {
	schemaPath := schemas.ResolveSchemaPath(schemaFile)
	if schemaPath == "" {
		return nil
	}

	err := schemas.ValidateBytes(schemaPath, data)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	} else if errors.As(err, &schemaLoadErr) {
		_, _ = fmt.Fprintf(errOut, "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
	} else {
		_, _ = fmt.Fprintf(errOut, "Warning: Could not validate output against schema: %v\n", err)
	}
	return nil
}
