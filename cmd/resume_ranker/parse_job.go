package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/observability"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "List the known skills a job description asks for",
	Long: `Reads a job description from a file or URL and prints the catalog skills it
mentions, normalized and sorted, as JSON. These are the skills every resume
is scored against.`,
	Args: cobra.NoArgs,
	RunE: runParseJob,
}

var parseJobOutput string

// jobSkillsOutput is the JSON written by parse-job.
type jobSkillsOutput struct {
	Source string   `json:"source"`
	Skills []string `json:"skills"`
}

func init() {
	addJobFlags(parseJobCmd)
	parseJobCmd.Flags().StringVarP(&parseJobOutput, "out", "o", "", "Path to write the skills JSON (default: stdout)")
	parseJobCmd.Flags().String(flagLogLevel, "", "Log level: debug, info, warn or error")
	parseJobCmd.Flags().BoolP(flagVerbose, "v", false, "Print the detected skills")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	jobText, err := loadJobDescription(cmd.Context(), cfg, logger, true)
	if err != nil {
		return err
	}

	source := cfg.Job
	if cfg.JobURL != "" {
		source = cfg.JobURL
	}
	out := jobSkillsOutput{Source: source, Skills: extraction.ParseJobSkills(jobText)}
	if _, err := writeJSON(cmd.OutOrStdout(), parseJobOutput, out); err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintJobSkills(out.Skills)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Successfully parsed job description (%d skills)\n", len(out.Skills))
	return nil
}
