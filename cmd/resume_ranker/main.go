// Package main provides the resume_ranker command-line interface.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_ranker",
	Short: "Rank resumes against a job description",
	Long: `Resume Ranker extracts names, contact details, skills, education and years of
experience from resumes, scores each candidate against the skills a job
description asks for and produces a ranked shortlist with a written gap
analysis. Everything runs locally; no external AI service is used.

Configuration is read from resume-ranker.yaml (or --config), then
RESUME_RANKER_* environment variables. Command-line flags override both.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file (values can be overridden by other flags)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
