package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Inspect the skill catalog",
}

var skillsNormalizeDistinct bool

var skillsNormalizeCmd = &cobra.Command{
	Use:   "normalize SKILL...",
	Short: "Print the canonical form of each skill",
	Long: `Prints each argument next to its canonical skill term. With --distinct only
the distinct canonical terms are printed, sorted, one per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if skillsNormalizeDistinct {
			for _, s := range skills.NormalizeAll(args) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		}
		for _, arg := range args {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, skills.NormalizeSkill(arg))
		}
		return nil
	},
}

var skillsVariationsCmd = &cobra.Command{
	Use:   "variations SKILL",
	Short: "Print every spelling that matches a skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, v := range skills.SkillVariations(args[0]) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	},
}

var skillsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog and alias table for inconsistencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		warnings := skills.Validate()
		for _, w := range warnings {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "⚠ %s\n", w)
		}
		if len(warnings) > 0 {
			return fmt.Errorf("skill catalog has %d warnings", len(warnings))
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully validated skill catalog")
		return nil
	},
}

var skillsListCategory string

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog skills, optionally for one category",
	Args:  cobra.NoArgs,
	RunE:  runSkillsList,
}

func init() {
	skillsNormalizeCmd.Flags().BoolVar(&skillsNormalizeDistinct, "distinct", false, "Print distinct canonical terms only, sorted")
	skillsListCmd.Flags().StringVar(&skillsListCategory, "category", "", "Only list skills in this category")

	skillsCmd.AddCommand(skillsNormalizeCmd, skillsVariationsCmd, skillsValidateCmd, skillsListCmd)
	rootCmd.AddCommand(skillsCmd)
}

func runSkillsList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if skillsListCategory == "" {
		for _, s := range skills.All() {
			_, _ = fmt.Fprintln(out, s)
		}
		return nil
	}

	var names []string
	for _, c := range skills.Categories() {
		if strings.EqualFold(c.Name, skillsListCategory) {
			for _, t := range c.Terms {
				_, _ = fmt.Fprintln(out, t)
			}
			return nil
		}
		names = append(names, c.Name)
	}
	return fmt.Errorf("unknown category %q (available: %s)", skillsListCategory, strings.Join(names, ", "))
}
