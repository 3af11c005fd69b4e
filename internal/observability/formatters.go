// Package observability provides logging, batch metrics and formatted output
// for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintJobSkills outputs the skills detected in the job description.
func (p *Printer) PrintJobSkills(jobSkills []string) {
	var sb strings.Builder
	if len(jobSkills) == 0 {
		sb.WriteString("No known skills detected")
	} else {
		sb.WriteString(fmt.Sprintf("Detected %d skills:\n", len(jobSkills)))
		writeList(&sb, jobSkills, 10)
	}
	p.printBox("JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidate outputs the structured record extracted from one resume.
func (p *Printer) PrintCandidate(rec *types.CandidateRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	name := rec.Name()
	if name == "" {
		name = "(not found)"
	}
	email := "(not found)"
	if rec.Email != nil {
		email = *rec.Email
	}

	sb.WriteString(fmt.Sprintf("Name:       %s\n", name))
	sb.WriteString(fmt.Sprintf("Email:      %s\n", email))
	sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", rec.YearsOfExperience))
	sb.WriteString(fmt.Sprintf("Education:  %s\n", rec.EducationOrDefault()))

	if len(rec.RelevantSkills) > 0 {
		sb.WriteString("\nRelevant Skills:\n")
		writeList(&sb, rec.RelevantSkills, maxItemsToShow)
	}
	if len(rec.MissingSkills) > 0 {
		sb.WriteString("\nMissing Skills:\n")
		writeList(&sb, rec.MissingSkills, maxItemsToShow)
	}

	p.printBox("EXTRACTED CANDIDATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankingSummary outputs batch totals and the score distribution.
func (p *Printer) PrintRankingSummary(summary types.RankingSummary) {
	top := "N/A"
	if summary.TopScorer != nil {
		top = *summary.TopScorer
	}
	d := summary.ScoreDistribution

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates:    %d\n", summary.TotalCandidates))
	sb.WriteString(fmt.Sprintf("Top scorer:    %s\n", top))
	sb.WriteString(fmt.Sprintf("Average score: %.2f\n", summary.AverageScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Excellent (80+): %d\n", d.Excellent))
	sb.WriteString(fmt.Sprintf("Good (60-79):    %d\n", d.Good))
	sb.WriteString(fmt.Sprintf("Average (40-59): %d\n", d.Average))
	sb.WriteString(fmt.Sprintf("Weak (<40):      %d", d.Weak))

	p.printBox("RANKING SUMMARY", sb.String())
}

// PrintTopCandidates outputs the first n ranked entries with their scores and matched skills.
func (p *Printer) PrintTopCandidates(entries []types.RankedEntry, n int) {
	if len(entries) == 0 || n <= 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates ranked: %d\n\n", len(entries)))

	count := min(len(entries), n)
	for i := 0; i < count; i++ {
		e := entries[i]
		name := e.Name()
		if name == "" {
			name = "Unknown"
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", e.Rank, name))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (skills %.2f, experience %.0f)\n",
			e.Score.FinalScore, e.Score.SkillScore, e.Score.ExperienceScore))
		if len(e.Score.MatchedSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", truncate(strings.Join(e.Score.MatchedSkills, ", "), 40)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(entries)-count))
	}

	p.printBox("TOP CANDIDATES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuickFeedback outputs a single-resume score estimate.
func (p *Printer) PrintQuickFeedback(fb types.QuickFeedback) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:       %.2f\n", fb.Score))
	sb.WriteString(fmt.Sprintf("Skill match: %.2f%%\n", fb.SkillMatch))
	if len(fb.MissingSkills) > 0 {
		sb.WriteString("\nTop missing skills:\n")
		writeList(&sb, fb.MissingSkills, maxItemsToShow)
	}
	p.printBox("QUICK FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFailures outputs the files that could not be processed.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFailures(failedFiles []string) {
	if len(failedFiles) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL FILES PROCESSED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Failed to process %d files:\n\n", len(failedFiles)))
	for i, f := range failedFiles {
		sb.WriteString(fmt.Sprintf("⚠ %s", f))
		if i < len(failedFiles)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FAILED FILES", sb.String())
}
