// Package export writes ranking results as CSV for spreadsheets.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
)

// RecommendationLimit is the maximum number of characters of gap analysis
// written to a CSV cell.
const RecommendationLimit = 200

// Columns is the header row of the results CSV.
var Columns = []string{
	"Rank",
	"Candidate Name",
	"Email",
	"Final Score",
	"Skill Score",
	"Experience Score",
	"Years Experience",
	"Matched Skills",
	"Missing Skills",
	"Recommendation",
}

// FormatSkills joins skills with "; ", dropping blanks.
func FormatSkills(skills []string) string {
	kept := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "; ")
}

// formatNumber renders v rounded to two decimals, always with a fractional
// part ("86.0", "92.5", "33.33").
func formatNumber(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw
}

func row(e types.RankedEntry) []string {
	name := e.Name()
	if name == "" {
		name = "Unknown"
	}
	email := ""
	if e.Email != nil {
		email = *e.Email
	}
	return []string{
		strconv.Itoa(e.Rank),
		name,
		email,
		formatNumber(e.Score.FinalScore),
		formatNumber(e.Score.SkillScore),
		formatNumber(e.Score.ExperienceScore),
		formatNumber(e.YearsOfExperience),
		FormatSkills(e.Score.MatchedSkills),
		FormatSkills(e.Score.MissingSkills),
		truncate(e.GapAnalysis, RecommendationLimit),
	}
}

// WriteCSV writes the header and one row per entry. Nothing is written for an empty list.
func WriteCSV(w io.Writer, entries []types.RankedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	cw := newWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(row(e)); err != nil {
			return fmt.Errorf("failed to write CSV row for rank %d: %w", e.Rank, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVString returns the results CSV in memory.
func CSVString(entries []types.RankedEntry) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteSummaryCSV writes the summary as Metric,Value rows stamped with now.
func WriteSummaryCSV(w io.Writer, summary types.RankingSummary, now time.Time) error {
	top := "N/A"
	if summary.TopScorer != nil {
		top = *summary.TopScorer
	}
	d := summary.ScoreDistribution

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Candidates", strconv.Itoa(summary.TotalCandidates)},
		{"Top Scorer", top},
		{"Average Score", formatNumber(summary.AverageScore)},
		{"Excellent (80+)", strconv.Itoa(d.Excellent)},
		{"Good (60-79)", strconv.Itoa(d.Good)},
		{"Average (40-59)", strconv.Itoa(d.Average)},
		{"Weak (<40)", strconv.Itoa(d.Weak)},
		{"Export Date", now.Format(time.DateTime)},
	}

	cw := newWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write summary CSV: %w", err)
	}
	return nil
}

// Filename returns the timestamped download name for a results CSV.
func Filename(now time.Time) string {
	return "resumrank_results_" + now.Format("2006-01-02_150405") + ".csv"
}

// SummaryFilename returns the timestamped name for a summary CSV.
func SummaryFilename(now time.Time) string {
	return "resumrank_summary_" + now.Format("2006-01-02_150405") + ".csv"
}

// WriteFile writes the results CSV to path, creating parent directories.
// It returns the absolute path written.
func WriteFile(path string, entries []types.RankedEntry) (string, error) {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, entries) })
}

// WriteSummaryFile writes the summary CSV to path, creating parent directories.
func WriteSummaryFile(path string, summary types.RankingSummary, now time.Time) (string, error) {
	return writeFile(path, func(w io.Writer) error { return WriteSummaryCSV(w, summary, now) })
}

func writeFile(path string, write func(io.Writer) error) (string, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
