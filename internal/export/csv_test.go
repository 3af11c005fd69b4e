package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-ranker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(rank int, name string, final float64) types.RankedEntry {
	return types.RankedEntry{
		Rank: rank,
		ScoredCandidate: types.ScoredCandidate{
			CandidateRecord: types.CandidateRecord{
				CandidateName:     types.StringPtr(name),
				Email:             types.StringPtr(strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com"),
				YearsOfExperience: 4.5,
			},
			Score: types.ScoreBreakdown{
				FinalScore:      final,
				SkillScore:      95,
				ExperienceScore: 80,
				MatchedSkills:   []string{"python", "react"},
				MissingSkills:   []string{"docker"},
			},
			GapAnalysis: "Strong match.",
		},
	}
}

func parse(t *testing.T, s string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(s)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVString(t *testing.T) {
	out, err := CSVString([]types.RankedEntry{entry(1, "Alice Chen", 92.5), entry(2, "José Núñez", 86)})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\r\n"))

	records := parse(t, out)
	require.Len(t, records, 3)
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, []string{
		"1", "Alice Chen", "alice.chen@example.com", "92.5", "95.0", "80.0", "4.5",
		"python; react", "docker", "Strong match.",
	}, records[1])
	assert.Equal(t, "José Núñez", records[2][1])
	assert.Equal(t, "86.0", records[2][3])
}

func TestCSVString_Empty(t *testing.T) {
	out, err := CSVString(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCSVString_MissingFieldsAndTruncation(t *testing.T) {
	e := entry(3, "", 10)
	e.CandidateName = nil
	e.Email = nil
	e.GapAnalysis = strings.Repeat("é", RecommendationLimit+50)

	out, err := CSVString([]types.RankedEntry{e})
	require.NoError(t, err)

	rec := parse(t, out)[1]
	assert.Equal(t, "Unknown", rec[1])
	assert.Equal(t, "", rec[2])
	assert.Equal(t, RecommendationLimit, len([]rune(rec[9])))
}

func TestCSVString_QuotesCommas(t *testing.T) {
	e := entry(1, "Alice Chen", 50)
	e.GapAnalysis = `Knows "Go", SQL`

	out, err := CSVString([]types.RankedEntry{e})
	require.NoError(t, err)
	assert.Contains(t, out, `"Knows ""Go"", SQL"`)
	assert.Equal(t, `Knows "Go", SQL`, parse(t, out)[1][9])
}

func TestFormatSkills(t *testing.T) {
	assert.Equal(t, "Python; React; SQL", FormatSkills([]string{"Python", "React", "SQL"}))
	assert.Equal(t, "Java; Spring Boot", FormatSkills([]string{" Java ", "", "Spring Boot"}))
	assert.Equal(t, "", FormatSkills(nil))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "86.0", formatNumber(86))
	assert.Equal(t, "0.0", formatNumber(0))
	assert.Equal(t, "33.33", formatNumber(33.333333))
	assert.Equal(t, "70.5", formatNumber(70.5))
}

func TestWriteSummaryCSV(t *testing.T) {
	top := "Alice"
	summary := types.RankingSummary{
		TotalCandidates:   5,
		TopScorer:         &top,
		AverageScore:      78.5,
		ScoreDistribution: types.ScoreDistribution{Excellent: 2, Good: 2, Average: 1},
	}
	now := time.Date(2026, 2, 27, 14, 30, 45, 0, time.UTC)

	var sb strings.Builder
	require.NoError(t, WriteSummaryCSV(&sb, summary, now))

	assert.Equal(t, [][]string{
		{"Metric", "Value"},
		{"Total Candidates", "5"},
		{"Top Scorer", "Alice"},
		{"Average Score", "78.5"},
		{"Excellent (80+)", "2"},
		{"Good (60-79)", "2"},
		{"Average (40-59)", "1"},
		{"Weak (<40)", "0"},
		{"Export Date", "2026-02-27 14:30:45"},
	}, parse(t, sb.String()))
}

func TestWriteSummaryCSV_NoTopScorer(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteSummaryCSV(&sb, types.RankingSummary{}, time.Now()))
	assert.Equal(t, "N/A", parse(t, sb.String())[2][1])
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "resumrank_results_2026-03-01_090507.csv", Filename(now))
	assert.Equal(t, "resumrank_summary_2026-03-01_090507.csv", SummaryFilename(now))
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "nested", "ranking.csv")

	abs, err := WriteFile(path, []types.RankedEntry{entry(1, "Alice Chen", 92.5)})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))

	data, err := os.ReadFile(abs)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alice Chen")
}

func TestWriteSummaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")

	_, err := WriteSummaryFile(path, types.RankingSummary{TotalCandidates: 1}, time.Now())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Metric,Value\r\n"))
}
