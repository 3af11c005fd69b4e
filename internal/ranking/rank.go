// Package ranking orders scored candidates deterministically, assigns dense
// ranks and summarizes a ranked batch.
package ranking

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Unknown is the top scorer name used when the leading candidate has none.
const Unknown = "Unknown"

// RankCandidates returns a sorted copy of candidates: final score, then skill
// score, then experience score (all descending), then name ascending
// case-insensitively. Equal keys keep their input order.
func RankCandidates(candidates []types.ScoredCandidate) []types.ScoredCandidate {
	if len(candidates) == 0 {
		slog.Debug("no candidates to rank")
		return []types.ScoredCandidate{}
	}

	sorted := make([]types.ScoredCandidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Score, sorted[j].Score
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if a.SkillScore != b.SkillScore {
			return a.SkillScore > b.SkillScore
		}
		if a.ExperienceScore != b.ExperienceScore {
			return a.ExperienceScore > b.ExperienceScore
		}
		return strings.ToLower(sorted[i].Name()) < strings.ToLower(sorted[j].Name())
	})
	return sorted
}

func sameScores(a, b types.ScoreBreakdown) bool {
	return a.FinalScore == b.FinalScore &&
		a.SkillScore == b.SkillScore &&
		a.ExperienceScore == b.ExperienceScore
}

// AssignRanks numbers an already sorted list with dense ranks: a candidate
// whose score triple equals its predecessor's shares that rank, otherwise the
// rank increments by one.
func AssignRanks(sorted []types.ScoredCandidate) []types.RankedEntry {
	out := make([]types.RankedEntry, 0, len(sorted))
	rank := 1
	for i, c := range sorted {
		if i > 0 && !sameScores(sorted[i-1].Score, c.Score) {
			rank++
		}
		out = append(out, types.RankedEntry{Rank: rank, ScoredCandidate: c})
	}
	return out
}

// Rank sorts candidates and assigns dense ranks.
func Rank(candidates []types.ScoredCandidate) []types.RankedEntry {
	return AssignRanks(RankCandidates(candidates))
}

// TopN returns the first n entries; n <= 0 yields none.
func TopN(entries []types.RankedEntry, n int) []types.RankedEntry {
	if n <= 0 || len(entries) == 0 {
		return []types.RankedEntry{}
	}
	return entries[:min(n, len(entries))]
}

// Summary aggregates a ranked list. An empty list gives zero counts and a nil top scorer.
func Summary(entries []types.RankedEntry) types.RankingSummary {
	if len(entries) == 0 {
		return types.RankingSummary{}
	}

	top := entries[0].Name()
	if top == "" {
		top = Unknown
	}

	var sum float64
	var dist types.ScoreDistribution
	for _, e := range entries {
		score := e.Score.FinalScore
		sum += score
		switch {
		case score >= 80:
			dist.Excellent++
		case score >= 60:
			dist.Good++
		case score >= 40:
			dist.Average++
		default:
			dist.Weak++
		}
	}

	return types.RankingSummary{
		TotalCandidates:   len(entries),
		TopScorer:         &top,
		AverageScore:      math.Round(sum/float64(len(entries))*100) / 100,
		ScoreDistribution: dist,
	}
}
