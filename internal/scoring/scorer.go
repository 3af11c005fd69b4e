// Package scoring computes weighted candidate scores and template-based gap analyses.
package scoring

import (
	"log/slog"
	"math"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// Policy holds the scoring weights and partial-match rules.
type Policy struct {
	SkillWeight      float64 `json:"skill_weight" validate:"gte=0,lte=1"`
	ExperienceWeight float64 `json:"experience_weight" validate:"gte=0,lte=1"`
	// PartialCredit is what a substring match is worth; any nonzero credit
	// counts the skill as covered.
	PartialCredit float64 `json:"partial_credit" validate:"gt=0,lte=1"`
	// PartialMinLength is the shorter string's minimum length for a substring match.
	PartialMinLength int `json:"partial_min_length" validate:"gte=1"`
}

// DefaultPolicy returns the 70/30 weighting with 0.8 partial credit for
// substring matches of at least four characters.
func DefaultPolicy() Policy {
	return Policy{
		SkillWeight:      0.7,
		ExperienceWeight: 0.3,
		PartialCredit:    0.8,
		PartialMinLength: 4,
	}
}

// Scorer scores candidates under a Policy.
type Scorer struct {
	policy Policy
	logger *slog.Logger
}

// New returns a Scorer. A nil logger uses slog.Default().
func New(policy Policy, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{policy: policy, logger: logger}
}

// Policy returns the scorer's policy.
func (s *Scorer) Policy() Policy {
	return s.policy
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// SkillScore returns the percentage (0-100, two decimals) of jobSkills covered
// by relevant. An exact case-insensitive match or a qualifying substring match
// in either direction covers a skill.
func (s *Scorer) SkillScore(relevant, jobSkills []string) float64 {
	required := make([]string, 0, len(jobSkills))
	for _, js := range jobSkills {
		if n := strings.ToLower(strings.TrimSpace(js)); n != "" {
			required = append(required, n)
		}
	}
	if len(required) == 0 {
		s.logger.Warn("no job skills provided for scoring")
		return 0.0
	}

	have := make(map[string]struct{}, len(relevant))
	for _, r := range relevant {
		if n := strings.ToLower(strings.TrimSpace(r)); n != "" {
			have[n] = struct{}{}
		}
	}

	// keyed by skill so duplicate requirements count once in the numerator
	credit := make(map[string]float64, len(required))
	for _, js := range required {
		if _, ok := have[js]; ok {
			credit[js] = 1.0
			continue
		}
		if c := s.partialCredit(js, have); c > 0 {
			credit[js] = c
		}
	}

	pct := float64(len(credit)) / float64(len(required)) * 100.0
	return round2(math.Min(pct, 100.0))
}

func (s *Scorer) partialCredit(jobSkill string, have map[string]struct{}) float64 {
	for cand := range have {
		if !strings.Contains(cand, jobSkill) && !strings.Contains(jobSkill, cand) {
			continue
		}
		if min(len(jobSkill), len(cand)) >= s.policy.PartialMinLength {
			return s.policy.PartialCredit
		}
	}
	return 0.0
}

// ExperienceScore maps years of experience onto a step scale. nil means unknown.
func ExperienceScore(years *float64) float64 {
	if years == nil {
		return 0.0
	}
	y := *years
	switch {
	case math.IsNaN(y) || y <= 0:
		return 0.0
	case y < 1:
		return 20.0
	case y < 2:
		return 40.0
	case y < 4:
		return 60.0
	case y < 6:
		return 80.0
	default:
		return 100.0
	}
}

// FinalScore combines the component scores with the policy weights, rounded to two decimals.
func (s *Scorer) FinalScore(skillScore, experienceScore float64) float64 {
	return round2(s.policy.SkillWeight*skillScore + s.policy.ExperienceWeight*experienceScore)
}

// Breakdown scores rec against jobSkills.
func (s *Scorer) Breakdown(rec types.CandidateRecord, jobSkills []string) types.ScoreBreakdown {
	skill := s.SkillScore(rec.RelevantSkills, jobSkills)
	years := rec.YearsOfExperience
	exp := ExperienceScore(&years)

	return types.ScoreBreakdown{
		SkillScore:        skill,
		ExperienceScore:   round2(exp),
		FinalScore:        s.FinalScore(skill, exp),
		SkillMatchPercent: skill,
		MatchedSkills:     nonNil(rec.RelevantSkills),
		MissingSkills:     nonNil(rec.MissingSkills),
		YearsOfExperience: years,
		Education:         rec.EducationOrDefault(),
	}
}

// Score returns rec with its breakdown and gap analysis attached.
func (s *Scorer) Score(rec types.CandidateRecord, jobSkills []string) types.ScoredCandidate {
	sc := types.ScoredCandidate{
		CandidateRecord: rec,
		Score:           s.Breakdown(rec, jobSkills),
	}
	sc.GapAnalysis = GapAnalysis(sc)
	return sc
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
