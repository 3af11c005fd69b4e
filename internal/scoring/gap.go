package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-ranker/internal/experience"
	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	matchedShown = 5
	missingShown = 4
)

// tier holds one score band's sentence templates. opening takes the name and
// the experience phrase. noSkills replaces skills when nothing matched; when
// empty, skills is used with "none of the required skills".
type tier struct {
	min      float64
	opening  string
	skills   string
	noSkills string
	gap      string
	noGap    string
	closing  string
}

// tiers are checked in order; the first whose min the final score reaches applies.
var tiers = []tier{
	{
		min:     80,
		opening: "%[1]s is an excellent fit for this role with %[2]s.",
		skills:  "They demonstrate strong proficiency in %s.",
		gap:     "The skill gap is minimal — only %s would need attention.",
		noGap:   "No significant skill gaps were identified.",
		closing: "Recommended for immediate interview. STRONG MATCH.",
	},
	{
		min:     60,
		opening: "%[1]s shows a reasonable fit for this role with %[2]s.",
		skills:  "Their key strengths include %s.",
		gap:     "However, they are missing %s, which may require upskilling.",
		noGap:   "Their skill coverage meets most requirements.",
		closing: "Worth considering with a skills assessment. MODERATE MATCH.",
	},
	{
		min:      40,
		opening:  "%[1]s has %[2]s but limited overlap with this role's requirements.",
		skills:   "They have some relevant skills: %s.",
		noSkills: "Their skills do not closely align with the job requirements.",
		gap:      "Significant gaps exist in %s.",
		noGap:    "Multiple required skills are absent from their profile.",
		closing:  "Would require substantial training investment. WEAK MATCH.",
	},
	{
		min:      0,
		opening:  "%[1]s does not closely match this role's requirements.",
		skills:   "Limited relevant skills were detected: %s.",
		noSkills: "No matching skills were identified in the resume.",
		gap:      "Key missing areas include %s.",
		noGap:    "Most required skills are absent.",
		closing:  "Not recommended for this position without significant reskilling. WEAK MATCH.",
	},
}

func tierFor(score float64) tier {
	for _, t := range tiers {
		if score >= t.min {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

func listWithOverflow(items []string, shown int, overflow string) string {
	s := strings.Join(items[:min(shown, len(items))], ", ")
	if len(items) > shown {
		s += fmt.Sprintf(overflow, len(items)-shown)
	}
	return s
}

// GapAnalysis writes a four-sentence recommendation for c: opening, strengths,
// gaps and a closing verdict chosen by final-score tier.
func GapAnalysis(c types.ScoredCandidate) string {
	name := c.Name()
	if name == "" {
		name = "This candidate"
	}
	matched := c.RelevantSkills
	missing := c.MissingSkills

	matchedStr := "none of the required skills"
	if len(matched) > 0 {
		matchedStr = listWithOverflow(matched, matchedShown, " and %d more")
	}

	t := tierFor(c.Score.FinalScore)
	sentences := make([]string, 0, 4)
	sentences = append(sentences, fmt.Sprintf(t.opening, name, experience.Phrase(c.YearsOfExperience)))

	if len(matched) == 0 && t.noSkills != "" {
		sentences = append(sentences, t.noSkills)
	} else {
		sentences = append(sentences, fmt.Sprintf(t.skills, matchedStr))
	}

	if len(missing) > 0 {
		sentences = append(sentences, fmt.Sprintf(t.gap, listWithOverflow(missing, missingShown, " and %d others")))
	} else {
		sentences = append(sentences, t.noGap)
	}

	sentences = append(sentences, t.closing)
	return strings.Join(sentences, " ")
}

// GapAnalyses returns GapAnalysis for each candidate, in order.
func GapAnalyses(candidates []types.ScoredCandidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = GapAnalysis(c)
	}
	return out
}
