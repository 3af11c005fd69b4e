package types

// ScoreBreakdown holds the weighted scores for a candidate plus the skill lists they were derived from.
type ScoreBreakdown struct {
	SkillScore        float64  `json:"skill_score"`
	ExperienceScore   float64  `json:"experience_score"`
	FinalScore        float64  `json:"final_score"`
	SkillMatchPercent float64  `json:"skill_match_percent"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	YearsOfExperience float64  `json:"years_of_experience"`
	Education         string   `json:"education"`
}

// ScoredCandidate is a candidate record enriched with its scores and gap analysis.
type ScoredCandidate struct {
	CandidateRecord
	Score       ScoreBreakdown `json:"score"`
	GapAnalysis string         `json:"gap_analysis"`
}

// RankedEntry is a scored candidate with its dense rank (1-based).
type RankedEntry struct {
	Rank int `json:"rank"`
	ScoredCandidate
}

// ScoreDistribution buckets candidates by final score.
type ScoreDistribution struct {
	Excellent int `json:"excellent(80+)"`
	Good      int `json:"good(60-79)"`
	Average   int `json:"average(40-59)"`
	Weak      int `json:"weak(<40)"`
}

// RankingSummary is the aggregate view of a ranked batch.
type RankingSummary struct {
	TotalCandidates   int               `json:"total_candidates"`
	TopScorer         *string           `json:"top_scorer"`
	AverageScore      float64           `json:"average_score"`
	ScoreDistribution ScoreDistribution `json:"score_distribution"`
}

// RankingResult is the JSON document written by the rank command.
type RankingResult struct {
	RunID                 string         `json:"run_id"`
	JobSkills             []string       `json:"job_skills"`
	RankedCandidates      []RankedEntry  `json:"ranked_candidates"`
	Summary               RankingSummary `json:"summary"`
	TotalProcessed        int            `json:"total_processed"`
	FailedCount           int            `json:"failed_count"`
	FailedFiles           []string       `json:"failed_files"`
	ProcessingTimeSeconds float64        `json:"processing_time_seconds"`
}

// QuickFeedback is the short score estimate for a single resume.
type QuickFeedback struct {
	Score         float64  `json:"score"`
	SkillMatch    float64  `json:"skill_match"`
	MissingSkills []string `json:"missing_skills"`
}
