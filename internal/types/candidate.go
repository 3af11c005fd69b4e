// Package types provides type definitions for structured data used throughout the resume-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateRecord is the structured view of one resume produced by extraction.
// Optional attributes are pointers so that "not found" serializes as null.
type CandidateRecord struct {
	CandidateName     *string  `json:"candidate_name"`
	Email             *string  `json:"email"`
	SkillsFound       []string `json:"skills_found"`
	YearsOfExperience float64  `json:"years_of_experience"`
	Education         *string  `json:"education"`
	RelevantSkills    []string `json:"relevant_skills"`
	MissingSkills     []string `json:"missing_skills"`
	ExperienceDetails *string  `json:"experience_details"`
	ExtractionSuccess bool     `json:"extraction_success"`
	// ExtractionFailed is set by the pipeline when extraction had to fall back
	ExtractionFailed bool   `json:"extraction_failed,omitempty"`
	SourceFile       string `json:"source_file,omitempty"`
}

// NewFallbackRecord returns the record used when extraction cannot proceed.
func NewFallbackRecord() CandidateRecord {
	return CandidateRecord{
		SkillsFound:    []string{},
		RelevantSkills: []string{},
		MissingSkills:  []string{},
	}
}

// Name returns the candidate name or an empty string when none was found.
func (r CandidateRecord) Name() string {
	if r.CandidateName == nil {
		return ""
	}
	return *r.CandidateName
}

// EducationOrDefault returns the education fragment or "Not specified".
func (r CandidateRecord) EducationOrDefault() string {
	if r.Education == nil || *r.Education == "" {
		return "Not specified"
	}
	return *r.Education
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
