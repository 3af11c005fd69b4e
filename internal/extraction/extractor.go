// Package extraction turns resume plain text into a structured CandidateRecord:
// name, email, skills, experience years and education.
package extraction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jonathan/resume-ranker/internal/experience"
	"github.com/jonathan/resume-ranker/internal/ner"
	"github.com/jonathan/resume-ranker/internal/skills"
	"github.com/jonathan/resume-ranker/internal/types"
)

// FailureReason classifies why extraction returned the fallback record.
type FailureReason string

const (
	ReasonEmptyResume           FailureReason = "empty_resume"
	ReasonRecognizerUnavailable FailureReason = "recognizer_unavailable"
	ReasonInternalError         FailureReason = "internal_error"
)

// Failure describes a per-candidate extraction failure.
type Failure struct {
	Reason FailureReason
	Cause  error
}

func (f *Failure) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("extraction failed (%s): %v", f.Reason, f.Cause)
	}
	return fmt.Sprintf("extraction failed (%s)", f.Reason)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Result is the outcome of extracting one resume. Record is always usable; on
// failure it is the fallback record and Failure says why.
type Result struct {
	Record     types.CandidateRecord
	Failure    *Failure
	NameSource NameSource
	// RecognizerErr is a recognizer call error that was recovered by falling
	// back to the line scan. It does not make the extraction a failure.
	RecognizerErr error
}

// OK reports whether extraction completed without falling back.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Extractor extracts candidate records. It is safe for concurrent use.
type Extractor struct {
	provider ner.Provider
	calc     *experience.Calculator
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRecognizer sets the name recognizer provider. Without one only the line
// scan is used.
func WithRecognizer(p ner.Provider) Option {
	return func(e *Extractor) {
		e.provider = p
	}
}

// WithCalculator sets the experience calculator.
func WithCalculator(c *experience.Calculator) Option {
	return func(e *Extractor) {
		if c != nil {
			e.calc = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an Extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.calc == nil {
		e.calc = experience.NewCalculator(experience.WithLogger(e.logger))
	}
	return e
}

// ParseJobSkills returns the canonical skills named in a job description.
func ParseJobSkills(jobDescription string) []string {
	return skills.DetectSkills(jobDescription)
}

// RelevantAndMissing compares resume skills with job skills after normalization.
// relevant holds resume skills the job asks for; missing holds job skills the
// resume lacks. Both are deduplicated and sorted.
func RelevantAndMissing(resumeSkills, jobSkills []string) (relevant, missing []string) {
	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeSet[skills.NormalizeSkill(s)] = struct{}{}
	}
	jobSet := make(map[string]struct{}, len(jobSkills))
	for _, s := range jobSkills {
		jobSet[skills.NormalizeSkill(s)] = struct{}{}
	}

	relevant = dedupSorted(resumeSkills, func(s string) bool {
		_, ok := jobSet[skills.NormalizeSkill(s)]
		return ok
	})
	missing = dedupSorted(jobSkills, func(s string) bool {
		_, ok := resumeSet[skills.NormalizeSkill(s)]
		return !ok
	})
	return relevant, missing
}

func dedupSorted(in []string, keep func(string) bool) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, s := range in {
		if !keep(s) {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ExperienceDetails renders the short experience summary, e.g.
// "3.5 years of experience. Skills include: go, python and 4 more."
func ExperienceDetails(years float64, skillsFound []string) string {
	if len(skillsFound) == 0 {
		return ""
	}
	const shown = 5
	snippet := strings.Join(skillsFound[:min(shown, len(skillsFound))], ", ")
	if len(skillsFound) > shown {
		snippet += fmt.Sprintf(" and %d more", len(skillsFound)-shown)
	}
	return fmt.Sprintf("%s. Skills include: %s.", experience.Phrase(years), snippet)
}

// Extract builds the candidate record for resumeText against jobDescription.
// It never panics; failures yield the fallback record with Result.Failure set.
func (e *Extractor) Extract(ctx context.Context, resumeText, jobDescription string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Error("extraction panicked", "panic", p)
			res = failed(ReasonInternalError, fmt.Errorf("panic: %v", p))
		}
	}()

	if strings.TrimSpace(resumeText) == "" {
		return failed(ReasonEmptyResume, nil)
	}

	var rec ner.Recognizer
	if e.provider != nil {
		r, err := e.provider.Recognizer()
		if err != nil {
			e.logger.Warn("name recognizer unavailable", "error", err)
			return failed(ReasonRecognizerUnavailable, err)
		}
		rec = r
	}

	res.NameSource = NameSourceNone
	var name string
	if rec != nil {
		n, err := nameFromRecognizer(ctx, rec, resumeText)
		if err != nil {
			e.logger.Debug("recognizer failed, falling back to line scan", "error", err)
			res.RecognizerErr = err
		} else if n != "" {
			name = n
			res.NameSource = NameSourceRecognizer
		}
	}
	if name == "" {
		if n := nameFromLines(resumeText); n != "" {
			name = n
			res.NameSource = NameSourceLineScan
		}
	}

	skillsFound := skills.DetectSkills(resumeText)
	relevant, missing := RelevantAndMissing(skillsFound, ParseJobSkills(jobDescription))
	years := e.calc.Years(resumeText)

	res.Record = types.CandidateRecord{
		CandidateName:     types.StringPtr(name),
		Email:             types.StringPtr(ExtractEmail(resumeText)),
		SkillsFound:       skillsFound,
		YearsOfExperience: years,
		Education:         types.StringPtr(ExtractEducation(resumeText)),
		RelevantSkills:    relevant,
		MissingSkills:     missing,
		ExperienceDetails: types.StringPtr(ExperienceDetails(years, skillsFound)),
		ExtractionSuccess: name != "" || len(skillsFound) > 0,
	}
	return res
}

func failed(reason FailureReason, cause error) Result {
	return Result{
		Record:  types.NewFallbackRecord(),
		Failure: &Failure{Reason: reason, Cause: cause},
	}
}

// IsFailure reports whether err is an extraction Failure with the given reason.
func IsFailure(err error, reason FailureReason) bool {
	var f *Failure
	return errors.As(err, &f) && f.Reason == reason
}
