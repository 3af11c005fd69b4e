// Package pipeline provides the high-level orchestration for ranking a batch of resumes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/ingestion"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	// ParseWorkers bounds concurrent document parsing.
	ParseWorkers = 4
	// DefaultWorkers bounds concurrent extraction when RunOptions.Workers is unset.
	DefaultWorkers = 4
	// MinTextChars is the cleaned-text length a resume must exceed to be ranked.
	MinTextChars = 50
)

var (
	// ErrNoCandidates is returned when none of the input resumes could be parsed.
	ErrNoCandidates = errors.New("no resumes could be parsed successfully; ensure files contain text (not scanned images)")
	// ErrEmptyInput is returned by QuickFeedback when the resume or job is blank.
	ErrEmptyInput = errors.New("resume and job description required")
)

// Pipeline steps reported in progress events.
const (
	StepParse    = "parse"
	StepExtract  = "extract"
	StepScore    = "score"
	StepGaps     = "gap_analysis"
	StepRank     = "rank"
	StepComplete = "complete"
	StepError    = "error"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	RunID   string `json:"run_id"`
	Step    string `json:"step"`
	Message string `json:"message"`
	Percent int    `json:"percent"`
	Error   string `json:"error,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// CandidateExtractor turns resume text into a candidate record.
type CandidateExtractor interface {
	Extract(ctx context.Context, resumeText, jobDescription string) extraction.Result
}

// CandidateScorer computes a score breakdown for one record.
type CandidateScorer interface {
	Breakdown(rec types.CandidateRecord, jobSkills []string) types.ScoreBreakdown
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePaths    []string
	JobDescription string
	// Workers bounds concurrent extraction; zero means DefaultWorkers.
	Workers    int
	Extractor  CandidateExtractor
	Scorer     CandidateScorer
	GapWriter  func([]types.ScoredCandidate) []string
	OnProgress ProgressCallback
	Metrics    *observability.Metrics
	Logger     *slog.Logger
}

// Result is the outcome of a pipeline run.
type Result struct {
	RunID          uuid.UUID
	JobSkills      []string
	Ranked         []types.RankedEntry
	Summary        types.RankingSummary
	TotalProcessed int
	FailedFiles    []string
	ProcessingTime time.Duration
}

// FailedCount is the number of resumes that could not be parsed.
func (r *Result) FailedCount() int {
	return len(r.FailedFiles)
}

// RankingResult converts the run into its JSON document form.
func (r *Result) RankingResult() types.RankingResult {
	return types.RankingResult{
		RunID:                 r.RunID.String(),
		JobSkills:             r.JobSkills,
		RankedCandidates:      r.Ranked,
		Summary:               r.Summary,
		TotalProcessed:        r.TotalProcessed,
		FailedCount:           r.FailedCount(),
		FailedFiles:           r.FailedFiles,
		ProcessingTimeSeconds: float64(r.ProcessingTime.Milliseconds()) / 1000,
	}
}

// parsed is a resume whose text survived ingestion.
type parsed struct {
	path         string
	text         string
	fallbackName string
}

type runner struct {
	opts   RunOptions
	runID  uuid.UUID
	logger *slog.Logger

	progressMu sync.Mutex
}

// emitProgress calls the progress callback if configured
func (r *runner) emitProgress(step, message string, percent int, err error) {
	if r.opts.OnProgress == nil {
		return
	}
	ev := ProgressEvent{RunID: r.runID.String(), Step: step, Message: message, Percent: percent}
	if err != nil {
		ev.Error = err.Error()
	}

	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.opts.OnProgress(ev)
}

// Run parses, extracts, scores and ranks every resume in opts.ResumePaths
// against opts.JobDescription. Unreadable resumes are reported in
// Result.FailedFiles; if none are readable Run returns ErrNoCandidates.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Extractor == nil {
		opts.Extractor = extraction.New(extraction.WithLogger(opts.Logger))
	}
	if opts.Scorer == nil {
		opts.Scorer = scoring.New(scoring.DefaultPolicy(), opts.Logger)
	}
	if opts.GapWriter == nil {
		opts.GapWriter = scoring.GapAnalyses
	}

	r := &runner{opts: opts, runID: uuid.New()}
	r.logger = opts.Logger.With("run_id", r.runID.String())

	res, err := r.run(ctx)
	if err != nil {
		r.logger.Error("pipeline failed", "error", err)
		r.emitProgress(StepError, "Error", 0, err)
		return nil, err
	}
	return res, nil
}

func (r *runner) run(ctx context.Context) (*Result, error) {
	start := time.Now()

	r.logger.Info("parsing resumes", "count", len(r.opts.ResumePaths))
	r.emitProgress(StepParse, "Parsing resumes", 10, nil)
	stageStart := time.Now()
	candidates, failed, err := r.parse(ctx)
	if err != nil {
		return nil, err
	}
	r.opts.Metrics.ObserveStage(StepParse, time.Since(stageStart))
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	r.logger.Info("parsed resumes", "succeeded", len(candidates), "failed", len(failed))

	jobSkills := extraction.ParseJobSkills(r.opts.JobDescription)
	r.logger.Info("parsed job skills", "count", len(jobSkills), "skills", jobSkills[:min(5, len(jobSkills))])

	r.emitProgress(StepExtract, fmt.Sprintf("Extracting skills (0/%d)", len(candidates)), 30, nil)
	stageStart = time.Now()
	records, err := r.extract(ctx, candidates, jobSkills)
	if err != nil {
		return nil, err
	}
	r.opts.Metrics.ObserveStage(StepExtract, time.Since(stageStart))

	r.emitProgress(StepScore, "Scoring candidates", 60, nil)
	stageStart = time.Now()
	scored := make([]types.ScoredCandidate, len(records))
	for i, rec := range records {
		scored[i] = r.score(rec, jobSkills)
	}
	r.opts.Metrics.ObserveStage(StepScore, time.Since(stageStart))

	r.emitProgress(StepGaps, "Generating gap analyses", 75, nil)
	r.attachGapAnalyses(scored)

	r.emitProgress(StepRank, "Ranking candidates", 90, nil)
	ranked := ranking.Rank(scored)
	summary := ranking.Summary(ranked)
	for _, e := range ranked {
		r.opts.Metrics.IncProcessed()
		r.opts.Metrics.ObserveFinalScore(e.Score.FinalScore)
	}

	elapsed := time.Since(start)
	r.logger.Info("pipeline complete",
		"elapsed", elapsed.Round(time.Millisecond),
		"processed", len(ranked),
		"failed", len(failed),
		"average_score", summary.AverageScore,
	)
	r.emitProgress(StepComplete, "Analysis complete", 100, nil)

	return &Result{
		RunID:          r.runID,
		JobSkills:      jobSkills,
		Ranked:         ranked,
		Summary:        summary,
		TotalProcessed: len(ranked),
		FailedFiles:    failed,
		ProcessingTime: elapsed,
	}, nil
}

// parse reads every resume with at most ParseWorkers in flight. Results keep
// the input order.
func (r *runner) parse(ctx context.Context) ([]parsed, []string, error) {
	paths := r.opts.ResumePaths
	slots := make([]*parsed, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(ParseWorkers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			doc, err := ingestion.ExtractText(path)
			if err != nil {
				r.logger.Warn("failed to parse resume", "file", filepath.Base(path), "error", err)
				return nil
			}
			if utf8.RuneCountInString(doc.Text) <= MinTextChars {
				r.logger.Warn("resume has too little text", "file", filepath.Base(path), "chars", doc.Metadata.Chars)
				return nil
			}
			if doc.Metadata.IsScanned {
				r.logger.Warn("resume looks scanned; extraction may be poor", "file", filepath.Base(path))
			}
			slots[i] = &parsed{
				path:         path,
				text:         doc.Text,
				fallbackName: extraction.FilenameToName(path),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var candidates []parsed
	failed := []string{}
	for i, p := range slots {
		if p == nil {
			failed = append(failed, paths[i])
			r.opts.Metrics.IncParseFailure()
			continue
		}
		candidates = append(candidates, *p)
	}
	return candidates, failed, nil
}

// extract runs the extractor over candidates with at most Workers in flight.
func (r *runner) extract(ctx context.Context, candidates []parsed, jobSkills []string) ([]types.CandidateRecord, error) {
	records := make([]types.CandidateRecord, len(candidates))
	total := len(candidates)

	var (
		mu   sync.Mutex
		done int
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			records[i] = r.extractOne(gCtx, c, jobSkills)

			mu.Lock()
			defer mu.Unlock()
			done++
			r.emitProgress(StepExtract, fmt.Sprintf("Extracting skills (%d/%d)", done, total), 30+done*25/total, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *runner) extractOne(ctx context.Context, c parsed, jobSkills []string) types.CandidateRecord {
	file := filepath.Base(c.path)

	res := r.opts.Extractor.Extract(ctx, c.text, r.opts.JobDescription)
	if !res.OK() {
		r.logger.Warn("skill extraction failed, using fallback record", "file", file, "reason", res.Failure.Reason, "error", res.Failure.Cause)
		r.opts.Metrics.IncExtractionFailure(string(res.Failure.Reason))

		rec := types.NewFallbackRecord()
		rec.CandidateName = types.StringPtr(c.fallbackName)
		rec.MissingSkills = append([]string{}, jobSkills...)
		rec.ExtractionFailed = true
		rec.SourceFile = c.path
		return rec
	}

	rec := res.Record
	rec.SourceFile = c.path
	if !extraction.IsValidExtractedName(rec.Name()) {
		r.logger.Debug("extracted name rejected, using file name", "file", file, "extracted", rec.Name(), "fallback", c.fallbackName)
		rec.CandidateName = types.StringPtr(c.fallbackName)
	}
	r.logger.Info("extracted candidate", "file", file, "name", rec.Name(), "skills", len(rec.SkillsFound))
	return rec
}

// score computes rec's breakdown. A panicking scorer yields zero scores with
// every job skill missing.
func (r *runner) score(rec types.CandidateRecord, jobSkills []string) (sc types.ScoredCandidate) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("scoring failed", "candidate", rec.Name(), "panic", p)
			r.opts.Metrics.IncScoringFailure()

			missing := append([]string{}, jobSkills...)
			rec.MissingSkills = missing
			sc = types.ScoredCandidate{
				CandidateRecord: rec,
				Score: types.ScoreBreakdown{
					MatchedSkills:     []string{},
					MissingSkills:     missing,
					YearsOfExperience: rec.YearsOfExperience,
					Education:         rec.EducationOrDefault(),
				},
			}
		}
	}()

	return types.ScoredCandidate{
		CandidateRecord: rec,
		Score:           r.opts.Scorer.Breakdown(rec, jobSkills),
	}
}

// attachGapAnalyses fills GapAnalysis for every candidate. If the writer
// fails, each candidate gets a plain score line instead.
func (r *runner) attachGapAnalyses(scored []types.ScoredCandidate) {
	analyses, err := r.gapAnalyses(scored)
	if err != nil {
		r.logger.Error("gap analysis generation failed", "error", err)
		for i := range scored {
			scored[i].GapAnalysis = fmt.Sprintf("Score: %.1f/100", scored[i].Score.FinalScore)
		}
		return
	}
	for i := range scored {
		scored[i].GapAnalysis = analyses[i]
	}
}

func (r *runner) gapAnalyses(scored []types.ScoredCandidate) (analyses []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()

	analyses = r.opts.GapWriter(scored)
	if len(analyses) != len(scored) {
		return nil, fmt.Errorf("got %d analyses for %d candidates", len(analyses), len(scored))
	}
	return analyses, nil
}

// quickMissingShown is how many missing skills QuickFeedback reports.
const quickMissingShown = 3

// QuickFeedback scores a single pasted resume against a job description.
func QuickFeedback(ctx context.Context, extractor CandidateExtractor, scorer CandidateScorer, resumeText, jobDescription string) (*types.QuickFeedback, error) {
	resumeText = strings.TrimSpace(resumeText)
	jobDescription = strings.TrimSpace(jobDescription)
	if resumeText == "" || jobDescription == "" {
		return nil, ErrEmptyInput
	}
	if extractor == nil {
		extractor = extraction.New()
	}
	if scorer == nil {
		scorer = scoring.New(scoring.DefaultPolicy(), nil)
	}

	res := extractor.Extract(ctx, resumeText, jobDescription)
	if res.Failure != nil {
		return nil, fmt.Errorf("quick feedback failed: %w", res.Failure)
	}

	breakdown := scorer.Breakdown(res.Record, extraction.ParseJobSkills(jobDescription))
	missing := res.Record.MissingSkills
	return &types.QuickFeedback{
		Score:         breakdown.FinalScore,
		SkillMatch:    breakdown.SkillMatchPercent,
		MissingSkills: append([]string{}, missing[:min(quickMissingShown, len(missing))]...),
	}, nil
}
