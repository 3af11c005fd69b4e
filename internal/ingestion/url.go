package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/resume-ranker/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the job posting cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled from the page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// JobPosting is a job description fetched from a URL.
type JobPosting struct {
	URL      string
	Platform fetch.Platform
	Text     string
}

// JobFromURL fetches a job posting page and returns its cleaned description
// text, using job-board specific selectors when the host is recognized.
func JobFromURL(ctx context.Context, urlStr string, opts *fetch.Options, logger *slog.Logger) (*JobPosting, error) {
	if logger == nil {
		logger = slog.Default()
	}

	platform := fetch.DetectPlatform(urlStr)
	logger.Debug("fetching job posting", "url", urlStr, "platform", platform)

	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	logger.Debug("fetched job posting", "bytes", len(result.HTML))

	text, err := fetch.ExtractMainText(result.HTML,
		fetch.PlatformContentSelectors(platform),
		fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: page has no text", ErrContentExtractionFailed)
	}
	logger.Debug("extracted job description", "chars", len(cleaned))

	return &JobPosting{URL: urlStr, Platform: platform, Text: cleaned}, nil
}
