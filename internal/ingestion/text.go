package ingestion

import (
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	bulletGlyphs    = regexp.MustCompile(`[•◦▪▸→·]`)
	pageMarker      = regexp.MustCompile(`(?i)^page \d+(?: of \d+)?$`)
	blankRuns       = regexp.MustCompile(`\n\n+`)
)

// CleanText normalizes extracted document text while keeping its line
// structure: line endings become LF, bullet glyphs become "-", runs of spaces
// collapse, "Page N" and "Page N of M" footer lines are dropped, and blank-line
// runs collapse to a single blank line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Clean each line
	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	// 3. Rejoin and collapse blank lines
	result := strings.Join(cleanedLines, "\n")
	result = blankRuns.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine trims a single line and normalizes what is left of it.
func cleanLine(line string) string {
	line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	if line == "" {
		return ""
	}

	line = bulletGlyphs.ReplaceAllString(line, "-")
	if pageMarker.MatchString(line) {
		return ""
	}
	return line
}
