package extraction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// ExtractEmail returns the first email address in text, or "" if none.
func ExtractEmail(text string) string {
	return strings.TrimSpace(emailPattern.FindString(text))
}

// degreePatterns are checked in priority order; the first pattern with an
// acceptable match wins.
var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:B\.?Sc?\.?|Bachelor)`),
	regexp.MustCompile(`(?i)\b(?:M\.?Sc?\.?|Master)`),
	regexp.MustCompile(`(?i)\b(?:Ph\.?D\.?|PhD)`),
	regexp.MustCompile(`(?i)\b(?:M\.?B\.?A\.?|MBA)`),
	regexp.MustCompile(`(?i)\b(?:B\.?E\.?|B\.?Tech\.?)`),
	regexp.MustCompile(`(?i)\b(?:B\.?C\.?S\.?|BSCS)`),
}

// fullWordMin is the length at which a matched head is a word ("Bachelor",
// "Master", "BTech") rather than an abbreviation.
const fullWordMin = 5

// acceptableAbbreviation rejects short heads that are ordinary words: they
// must carry two capitals ("BS", "PhD", "MSc" but not "be" or "Ms.") and must
// not run straight into more letters ("Best").
func acceptableAbbreviation(text string, start, end int) bool {
	upper := 0
	for _, r := range text[start:end] {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if upper < 2 {
		return false
	}
	if end < len(text) {
		if next, _ := utf8.DecodeRuneInString(text[end:]); unicode.IsLetter(next) {
			return false
		}
	}
	return true
}

// ExtractEducation returns the degree fragment for the first matching pattern,
// running to the next comma or newline, or "" if none.
func ExtractEducation(text string) string {
	for _, re := range degreePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[1]-loc[0] < fullWordMin && !acceptableAbbreviation(text, loc[0], loc[1]) {
				continue
			}

			end := len(text)
			if i := strings.IndexAny(text[loc[0]:], ",\n"); i >= 0 {
				end = loc[0] + i
			}
			return strings.TrimSpace(text[loc[0]:end])
		}
	}
	return ""
}
