package extraction

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-ranker/internal/ner"
	"github.com/jonathan/resume-ranker/internal/skills"
)

// nameScanChars bounds the recognizer input; names sit at the top of a resume.
const nameScanChars = 300

// NameSource records which strategy produced the candidate name.
type NameSource string

const (
	NameSourceNone       NameSource = ""
	NameSourceRecognizer NameSource = "recognizer"
	NameSourceLineScan   NameSource = "line_scan"
)

var contactMarkers = []string{"@", "http", "www", "linkedin", "github", "portfolio", "phone", "email", "website"}

// nonNameTerms are technology and section-header strings that recognizers
// commonly mislabel as people.
var nonNameTerms = map[string]struct{}{
	"asp.net": {}, "asp.net core": {}, "dotnet": {}, ".net": {}, "docker": {}, "javascript": {}, "typescript": {},
	"python": {}, "java": {}, "react": {}, "angular": {}, "vue": {}, "node": {}, "nodejs": {}, "sql": {}, "mysql": {},
	"postgresql": {}, "mongodb": {}, "redis": {}, "aws": {}, "azure": {}, "gcp": {}, "kubernetes": {}, "jenkins": {},
	"terraform": {}, "apache": {}, "nginx": {}, "django": {}, "flask": {}, "spring": {}, "springboot": {}, "golang": {},
	"backend": {}, "frontend": {}, "fullstack": {}, "developer": {}, "engineer": {}, "resume": {}, "curriculum vitae": {},
	"skills": {}, "experience": {}, "education": {}, "summary": {}, "profile": {}, "objective": {},
}

// techTokens reject a name if any single token is one of them.
var techTokens = map[string]struct{}{
	"asp": {}, "net": {}, "core": {}, "docker": {}, "javascript": {}, "python": {}, "java": {},
	"sql": {}, "aws": {}, "azure": {}, "apache": {}, "react": {}, "node": {},
}

var sectionHeaders = map[string]struct{}{
	"resume": {}, "cv": {}, "curriculum vitae": {}, "education": {}, "experience": {},
}

// lineNoise strips everything except letters, digits, underscore, whitespace, hyphen and dot.
var lineNoise = regexp.MustCompile(`[^\p{L}\p{N}_\s\-\.]`)

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasContactMarker(lowered string) bool {
	for _, m := range contactMarkers {
		if strings.Contains(lowered, m) {
			return true
		}
	}
	return false
}

// IsPlausibleName reports whether name looks like a person's name: 2-4 tokens,
// each alphabetic once dots, hyphens and apostrophes are removed, with no
// contact markers, no technology tokens, and not itself a denylisted or known
// skill term.
func IsPlausibleName(name string) bool {
	cleaned := collapseSpace(name)
	if cleaned == "" {
		return false
	}
	lowered := strings.ToLower(cleaned)

	if hasContactMarker(lowered) {
		return false
	}
	if _, denied := nonNameTerms[lowered]; denied {
		return false
	}
	if skills.IsKnown(lowered) {
		return false
	}

	parts := strings.Fields(cleaned)
	if len(parts) < 2 || len(parts) > 4 {
		return false
	}

	for _, part := range parts {
		if !isAlphabetic(stripNamePunct(part)) {
			return false
		}
		if _, tech := techTokens[strings.ReplaceAll(strings.ToLower(part), ".", "")]; tech {
			return false
		}
	}
	return true
}

func stripNamePunct(s string) string {
	return strings.NewReplacer(".", "", "-", "", "'", "").Replace(s)
}

func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func head(text string, n int) string {
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}

// nameFromRecognizer returns the first plausible PERSON span in the head of text.
func nameFromRecognizer(ctx context.Context, rec ner.Recognizer, text string) (string, error) {
	spans, err := rec.FindPersons(ctx, head(text, nameScanChars))
	if err != nil {
		return "", err
	}
	for _, span := range spans {
		name := collapseSpace(span)
		if hasContactMarker(strings.ToLower(name)) {
			continue
		}
		if IsPlausibleName(name) {
			return name, nil
		}
	}
	return "", nil
}

// nameFromLines scans lines for a leading run of 2-4 capitalized words.
func nameFromLines(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, header := sectionHeaders[strings.ToLower(line)]; header {
			continue
		}

		var capWords []string
		for _, word := range strings.Fields(lineNoise.ReplaceAllString(line, "")) {
			if isCapitalized(word) {
				capWords = append(capWords, word)
			} else if len(capWords) > 0 {
				break
			}
		}

		if len(capWords) >= 2 && len(capWords) <= 4 {
			name := strings.Join(capWords, " ")
			if IsPlausibleName(name) {
				return name
			}
		}
	}
	return ""
}

func isCapitalized(word string) bool {
	first := true
	hasLetter := false
	for _, r := range word {
		if first {
			if !unicode.IsUpper(r) {
				return false
			}
			first = false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return !first && hasLetter
}
