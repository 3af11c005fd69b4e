package extraction

import (
	"path/filepath"
	"regexp"
	"strings"
)

// UnknownCandidate is used when neither the resume nor its file name yields a name.
const UnknownCandidate = "Unknown Candidate"

var invalidExtractedNames = map[string]struct{}{
	"asp.net core": {}, "asp.net": {}, "docker": {}, "javascript": {}, "python": {}, "java": {}, "react": {}, "sql": {},
	"aws": {}, "azure": {}, "apache": {}, "skills": {}, "experience": {}, "education": {}, "resume": {}, "cv": {},
	"full stack": {}, "backend": {}, "frontend": {}, "developer": {}, "engineer": {},
}

var asciiLetters = regexp.MustCompile(`^[A-Za-z]+$`)

// IsValidExtractedName is the stricter check used before trusting an extracted
// name over a file-name fallback: 2-4 ASCII-letter tokens (dots, hyphens and
// apostrophes allowed inside) that are not a section header or technology.
func IsValidExtractedName(name string) bool {
	normalized := collapseSpace(name)
	if normalized == "" {
		return false
	}
	if _, invalid := invalidExtractedNames[strings.ToLower(normalized)]; invalid {
		return false
	}

	parts := strings.Fields(normalized)
	if len(parts) < 2 || len(parts) > 4 {
		return false
	}
	for _, part := range parts {
		if !asciiLetters.MatchString(stripNamePunct(part)) {
			return false
		}
	}
	return true
}

var uploadPrefix = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}_`)

var documentExtensions = map[string]struct{}{
	".pdf": {}, ".docx": {}, ".txt": {}, ".md": {}, ".html": {}, ".htm": {},
}

var fileNameNoise = []string{
	"_Resume", "_CV", "_Email", "_Biodata", "_Application",
	"_Updated", "_Final", "_New", "_2024", "_2025", "_2026",
	"-Resume", "-CV", "-Email",
	" Resume", " CV", " Email",
}

// FilenameToName derives a display name from an uploaded file name, e.g.
// "2430e19d-43f9-43bc-b8a8-00d59ab4fc4d_Sarah_Ahmed_Email.pdf" becomes "Sarah Ahmed".
func FilenameToName(fileName string) string {
	name := filepath.Base(fileName)
	if ext := filepath.Ext(name); ext != "" {
		if _, ok := documentExtensions[strings.ToLower(ext)]; ok {
			name = strings.TrimSuffix(name, ext)
		}
	}

	name = uploadPrefix.ReplaceAllString(name, "")

	for _, word := range fileNameNoise {
		name = strings.ReplaceAll(name, word, "")
		name = strings.ReplaceAll(name, strings.ToLower(word), "")
		name = strings.ReplaceAll(name, strings.ToUpper(word), "")
	}

	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}

	if len(words) == 0 {
		return UnknownCandidate
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}
