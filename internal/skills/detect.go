package skills

import (
	"regexp"
	"sort"
	"strings"
)

type detector struct {
	term  string
	canon string
	re    *regexp.Regexp
}

// detectors is compiled once: every catalog term, then every alias.
var detectors = buildDetectors()

func buildDetectors() []detector {
	var out []detector
	for _, term := range All() {
		out = append(out, detector{term: term, canon: NormalizeSkill(term), re: wholeWord(term)})
	}

	aliasKeys := make([]string, 0, len(aliases))
	for k := range aliases {
		aliasKeys = append(aliasKeys, k)
	}
	sort.Strings(aliasKeys)
	for _, alias := range aliasKeys {
		out = append(out, detector{term: alias, canon: NormalizeSkill(aliases[alias]), re: wholeWord(alias)})
	}
	return out
}

// wholeWord builds a pattern matching term as a literal, bounded by non-word
// characters. Terms that begin or end with punctuation ("c++", ".net") get an
// explicit non-word guard since \b cannot sit next to a non-word character.
func wholeWord(term string) *regexp.Regexp {
	var sb strings.Builder
	if isWordByte(term[0]) {
		sb.WriteString(`\b`)
	} else {
		sb.WriteString(`(?:^|\W)`)
	}
	sb.WriteString(regexp.QuoteMeta(term))
	if isWordByte(term[len(term)-1]) {
		sb.WriteString(`\b`)
	} else {
		sb.WriteString(`(?:\W|$)`)
	}
	return regexp.MustCompile(sb.String())
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// DetectSkills returns the sorted, deduplicated canonical terms that occur as
// whole words in text (case-insensitive).
func DetectSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	lower := strings.ToLower(text)

	seen := make(map[string]struct{})
	for _, d := range detectors {
		if _, ok := seen[d.canon]; ok {
			continue
		}
		// cheap prefilter before running the regexp
		if !strings.Contains(lower, d.term) {
			continue
		}
		if d.re.MatchString(lower) {
			seen[d.canon] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
