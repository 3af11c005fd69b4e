package skills

import (
	"sort"
	"strings"
)

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSkill lowercases and trims raw, then applies at most one alias substitution.
// Empty input yields an empty term.
func NormalizeSkill(raw string) string {
	normalized := lowerTrim(raw)
	if normalized == "" {
		return ""
	}
	if canonical, ok := aliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// SkillVariations returns the canonical form of skill followed by every alias
// that maps to it, aliases sorted.
func SkillVariations(skill string) []string {
	canonical := NormalizeSkill(skill)
	if canonical == "" {
		return []string{}
	}

	var alts []string
	for alias, target := range aliases {
		if target == canonical && alias != canonical {
			alts = append(alts, alias)
		}
	}
	sort.Strings(alts)

	return append([]string{canonical}, alts...)
}

// NormalizeAll normalizes every entry and returns the distinct terms, sorted.
func NormalizeAll(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		n := NormalizeSkill(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
