package skills

import (
	"fmt"
	"log/slog"
	"sort"
)

// Validate checks catalog consistency and returns one warning per problem:
// empty categories and alias targets missing from the catalog.
func Validate() []string {
	return validate(catalog, aliases)
}

func validate(categories []Category, aliasMap map[string]string) []string {
	var warnings []string

	for _, c := range categories {
		if len(c.Terms) == 0 {
			warnings = append(warnings, fmt.Sprintf("category %q is empty", c.Name))
		}
	}

	terms := buildAllTerms(categories)
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, alias := range keys {
		target := aliasMap[alias]
		if _, ok := terms[target]; !ok {
			warnings = append(warnings, fmt.Sprintf("alias %q maps to unknown term %q", alias, target))
		}
	}

	return warnings
}

// LogValidation runs Validate and logs each warning. It never fails: detection
// simply works with whatever the catalog contains.
func LogValidation(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range Validate() {
		logger.Warn("skill catalog validation", "problem", w)
	}
}
