package experience

import "strconv"

// Phrase renders years as "5.5 years of experience" ("1.0 year" when exactly one).
func Phrase(years float64) string {
	unit := "years"
	if years == 1 {
		unit = "year"
	}
	return strconv.FormatFloat(years, 'f', 1, 64) + " " + unit + " of experience"
}
