// Package experience estimates years of professional experience from the date
// ranges mentioned in resume text.
package experience

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxYears caps the computed experience; larger values are treated as data errors.
	MaxYears = 40.0
	// contextWindow is how many bytes either side of a range are checked for education keywords
	contextWindow = 500
	minYear       = 1900
)

var educationKeywords = []string{
	"bachelor", "master", "phd", "degree", "university", "college",
	"b.s.", "b.e.", "m.s.", "gpa", "graduation", "graduate",
	"diploma", "institute", "school", "coursework",
}

var monthNumbers = map[string]time.Month{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

const (
	monthFull  = `(?:january|february|march|april|may|june|july|august|september|october|november|december)`
	monthShort = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)`
	separator  = `\s*(?:–|-|to)\s*`
	openEnd    = `(present|current|now|today)`
)

// Every family captures: start month, start year, end month, end year, open marker.
// The bare-year family leaves both month groups empty.
var (
	fullMonthRange = regexp.MustCompile(`\b(` + monthFull + `)\s+(\d{4})` + separator +
		`(?:(` + monthFull + `)\s+(\d{4})|` + openEnd + `)`)
	shortMonthRange = regexp.MustCompile(`\b(` + monthShort + `)\.?\s+(\d{4})` + separator +
		`(?:(` + monthShort + `)\.?\s+(\d{4})|` + openEnd + `)`)
	numericMonthRange = regexp.MustCompile(`\b(\d{1,2})/(\d{4})` + separator +
		`(?:(\d{1,2})/(\d{4})|` + openEnd + `)`)
	yearRange = regexp.MustCompile(`\b()(\d{4})` + separator +
		`(?:()(\d{4})|` + openEnd + `)\b`)
)

// DateInterval is a [Start, End] span parsed from text. Start is the first of a
// month; End is the first of a month or the evaluation time for open ranges.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// Calculator computes experience years. The zero value is not usable; use NewCalculator.
type Calculator struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock sets the function used to resolve "present".
func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger for data-quality warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCalculator returns a Calculator using the wall clock and the default logger.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Intervals returns every employment-looking range in text, in family order
// (full month, short month, numeric month, bare year). Ranges near education
// keywords and ranges ending before they start are dropped.
func (c *Calculator) Intervals(text string) []DateInterval {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)
	now := c.now()

	var out []DateInterval
	out = append(out, c.scan(lower, fullMonthRange, parseNamedMonth, now, false)...)
	out = append(out, c.scan(lower, shortMonthRange, parseNamedMonth, now, false)...)
	out = append(out, c.scan(lower, numericMonthRange, parseNumericMonth, now, false)...)
	out = append(out, c.scan(lower, yearRange, nil, now, true)...)
	return out
}

// Years returns the max-span experience in years: latest end minus earliest
// start over all intervals, rounded half to even at one decimal and clamped to [0, MaxYears].
func (c *Calculator) Years(text string) float64 {
	intervals := c.Intervals(text)
	if len(intervals) == 0 {
		return 0.0
	}

	earliest := intervals[0].Start
	latest := intervals[0].End
	for _, iv := range intervals[1:] {
		if iv.Start.Before(earliest) {
			earliest = iv.Start
		}
		if iv.End.After(latest) {
			latest = iv.End
		}
	}

	months := (latest.Year()-earliest.Year())*12 + int(latest.Month()) - int(earliest.Month())
	// halves round to even: 3 months is 0.2 years, 15 months 1.2
	years := math.RoundToEven(float64(months)/12.0*10) / 10

	if years > MaxYears {
		c.logger.Warn("experience exceeds cap, clamping",
			"years", years,
			"cap", MaxYears)
		return MaxYears
	}
	return math.Max(0.0, years)
}

type monthParser func(month, year string) (time.Month, int, bool)

func (c *Calculator) scan(lower string, re *regexp.Regexp, parse monthParser, now time.Time, yearOnly bool) []DateInterval {
	var out []DateInterval
	for _, m := range re.FindAllStringSubmatchIndex(lower, -1) {
		group := func(i int) string {
			if m[2*i] < 0 {
				return ""
			}
			return lower[m[2*i]:m[2*i+1]]
		}

		start, ok := resolvePoint(group(1), group(2), parse, now, yearOnly)
		if !ok {
			continue
		}

		if inEducationContext(lower, m[0], m[1]) {
			continue
		}

		var end time.Time
		switch {
		case group(5) != "":
			end = now
		case group(4) != "":
			end, ok = resolvePoint(group(3), group(4), parse, now, yearOnly)
			if !ok {
				continue
			}
		default:
			continue
		}

		if end.Before(start) {
			continue
		}
		out = append(out, DateInterval{Start: start, End: end})
	}
	return out
}

func resolvePoint(month, year string, parse monthParser, now time.Time, yearOnly bool) (time.Time, bool) {
	if yearOnly {
		y, err := strconv.Atoi(year)
		if err != nil || y < minYear || y > now.Year() {
			return time.Time{}, false
		}
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	mon, y, ok := parse(month, year)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, mon, 1, 0, 0, 0, 0, time.UTC), true
}

func parseNamedMonth(month, year string) (time.Month, int, bool) {
	mon, ok := monthNumbers[strings.TrimSuffix(month, ".")]
	if !ok {
		return 0, 0, false
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < minYear {
		return 0, 0, false
	}
	return mon, y, true
}

func parseNumericMonth(month, year string) (time.Month, int, bool) {
	mon, err := strconv.Atoi(month)
	if err != nil || mon < 1 || mon > 12 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < minYear {
		return 0, 0, false
	}
	return time.Month(mon), y, true
}

func inEducationContext(lower string, start, end int) bool {
	from := max(0, start-contextWindow)
	to := min(len(lower), end+contextWindow)
	window := lower[from:to]
	for _, kw := range educationKeywords {
		if strings.Contains(window, kw) {
			return true
		}
	}
	return false
}
