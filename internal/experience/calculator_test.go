package experience

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is 2025-07-15, so Jan 2020 - present is 5.5 years.
var fixedNow = time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC)

func newTestCalculator(opts ...Option) *Calculator {
	return NewCalculator(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func TestYears_Formats(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"full month names", "Software Engineer, January 2020 - March 2023", 3.2},
		{"short month names", "Engineer Jan 2020 – Mar 2023", 3.2},
		{"short month with dot", "Engineer Sept. 2021 to Sep. 2022", 1.0},
		{"numeric month", "Developer 03/2020 - 06/2023", 3.2},
		{"bare years", "Analyst 2019 - 2022", 3.0},
		{"open ended present", "Lead Engineer Jan 2020 - Present", 5.5},
		{"open ended current bare year", "Consultant 2022 - current", 3.5},
		{"upper case month names", "ENGINEER JUNE 2024 TO JULY 2025", 1.1},
		{"upper case open marker", "Engineer 2023 - PRESENT", 2.5},
		{"no ranges", "I am a developer with many talents.", 0.0},
		{"empty", "", 0.0},
	}

	c := newTestCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.Years(tt.text), 1e-9)
		})
	}
}

func TestYears_RoundsHalfToEven(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"Engineer Jan 2020 - Apr 2020", 0.2},
		{"Engineer Jan 2020 - Oct 2020", 0.8},
		{"Engineer Jan 2020 - Apr 2021", 1.2},
		{"Engineer Jan 2020 - Oct 2021", 1.8},
		{"Engineer Jan 2020 - May 2020", 0.3},
	}

	c := newTestCalculator()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.Years(tt.text), 1e-9)
		})
	}
}

func TestYears_MaxSpanNotSum(t *testing.T) {
	text := "Senior Engineer, Acme — Jan 2020 – Present\nContract Developer, Side Co — Jun 2021 – Dec 2021"
	c := newTestCalculator()

	// Overlapping contract work does not add to the span Jan 2020 .. now
	assert.InDelta(t, 5.5, c.Years(text), 1e-9)
	// two short-month ranges plus the bare-year reading of "2020 – Present"
	assert.Len(t, c.Intervals(text), 3)
}

func TestYears_MaxSpanCoversGapBetweenRoles(t *testing.T) {
	text := "Intern Jun 2019 – Dec 2019\nEngineer Jan 2021 – Jan 2023"
	c := newTestCalculator()

	// earliest start Jun 2019, latest end Jan 2023
	assert.InDelta(t, 3.6, c.Years(text), 1e-9)
}

func TestYears_ExcludesEducationContext(t *testing.T) {
	text := "Bachelor of Science, 2015–2019"
	c := newTestCalculator()

	assert.Equal(t, 0.0, c.Years(text))
	assert.Empty(t, c.Intervals(text))
}

func TestYears_EducationWindowIsLocal(t *testing.T) {
	filler := strings.Repeat("x", 600)
	text := "Engineer Jan 2020 – Jan 2022\n" + filler + "\nBachelor of Arts 2010 - 2014"
	c := newTestCalculator()

	intervals := c.Intervals(text)
	require.Len(t, intervals, 1)
	assert.Equal(t, 2020, intervals[0].Start.Year())
	assert.InDelta(t, 2.0, c.Years(text), 1e-9)
}

func TestYears_DiscardsReversedRanges(t *testing.T) {
	c := newTestCalculator()
	assert.Equal(t, 0.0, c.Years("Engineer 2022 - 2019"))
	assert.Equal(t, 0.0, c.Years("Engineer Mar 2023 – Jan 2020"))
}

func TestYears_InvalidPoints(t *testing.T) {
	c := newTestCalculator()
	assert.Equal(t, 0.0, c.Years("Worked 13/2020 - 06/2021"), "month out of range")
	assert.Equal(t, 0.0, c.Years("Worked 1850 - 1860"), "year before 1900")
	assert.Equal(t, 0.0, c.Years("Worked 2024 - 2031"), "bare year in the future")
}

func TestYears_CapsAtForty(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := newTestCalculator(WithLogger(logger))

	assert.Equal(t, MaxYears, c.Years("Engineer Jan 1950 - Jan 2000"))
	assert.Contains(t, buf.String(), "experience exceeds cap")
}

func TestIntervals_OpenEndResolvesToNow(t *testing.T) {
	c := newTestCalculator()
	intervals := c.Intervals("Engineer 05/2021 - today")
	// numeric family first, then the bare-year reading of "2021 - today"
	require.Len(t, intervals, 2)
	assert.Equal(t, time.Date(2021, time.May, 1, 0, 0, 0, 0, time.UTC), intervals[0].Start)
	assert.Equal(t, fixedNow, intervals[0].End)
}

func TestNewCalculator_NilOptionsKeepDefaults(t *testing.T) {
	c := NewCalculator(WithClock(nil), WithLogger(nil))
	require.NotNil(t, c.now)
	require.NotNil(t, c.logger)
}
