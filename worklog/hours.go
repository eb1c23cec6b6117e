package worklog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"workhours/internal/timeutil"
)

var (
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrInvalidClock     = errors.New("invalid clock time (expected HH:MM)")
)

// ValidationError reports input that the caller must correct. It is the
// only error kind produced by the calculator.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Hours is the result of a net hours computation, in decimal hours.
type Hours struct {
	Gross float64
	Break float64
	Net   float64
}

type breakOverride struct {
	phrase string
	hours  float64
}

type breakBand struct {
	over  float64
	hours float64
}

// Comment phrases win over the duration bands and are checked in order.
var breakOverrides = []breakOverride{
	{phrase: "ohne pause", hours: 0},
	{phrase: "keine pause", hours: 0},
	{phrase: "15 minuten", hours: 0.25},
}

// Bands are checked from the longest shift down.
var breakBands = []breakBand{
	{over: 9, hours: 0.75},
	{over: 6, hours: 0.5},
}

// ComputeDuration returns end minus start in decimal hours. Both values are
// clock times on the same day; start must be strictly before end.
func ComputeDuration(startTime, endTime string) (float64, error) {
	start, err := timeutil.ParseClockMinutes(startTime)
	if err != nil {
		return 0, &ValidationError{Field: "startTime", Err: fmt.Errorf("%w: %q", ErrInvalidClock, startTime)}
	}
	end, err := timeutil.ParseClockMinutes(endTime)
	if err != nil {
		return 0, &ValidationError{Field: "endTime", Err: fmt.Errorf("%w: %q", ErrInvalidClock, endTime)}
	}
	if start >= end {
		return 0, &ValidationError{Field: "endTime", Err: ErrInvalidTimeRange}
	}
	return float64(end-start) / 60, nil
}

// ComputeBreakDeduction picks the break to subtract from a shift of the
// given gross length. Free-text overrides in the comment take precedence
// over the duration bands.
//
// The bands approximate a tiered statutory rest-break policy (longer shifts
// mandate longer breaks). This is a heuristic and does not model the exact
// legal thresholds.
func ComputeBreakDeduction(hours float64, comment string) float64 {
	if comment != "" {
		lowered := strings.ToLower(comment)
		for _, override := range breakOverrides {
			if strings.Contains(lowered, override.phrase) {
				return override.hours
			}
		}
	}
	for _, band := range breakBands {
		if hours > band.over {
			return band.hours
		}
	}
	return 0
}

// ComputeNetHours combines ComputeDuration and ComputeBreakDeduction. The
// net value is not clamped at zero.
func ComputeNetHours(startTime, endTime, comment string) (Hours, error) {
	gross, err := ComputeDuration(startTime, endTime)
	if err != nil {
		return Hours{}, err
	}
	breakHours := ComputeBreakDeduction(gross, comment)
	return Hours{
		Gross: gross,
		Break: breakHours,
		Net:   gross - breakHours,
	}, nil
}

// FormatDuration renders decimal hours as HH:MM for display and export.
// Minutes are rounded to the nearest minute; 60 carries into the hour.
func FormatDuration(hours float64) string {
	whole := math.Floor(hours)
	minutes := int(math.Round((hours - whole) * 60))
	h := int(whole)
	if minutes == 60 {
		h++
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", h, minutes)
}
