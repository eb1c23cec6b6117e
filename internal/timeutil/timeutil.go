package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	MonthLayout = "2006-01"
)

var dateLayouts = []string{DateLayout, "02.01.2006", "2.1.2006", "01-02-06"}

var clockLayouts = []string{ClockLayout, "15:04:05"}

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func MinutesFromMidnight(value time.Time) int {
	return value.Hour()*60 + value.Minute()
}

// ParseClockMinutes parses an HH:MM clock time into minutes after midnight.
func ParseClockMinutes(value string) (int, error) {
	parsed, err := time.Parse(ClockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, err
	}
	return MinutesFromMidnight(parsed), nil
}

func ParseISODate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(parsed), nil
}

// NormalizeDate converts the date spellings found in spreadsheets to YYYY-MM-DD.
func NormalizeDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return parsed.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("unsupported date %q", value)
}

// NormalizeClock converts H:MM, HH:MM and HH:MM:SS to HH:MM. Seconds are dropped.
func NormalizeClock(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format(ClockLayout), nil
		}
	}
	return "", fmt.Errorf("unsupported clock time %q", value)
}

// MonthOf returns the YYYY-MM month of an ISO date.
func MonthOf(date string) (string, error) {
	parsed, err := ParseISODate(date)
	if err != nil {
		return "", err
	}
	return parsed.Format(MonthLayout), nil
}
