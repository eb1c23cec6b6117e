package worklog

import (
	"errors"
	"testing"
)

func TestComputeDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start string
		end   string
		want  float64
	}{
		{start: "09:00", end: "17:00", want: 8.0},
		{start: "09:00", end: "17:30", want: 8.5},
		{start: "00:00", end: "23:59", want: 1439.0 / 60},
		{start: "07:45", end: "08:00", want: 0.25},
	}

	for _, tt := range tests {
		got, err := ComputeDuration(tt.start, tt.end)
		if err != nil {
			t.Fatalf("duration %s-%s: %v", tt.start, tt.end, err)
		}
		if got != tt.want {
			t.Fatalf("duration %s-%s: expected %v, got %v", tt.start, tt.end, tt.want, got)
		}
	}
}

func TestComputeDuration_RejectsEmptyAndInvertedRanges(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]string{{"09:00", "09:00"}, {"10:00", "09:00"}} {
		_, err := ComputeDuration(tc[0], tc[1])
		if !errors.Is(err, ErrInvalidTimeRange) {
			t.Fatalf("duration %s-%s: expected ErrInvalidTimeRange, got %v", tc[0], tc[1], err)
		}

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
	}
}

func TestComputeDuration_RejectsMalformedClock(t *testing.T) {
	t.Parallel()

	_, err := ComputeDuration("nine", "17:00")
	if !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("expected ErrInvalidClock, got %v", err)
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "startTime" {
		t.Fatalf("expected startTime validation error, got %v", err)
	}
}

func TestComputeBreakDeduction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hours   float64
		comment string
		want    float64
	}{
		{name: "no break override beats long shift band", hours: 10, comment: "ohne Pause heute", want: 0},
		{name: "keine pause override", hours: 7, comment: "KEINE PAUSE gemacht", want: 0},
		{name: "fifteen minutes override beats six hour band", hours: 8, comment: "15 Minuten Pause", want: 0.25},
		{name: "no break wins over fifteen minutes", hours: 8, comment: "15 minuten geplant, dann keine Pause", want: 0},
		{name: "over nine hours", hours: 10, want: 0.75},
		{name: "exactly nine hours", hours: 9, want: 0.5},
		{name: "over six hours", hours: 7, want: 0.5},
		{name: "exactly six hours", hours: 6, want: 0},
		{name: "short shift", hours: 5, want: 0},
		{name: "unrelated comment", hours: 7, comment: "Inventur", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeBreakDeduction(tt.hours, tt.comment); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestComputeNetHours(t *testing.T) {
	t.Parallel()

	got, err := ComputeNetHours("08:00", "16:30", "")
	if err != nil {
		t.Fatalf("net hours: %v", err)
	}
	want := Hours{Gross: 8.5, Break: 0.5, Net: 8.0}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	again, err := ComputeNetHours("08:00", "16:30", "")
	if err != nil {
		t.Fatalf("net hours second call: %v", err)
	}
	if again != got {
		t.Fatalf("expected identical results, got %+v and %+v", got, again)
	}
}

func TestComputeNetHours_DoesNotClampShortShifts(t *testing.T) {
	t.Parallel()

	got, err := ComputeNetHours("08:00", "08:10", "15 Minuten Pause")
	if err != nil {
		t.Fatalf("net hours: %v", err)
	}
	if got.Net >= 0 {
		t.Fatalf("expected negative net hours, got %v", got.Net)
	}
}

func TestComputeNetHours_PropagatesInvalidRange(t *testing.T) {
	t.Parallel()

	if _, err := ComputeNetHours("17:00", "08:00", ""); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		8.5:    "08:30",
		8.4999: "08:30",
		0:      "00:00",
		8.0:    "08:00",
		0.25:   "00:15",
		8.9999: "09:00",
		12.75:  "12:45",
	}
	for input, want := range tests {
		if got := FormatDuration(input); got != want {
			t.Fatalf("format %v: expected %s, got %s", input, want, got)
		}
	}
}
