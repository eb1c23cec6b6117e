package output

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"workhours/internal/timeutil"
	"workhours/worklog"
)

// MonthlySummary aggregates one employee's entries for one month.
type MonthlySummary struct {
	Name       string
	Month      string
	NetHours   float64
	BreakHours float64
	EntryCount int
}

type summaryKey struct {
	name  string
	month string
}

// BuildMonthlySummaries groups entries by case-folded name and YYYY-MM. The
// first spelling of a name wins for display. Entries with an unparsable
// date are grouped under their raw date string.
func BuildMonthlySummaries(entries []worklog.Entry) []MonthlySummary {
	if len(entries) == 0 {
		return []MonthlySummary{}
	}

	byKey := make(map[summaryKey]*MonthlySummary)
	for _, entry := range entries {
		month, err := timeutil.MonthOf(entry.Date)
		if err != nil {
			month = entry.Date
		}
		key := summaryKey{name: strings.ToLower(strings.TrimSpace(entry.Name)), month: month}

		summary, ok := byKey[key]
		if !ok {
			summary = &MonthlySummary{Name: strings.TrimSpace(entry.Name), Month: month}
			byKey[key] = summary
		}
		summary.NetHours += entry.Hours
		summary.BreakHours += entry.BreakTime
		summary.EntryCount++
	}

	keys := make([]summaryKey, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name == keys[j].name {
			return keys[i].month < keys[j].month
		}
		return keys[i].name < keys[j].name
	})

	summaries := make([]MonthlySummary, 0, len(keys))
	for _, key := range keys {
		summary := *byKey[key]
		summary.NetHours = roundHours(summary.NetHours)
		summary.BreakHours = roundHours(summary.BreakHours)
		summaries = append(summaries, summary)
	}
	return summaries
}

func roundHours(value float64) float64 {
	return math.Round(value*100) / 100
}

var summaryHeaders = []string{"Name", "Monat", "Stunden", "Gesamtzeit", "Pause", "Eintraege"}

func summaryRow(summary MonthlySummary) []string {
	return []string{
		summary.Name,
		summary.Month,
		fmt.Sprintf("%.2f", summary.NetHours),
		worklog.FormatDuration(summary.NetHours),
		fmt.Sprintf("%.2f", summary.BreakHours),
		fmt.Sprintf("%d", summary.EntryCount),
	}
}

func WriteMonthlySummaries(path, format string, summaries []MonthlySummary) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeMonthlySummariesCSV(path, summaries)
	case "excel", "xlsx":
		return writeMonthlySummariesExcel(path, summaries)
	default:
		return fmt.Errorf("unsupported output format for monthly summaries: %s", format)
	}
}
