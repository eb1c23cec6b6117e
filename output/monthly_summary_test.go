package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"workhours/worklog"
)

func TestBuildMonthlySummaries_GroupsByNameAndMonth(t *testing.T) {
	t.Parallel()

	entries := []worklog.Entry{
		{Name: "Anna", Date: "2026-03-02", Hours: 8.0, BreakTime: 0.5},
		{Name: "anna", Date: "2026-03-03", Hours: 4.25},
		{Name: "Anna", Date: "2026-04-01", Hours: 9.25, BreakTime: 0.75},
		{Name: "Ben", Date: "2026-03-02", Hours: 5.5},
	}

	summaries := BuildMonthlySummaries(entries)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}

	first := summaries[0]
	if first.Name != "Anna" || first.Month != "2026-03" {
		t.Fatalf("unexpected first summary: %+v", first)
	}
	assertFloatEqual(t, 12.25, first.NetHours, "net hours")
	assertFloatEqual(t, 0.5, first.BreakHours, "break hours")
	if first.EntryCount != 2 {
		t.Fatalf("expected 2 entries, got %d", first.EntryCount)
	}

	if summaries[1].Month != "2026-04" || summaries[2].Name != "Ben" {
		t.Fatalf("unexpected ordering: %+v", summaries)
	}
}

func TestBuildMonthlySummaries_EmptyInput(t *testing.T) {
	t.Parallel()

	if got := BuildMonthlySummaries(nil); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}

func TestWriteMonthlySummaries_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "summary.csv")
	summaries := []MonthlySummary{{Name: "Anna", Month: "2026-03", NetHours: 12.25, BreakHours: 0.5, EntryCount: 2}}

	if err := WriteMonthlySummaries(path, "csv", summaries); err != nil {
		t.Fatalf("write summaries: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summaries: %v", err)
	}
	text := string(content)
	if !strings.HasPrefix(text, "Name,Monat,Stunden,Gesamtzeit,Pause,Eintraege\n") {
		t.Fatalf("unexpected header: %q", text)
	}
	if !strings.Contains(text, "Anna,2026-03,12.25,12:15,0.50,2") {
		t.Fatalf("unexpected row: %q", text)
	}
}

func TestWriteMonthlySummaries_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if err := WriteMonthlySummaries(filepath.Join(t.TempDir(), "x"), "pdf", nil); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func assertFloatEqual(t *testing.T, expected, actual float64, field string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("unexpected %s: expected %.2f, got %.2f", field, expected, actual)
	}
}
