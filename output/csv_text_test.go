package output

import (
	"testing"

	"workhours/worklog"
)

func TestToCSV_EmptyInputYieldsEmptyString(t *testing.T) {
	t.Parallel()

	if got := ToCSV(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := ToCSV([]worklog.Entry{}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestToCSV_RendersHeaderAndRowsInCallerOrder(t *testing.T) {
	t.Parallel()

	entries := []worklog.Entry{
		{Name: "Ben", Date: "2026-03-03", StartTime: "09:00", EndTime: "17:30", Hours: 8.0, BreakTime: 0.5},
		{Name: "Anna", Date: "2026-03-02", StartTime: "08:00", EndTime: "12:15", Hours: 4.25, Comment: "Inventur"},
	}

	want := "Name,Datum,Anfang,Ende,Gesamtzeit,Bemerkung\n" +
		"Ben,2026-03-03,09:00,17:30,08:00,\n" +
		"Anna,2026-03-02,08:00,12:15,04:15,Inventur"

	if got := ToCSV(entries); got != want {
		t.Fatalf("unexpected csv:\nwant %q\ngot  %q", want, got)
	}
}

func TestToCSV_QuotesFieldsWithSeparators(t *testing.T) {
	t.Parallel()

	entries := []worklog.Entry{
		{Name: "Müller, Anna", Date: "2026-03-02", StartTime: "08:00", EndTime: "16:00", Hours: 7.5, Comment: "Lager\nund \"Kasse\""},
	}

	want := "Name,Datum,Anfang,Ende,Gesamtzeit,Bemerkung\n" +
		"\"Müller, Anna\",2026-03-02,08:00,16:00,07:30,\"Lager\nund \"\"Kasse\"\"\""

	if got := ToCSV(entries); got != want {
		t.Fatalf("unexpected csv:\nwant %q\ngot  %q", want, got)
	}
}
