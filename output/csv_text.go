package output

import (
	"bytes"
	"encoding/csv"
	"strings"

	"workhours/worklog"
)

var entryHeaders = []string{"Name", "Datum", "Anfang", "Ende", "Gesamtzeit", "Bemerkung"}

// ToCSV renders entries in the given order as comma separated text with a
// header row. Rows are separated by "\n" without a trailing newline, and an
// empty slice yields "".
//
// Fields are quoted only when they contain a comma, a quote, a line break or
// leading whitespace, so ordinary rows stay plain comma-joined text.
func ToCSV(entries []worklog.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	// Writes into a bytes.Buffer cannot fail.
	_ = writer.Write(entryHeaders)
	for _, entry := range entries {
		_ = writer.Write(entryRow(entry))
	}
	writer.Flush()

	return strings.TrimSuffix(buf.String(), "\n")
}

func entryRow(entry worklog.Entry) []string {
	return []string{
		entry.Name,
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		worklog.FormatDuration(entry.Hours),
		entry.Comment,
	}
}
