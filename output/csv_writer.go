package output

import (
	"fmt"
	"io"

	"workhours/worklog"
)

type CSVWriter struct{}

func (w *CSVWriter) Encode(out io.Writer, entries []worklog.Entry) error {
	if _, err := io.WriteString(out, ToCSV(entries)); err != nil {
		return fmt.Errorf("write csv output: %w", err)
	}
	return nil
}

func (w *CSVWriter) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (w *CSVWriter) Extension() string {
	return "csv"
}
