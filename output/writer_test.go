package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"workhours/worklog"

	"github.com/xuri/excelize/v2"
)

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	for format, ext := range map[string]string{"csv": "csv", " CSV ": "csv", "excel": "xlsx", "xlsx": "xlsx"} {
		writer, err := WriterForFormat(format)
		if err != nil {
			t.Fatalf("writer for %q: %v", format, err)
		}
		if writer.Extension() != ext {
			t.Fatalf("writer for %q: expected extension %s, got %s", format, ext, writer.Extension())
		}
	}

	if _, err := WriterForFormat("pdf"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestWriteFile_CSVMatchesToCSV(t *testing.T) {
	t.Parallel()

	entries := []worklog.Entry{
		{Name: "Anna", Date: "2026-03-02", StartTime: "08:00", EndTime: "16:30", Hours: 8.0, BreakTime: 0.5},
	}
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := WriteFile(path, &CSVWriter{}, entries); err != nil {
		t.Fatalf("write csv file: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv file: %v", err)
	}
	if string(content) != ToCSV(entries) {
		t.Fatalf("unexpected file content: %q", string(content))
	}
}

func TestExcelWriter_EncodesHeaderAndRows(t *testing.T) {
	t.Parallel()

	entries := []worklog.Entry{
		{Name: "Anna", Date: "2026-03-02", StartTime: "08:00", EndTime: "16:30", Hours: 8.0, BreakTime: 0.5, Comment: "Kasse"},
	}

	var buf bytes.Buffer
	if err := (&ExcelWriter{}).Encode(&buf, entries); err != nil {
		t.Fatalf("encode excel: %v", err)
	}

	file, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open encoded workbook: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows(file.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][4] != "Gesamtzeit" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "Anna" || rows[1][4] != "08:00" || rows[1][5] != "Kasse" {
		t.Fatalf("unexpected data row: %v", rows[1])
	}
}
