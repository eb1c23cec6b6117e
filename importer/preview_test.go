package importer

import (
	"context"
	"testing"

	"workhours/timesheet"
)

func TestPreviewRun_ClassifiesWithoutWriting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := newTestService(t)
	if _, err := svc.LogHours(ctx, timesheet.LogRequest{Name: "Anna", Date: "2026-03-02", StartTime: "08:00", EndTime: "16:30"}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	path := writeFile(t, "preview.csv", "name,date,startTime,endTime,comment\n"+
		"anna,2026-03-02,08:00,16:30,\n"+
		"Anna,2026-03-02,09:00,17:00,\n"+
		"Ben,2026-03-02,08:00,12:00,\n"+
		"Ben,2026-03-03,12:00,08:00,\n")

	preview, err := PreviewRun(ctx, []string{path}, "", svc, false)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}

	if preview.FilesProcessed != 1 || preview.RowsRead != 4 {
		t.Fatalf("unexpected counts: %+v", preview)
	}
	if preview.Duplicates != 1 || len(preview.Conflicts) != 1 || len(preview.ToAdd) != 1 || preview.RowsInvalid != 1 {
		t.Fatalf("unexpected classification: %+v", preview)
	}
	if preview.ToAdd[0].Name != "Ben" {
		t.Fatalf("expected Ben to be added, got %+v", preview.ToAdd[0])
	}

	entries, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("preview must not write, found %d entries", len(entries))
	}
}
