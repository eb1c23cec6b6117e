package importer

import (
	"context"
	"fmt"

	"workhours/internal/classify"
	"workhours/worklog"
)

// EntryLister provides the entries an import would be checked against.
type EntryLister interface {
	ListAll(ctx context.Context) ([]worklog.Entry, error)
}

type Preview struct {
	FilesProcessed int
	RowsRead       int
	RowsInvalid    int
	Problems       []string
	classify.Result
}

// PreviewRun reads every file and classifies its rows against the stored
// entries without writing anything. Rows whose times would be rejected by
// the log path are counted as invalid.
func PreviewRun(ctx context.Context, paths []string, format string, lister EntryLister, caseSensitive bool) (*Preview, error) {
	existing, err := lister.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list existing entries: %w", err)
	}

	preview := &Preview{Problems: make([]string, 0)}
	candidates := make([]worklog.Entry, 0)
	for _, path := range paths {
		records, err := readRecords(path, format)
		if err != nil {
			return nil, err
		}

		preview.FilesProcessed++
		preview.RowsRead += len(records)
		for _, record := range records {
			req, mapErr := mapRecord(record)
			if mapErr == nil {
				_, mapErr = worklog.ComputeDuration(req.StartTime, req.EndTime)
			}
			if mapErr != nil {
				preview.RowsInvalid++
				preview.Problems = append(preview.Problems, fmt.Sprintf("%s row %d: %v", path, record.RowNumber, mapErr))
				continue
			}
			candidates = append(candidates, worklog.Entry{
				Name:      req.Name,
				Date:      req.Date,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				Comment:   req.Comment,
			})
		}
	}

	preview.Result = classify.Entries(candidates, existing, caseSensitive)
	return preview, nil
}
