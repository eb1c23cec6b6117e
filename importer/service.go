package importer

import (
	"context"
	"errors"
	"fmt"

	"workhours/internal/timeutil"
	"workhours/timesheet"
	"workhours/worklog"
)

// EntryLogger is the write path every imported row goes through.
type EntryLogger interface {
	LogHours(ctx context.Context, req timesheet.LogRequest) (worklog.Entry, error)
}

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsImported   int
	RowsDuplicate  int
	RowsInvalid    int
	Problems       []string
}

// Run imports every file through logger. Invalid and duplicate rows are
// counted and skipped; read and storage failures abort the run.
func Run(ctx context.Context, paths []string, format string, logger EntryLogger) (*Result, error) {
	result := &Result{Problems: make([]string, 0)}
	for _, path := range paths {
		records, err := readRecords(path, format)
		if err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(records)
		for _, record := range records {
			req, mapErr := mapRecord(record)
			if mapErr != nil {
				result.RowsInvalid++
				result.Problems = append(result.Problems, fmt.Sprintf("%s row %d: %v", path, record.RowNumber, mapErr))
				continue
			}

			_, logErr := logger.LogHours(ctx, req)
			var validationErr *worklog.ValidationError
			switch {
			case logErr == nil:
				result.RowsImported++
			case errors.Is(logErr, timesheet.ErrDuplicateEntry):
				result.RowsDuplicate++
			case errors.As(logErr, &validationErr):
				result.RowsInvalid++
				result.Problems = append(result.Problems, fmt.Sprintf("%s row %d: %v", path, record.RowNumber, logErr))
			default:
				return result, fmt.Errorf("%s row %d: %w", path, record.RowNumber, logErr)
			}
		}
	}

	return result, nil
}

func readRecords(path, format string) ([]Record, error) {
	sourceFormat, err := inferFormat(path, format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}

func mapRecord(record Record) (timesheet.LogRequest, error) {
	name := record.Get("name", "mitarbeiter")
	if name == "" {
		return timesheet.LogRequest{}, fmt.Errorf("name is empty")
	}

	date, err := timeutil.NormalizeDate(record.Get("date", "datum"))
	if err != nil {
		return timesheet.LogRequest{}, err
	}
	start, err := timeutil.NormalizeClock(record.Get("starttime", "anfang", "start", "beginn"))
	if err != nil {
		return timesheet.LogRequest{}, fmt.Errorf("start time: %w", err)
	}
	end, err := timeutil.NormalizeClock(record.Get("endtime", "ende", "end"))
	if err != nil {
		return timesheet.LogRequest{}, fmt.Errorf("end time: %w", err)
	}

	return timesheet.LogRequest{
		Name:      name,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Comment:   record.Get("comment", "bemerkung", "kommentar"),
	}, nil
}
