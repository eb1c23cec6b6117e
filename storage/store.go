package storage

import (
	"context"
	"errors"

	"workhours/worklog"
)

var ErrEntryNotFound = errors.New("entry not found")

// Store is the persistence capability the timesheet service needs. Every
// backend implements the same contract; the hours calculation never
// touches it.
type Store interface {
	// FindByNameAndDate reports whether an entry exists for the pair. Name
	// matching follows the store's case policy.
	FindByNameAndDate(ctx context.Context, name, date string) (worklog.Entry, bool, error)
	GetByID(ctx context.Context, id int64) (worklog.Entry, bool, error)
	Insert(ctx context.Context, entry worklog.Entry) (int64, error)
	Update(ctx context.Context, entry worklog.Entry) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
	ListAll(ctx context.Context) ([]worklog.Entry, error)
	ListByName(ctx context.Context, name string) ([]worklog.Entry, error)
	Close() error
}
