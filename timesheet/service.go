package timesheet

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"workhours/internal/timeutil"
	"workhours/output"
	"workhours/storage"
	"workhours/worklog"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrDuplicateEntry      = errors.New("entry for this name and date already exists")
	ErrEntryNotFound       = errors.New("entry not found")
	ErrDeleteNotAuthorized = errors.New("delete not authorized: wrong password or missing confirmation")
)

// LogRequest carries the client-supplied fields of a new entry.
type LogRequest struct {
	Name      string `json:"name" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
	Comment   string `json:"comment"`
}

// UpdateRequest carries an admin edit. Hours and break are recomputed from
// the edited fields.
type UpdateRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	LogRequest
}

type Service struct {
	store          storage.Store
	logger         *zap.Logger
	validate       *validator.Validate
	deletePassword string

	// writeMu serializes check-then-write sequences so two concurrent
	// requests cannot both pass the duplicate check.
	writeMu sync.Mutex
}

type Options struct {
	// DeletePassword gates DeleteAll. Empty disables bulk deletion.
	DeletePassword string
}

func NewService(store storage.Store, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:          store,
		logger:         logger,
		validate:       newValidator(),
		deletePassword: opts.DeletePassword,
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// LogHours computes net hours for a new entry and stores it unless an entry
// for the same name and date already exists.
func (s *Service) LogHours(ctx context.Context, req LogRequest) (worklog.Entry, error) {
	req = req.normalized()
	entry, err := s.buildEntry(req)
	if err != nil {
		return worklog.Entry{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_, exists, err := s.store.FindByNameAndDate(ctx, entry.Name, entry.Date)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("check existing entry: %w", err)
	}
	if exists {
		return worklog.Entry{}, ErrDuplicateEntry
	}

	id, err := s.store.Insert(ctx, entry)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("store entry: %w", err)
	}
	entry.ID = id

	s.logger.Info("logged work hours",
		zap.Int64("id", entry.ID),
		zap.String("name", entry.Name),
		zap.String("date", entry.Date),
		zap.Float64("hours", entry.Hours),
		zap.Float64("break_time", entry.BreakTime),
	)
	return entry, nil
}

// GetHours returns the entry for name and date.
func (s *Service) GetHours(ctx context.Context, name, date string) (worklog.Entry, error) {
	name = strings.TrimSpace(name)
	date = strings.TrimSpace(date)
	if name == "" {
		return worklog.Entry{}, &worklog.ValidationError{Field: "name", Err: errors.New("is required")}
	}
	if date == "" {
		return worklog.Entry{}, &worklog.ValidationError{Field: "date", Err: errors.New("is required")}
	}

	entry, found, err := s.store.FindByNameAndDate(ctx, name, date)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("find entry: %w", err)
	}
	if !found {
		return worklog.Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

// ListByName returns all entries of one employee ordered by date.
func (s *Service) ListByName(ctx context.Context, name string) ([]worklog.Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &worklog.ValidationError{Field: "name", Err: errors.New("is required")}
	}

	entries, err := s.store.ListByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("list entries for %q: %w", name, err)
	}
	return entries, nil
}

func (s *Service) ListAll(ctx context.Context) ([]worklog.Entry, error) {
	entries, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry replaces an entry's fields and recomputes its hours. Moving
// an entry onto a (name, date) pair that another entry already holds is
// rejected as a duplicate.
func (s *Service) UpdateEntry(ctx context.Context, req UpdateRequest) (worklog.Entry, error) {
	req.LogRequest = req.LogRequest.normalized()
	if err := s.validateStruct(req); err != nil {
		return worklog.Entry{}, err
	}
	entry, err := s.buildEntry(req.LogRequest)
	if err != nil {
		return worklog.Entry{}, err
	}
	entry.ID = req.ID

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	other, exists, err := s.store.FindByNameAndDate(ctx, entry.Name, entry.Date)
	if err != nil {
		return worklog.Entry{}, fmt.Errorf("check existing entry: %w", err)
	}
	if exists && other.ID != entry.ID {
		return worklog.Entry{}, ErrDuplicateEntry
	}

	if err := s.store.Update(ctx, entry); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return worklog.Entry{}, ErrEntryNotFound
		}
		return worklog.Entry{}, fmt.Errorf("update entry: %w", err)
	}

	s.logger.Info("updated work hours",
		zap.Int64("id", entry.ID),
		zap.String("name", entry.Name),
		zap.String("date", entry.Date),
		zap.Float64("hours", entry.Hours),
	)
	return entry, nil
}

func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	if id <= 0 {
		return &worklog.ValidationError{Field: "id", Err: errors.New("must be > 0")}
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if !deleted {
		return ErrEntryNotFound
	}

	s.logger.Info("deleted work hours", zap.Int64("id", id))
	return nil
}

// DeleteAll removes every entry. It requires the configured delete password
// and an explicit confirmation.
func (s *Service) DeleteAll(ctx context.Context, password string, confirm bool) (int64, error) {
	if !confirm || s.deletePassword == "" ||
		subtle.ConstantTimeCompare([]byte(password), []byte(s.deletePassword)) != 1 {
		s.logger.Warn("rejected bulk delete", zap.Bool("confirm", confirm))
		return 0, ErrDeleteNotAuthorized
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete all entries: %w", err)
	}

	s.logger.Warn("deleted all work hours", zap.Int64("rows", deleted))
	return deleted, nil
}

// ExportCSV renders all entries as CSV text.
func (s *Service) ExportCSV(ctx context.Context) (string, error) {
	entries, err := s.ListAll(ctx)
	if err != nil {
		return "", err
	}
	return output.ToCSV(entries), nil
}

func (s *Service) buildEntry(req LogRequest) (worklog.Entry, error) {
	if err := s.validateStruct(req); err != nil {
		return worklog.Entry{}, err
	}

	hours, err := worklog.ComputeNetHours(req.StartTime, req.EndTime, req.Comment)
	if err != nil {
		return worklog.Entry{}, err
	}

	return worklog.Entry{
		Name:      req.Name,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Comment:   req.Comment,
		Hours:     hours.Net,
		BreakTime: hours.Break,
	}, nil
}

func (s *Service) validateStruct(value any) error {
	err := s.validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fieldErr := fieldErrs[0]
		return &worklog.ValidationError{
			Field: fieldErr.Field(),
			Err:   fmt.Errorf("failed %q check", fieldErr.Tag()),
		}
	}
	return fmt.Errorf("validate request: %w", err)
}

func (r LogRequest) normalized() LogRequest {
	return LogRequest{
		Name:      strings.TrimSpace(r.Name),
		Date:      strings.TrimSpace(r.Date),
		StartTime: canonicalClock(r.StartTime),
		EndTime:   canonicalClock(r.EndTime),
		Comment:   strings.TrimSpace(r.Comment),
	}
}

// canonicalClock zero-pads clock values such as "8:00" and leaves anything
// unparsable for validation to reject.
func canonicalClock(value string) string {
	trimmed := strings.TrimSpace(value)
	if clock, err := timeutil.NormalizeClock(trimmed); err == nil {
		return clock
	}
	return trimmed
}
