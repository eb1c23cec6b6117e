package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"workhours/worklog"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	DriverModernC = "sqlite"
	DriverCGo     = "sqlite3"

	MemoryPath = ":memory:"
)

type Options struct {
	// Driver is DriverModernC (pure Go, default) or DriverCGo.
	Driver string
	// Path is a database file or MemoryPath.
	Path string
	// CaseSensitiveNames disables case folding when matching names.
	CaseSensitiveNames bool
}

type SQLiteStore struct {
	db            *sql.DB
	caseSensitive bool
}

var _ Store = (*SQLiteStore)(nil)

const selectColumns = `id, name, date, start_time, end_time, comment, hours, break_time`

func OpenSQLite(path string) (*SQLiteStore, error) {
	return Open(Options{Path: path})
}

func Open(opts Options) (*SQLiteStore, error) {
	driver := strings.TrimSpace(opts.Driver)
	if driver == "" {
		driver = DriverModernC
	}
	if driver != DriverModernC && driver != DriverCGo {
		return nil, fmt.Errorf("unsupported sqlite driver %q (supported: %s, %s)", opts.Driver, DriverModernC, DriverCGo)
	}
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if isMemoryPath(path) {
		// Every new connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db, caseSensitive: opts.CaseSensitiveNames}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS work_hours (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	name_key TEXT NOT NULL,
	date TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	hours REAL NOT NULL,
	break_time REAL NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_work_hours_name_key_date ON work_hours(name_key, date);
CREATE INDEX IF NOT EXISTS idx_work_hours_name_date ON work_hours(name, date);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// nameColumn and nameArg implement the case policy: name_key holds the
// Unicode-folded name, which SQLite's NOCASE collation (ASCII only) cannot.
func (s *SQLiteStore) nameColumn() string {
	if s.caseSensitive {
		return "name"
	}
	return "name_key"
}

func (s *SQLiteStore) nameArg(name string) string {
	if s.caseSensitive {
		return name
	}
	return nameKey(name)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *SQLiteStore) FindByNameAndDate(ctx context.Context, name, date string) (worklog.Entry, bool, error) {
	query := `SELECT ` + selectColumns + ` FROM work_hours WHERE ` + s.nameColumn() + ` = ? AND date = ? ORDER BY id LIMIT 1;`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, s.nameArg(name), date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.Entry{}, false, nil
		}
		return worklog.Entry{}, false, fmt.Errorf("query entry for %q on %s: %w", name, date, err)
	}
	return entry, true, nil
}

// GetByID returns one entry by ID.
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (worklog.Entry, bool, error) {
	if id <= 0 {
		return worklog.Entry{}, false, fmt.Errorf("entry id must be > 0")
	}

	entry, err := scanEntry(s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM work_hours WHERE id = ?;`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.Entry{}, false, nil
		}
		return worklog.Entry{}, false, fmt.Errorf("query entry %d: %w", id, err)
	}
	return entry, true, nil
}

// Insert stores a new entry and returns its row ID.
func (s *SQLiteStore) Insert(ctx context.Context, entry worklog.Entry) (int64, error) {
	const insertStmt = `
INSERT INTO work_hours (
	name,
	name_key,
	date,
	start_time,
	end_time,
	comment,
	hours,
	break_time
) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	res, err := s.db.ExecContext(
		ctx,
		insertStmt,
		entry.Name,
		nameKey(entry.Name),
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.Comment,
		entry.Hours,
		entry.BreakTime,
	)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	return id, nil
}

// Update replaces all fields of the row with the given ID.
func (s *SQLiteStore) Update(ctx context.Context, entry worklog.Entry) error {
	if entry.ID <= 0 {
		return fmt.Errorf("entry id must be > 0")
	}

	const updateStmt = `
UPDATE work_hours
SET name = ?,
	name_key = ?,
	date = ?,
	start_time = ?,
	end_time = ?,
	comment = ?,
	hours = ?,
	break_time = ?
WHERE id = ?;`

	res, err := s.db.ExecContext(
		ctx,
		updateStmt,
		entry.Name,
		nameKey(entry.Name),
		entry.Date,
		entry.StartTime,
		entry.EndTime,
		entry.Comment,
		entry.Hours,
		entry.BreakTime,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", entry.ID, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated row count: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete removes the row with the given ID.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("entry id must be > 0")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM work_hours WHERE id = ?;`, id)
	if err != nil {
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	return rowsAffected > 0, nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM work_hours;`)
	if err != nil {
		return 0, fmt.Errorf("delete entries: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted row count: %w", err)
	}
	return rows, nil
}

func (s *SQLiteStore) ListAll(ctx context.Context) ([]worklog.Entry, error) {
	return s.queryEntries(ctx, `SELECT `+selectColumns+` FROM work_hours ORDER BY date ASC, name_key ASC, id ASC;`)
}

func (s *SQLiteStore) ListByName(ctx context.Context, name string) ([]worklog.Entry, error) {
	query := `SELECT ` + selectColumns + ` FROM work_hours WHERE ` + s.nameColumn() + ` = ? ORDER BY date ASC, id ASC;`
	return s.queryEntries(ctx, query, s.nameArg(name))
}

func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args ...any) ([]worklog.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]worklog.Entry, 0, 64)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (worklog.Entry, error) {
	var entry worklog.Entry
	err := row.Scan(
		&entry.ID,
		&entry.Name,
		&entry.Date,
		&entry.StartTime,
		&entry.EndTime,
		&entry.Comment,
		&entry.Hours,
		&entry.BreakTime,
	)
	return entry, err
}

func isMemoryPath(path string) bool {
	return path == MemoryPath || strings.HasPrefix(path, "file::memory:")
}
