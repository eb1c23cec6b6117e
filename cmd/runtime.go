package cmd

import (
	"strings"

	"workhours/config"
	"workhours/internal/logging"
	"workhours/storage"

	"go.uber.org/zap"
)

// openConfiguredStore opens the database from config. A non-empty dbPath
// flag value replaces the configured path.
func openConfiguredStore(cfg *config.Config, dbPath string) (*storage.SQLiteStore, error) {
	path := cfg.Database.Path
	if strings.TrimSpace(dbPath) != "" {
		path = dbPath
	}
	return storage.Open(storage.Options{
		Driver:             cfg.Database.Driver,
		Path:               path,
		CaseSensitiveNames: !cfg.Entries.CaseInsensitiveNames,
	})
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}
