package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workhours/config"
	"workhours/timesheet"
	"workhours/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort      int
	serveDBPath    string
	serveStaticDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the work-hours HTTP service",
	Long: `Start the HTTP service for logging and administrating working hours.

Employees log hours via POST /log-hours and read them back via /get-hours
and /get-all-hours. Admin routes require a login with admin.password.
Bulk deletion via DELETE /delete-hours requires admin.delete_password.`,
	Example: `
  # Start on the configured port
  workhours serve

  # Override port, database, and static frontend directory
  workhours serve --port 9090 --db ./workhours.db --static ./public
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		if err := cfg.ValidateServe(); err != nil {
			return err
		}
		applyServeOverrides(cfg, servePort, serveStaticDir)

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		store, err := openConfiguredStore(cfg, serveDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		service := timesheet.NewService(store, logger, timesheet.Options{
			DeletePassword: cfg.Admin.DeletePassword,
		})
		handler := web.NewServer(service, logger, web.Options{
			AdminPassword: cfg.Admin.Password,
			SessionTTL:    cfg.Server.SessionTTL,
			StaticDir:     cfg.Server.StaticDir,
		})

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		logger.Info("listening",
			zap.String("addr", server.Addr),
			zap.String("driver", cfg.Database.Driver),
			zap.Bool("case_insensitive_names", cfg.Entries.CaseInsensitiveNames),
		)
		if cfg.Admin.DeletePassword == "" {
			logger.Warn("admin.delete_password is empty, bulk delete is disabled")
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides server.port)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Path to SQLite database (overrides database.path)")
	serveCmd.Flags().StringVar(&serveStaticDir, "static", "", "Directory with static frontend files (overrides server.static_dir)")
}

func applyServeOverrides(cfg *config.Config, port int, staticDir string) {
	if port > 0 {
		cfg.Server.Port = port
	}
	if staticDir != "" {
		cfg.Server.StaticDir = staticDir
	}
}
