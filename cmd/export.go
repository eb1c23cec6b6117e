package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"workhours/config"
	"workhours/output"
	"workhours/storage"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportMode   string
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logged working hours to CSV/Excel",
	Long: `Export logged working hours from SQLite.

Modes:
- raw: one row per entry (Name, Datum, Anfang, Ende, Gesamtzeit, Bemerkung)
- summary: net hours, break hours and entry count per employee and month

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export raw rows to CSV
  workhours export --mode raw --output ./arbeitszeiten.csv

  # Export raw rows to Excel
  workhours export --mode raw --output ./arbeitszeiten.xlsx

  # Export monthly summary to CSV
  workhours export --mode summary --output ./summary.csv

  # Force Excel format independent of extension
  workhours export --mode summary --format excel --output ./summary.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		store, err := openConfiguredStore(cfg, exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		message, err := runExport(cmd.Context(), store, exportMode, format, exportOutput)
		if err != nil {
			return err
		}
		fmt.Println(message)
		return nil
	},
}

func runExport(ctx context.Context, store storage.Store, mode, format, path string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := store.ListAll(ctx)
	if err != nil {
		return "", err
	}

	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "", "raw":
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return "", err
		}
		if err := output.WriteFile(path, writer, entries); err != nil {
			return "", err
		}
		return fmt.Sprintf("Export completed. Rows: %d, Mode: raw, Format: %s, File: %s", len(entries), format, path), nil
	case "summary":
		summaries := output.BuildMonthlySummaries(entries)
		if err := output.WriteMonthlySummaries(path, format, summaries); err != nil {
			return "", err
		}
		return fmt.Sprintf("Export completed. Months: %d, Mode: summary, Format: %s, File: %s", len(summaries), format, path), nil
	default:
		return "", fmt.Errorf("unsupported export mode: %s (supported: raw, summary)", mode)
	}
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "xlsx", "xlsm":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "raw", "Export mode: raw|summary")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to SQLite database (overrides database.path)")

	_ = exportCmd.MarkFlagRequired("output")
}
