package cmd

import (
	"fmt"
	"io"
	"os"

	"workhours/config"
	"workhours/importer"
	"workhours/timesheet"

	"github.com/spf13/cobra"
)

var (
	importInputs []string
	importFormat string
	importDBPath string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import working hours from CSV/Excel files",
	Long: `Read source files and log every row like a request to POST /log-hours.

Columns are matched by header name. Supported headers (case-insensitive):
- name
- date | datum
- starttime | anfang | start
- endtime | ende | end
- comment | bemerkung

Rows that duplicate an existing (name, date) entry are skipped. Invalid rows
are reported and skipped. When --format is omitted, format is inferred from
each input file extension.`,
	Example: `
  # Import one CSV file
  workhours import -i ./arbeitszeiten.csv

  # Preview which rows would be added, skipped, or conflict
  workhours import -i ./arbeitszeiten.csv --dry-run

  # Import several Excel files into a specific database
  workhours import -i ./januar.xlsx -i ./februar.xlsx --db ./workhours.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		store, err := openConfiguredStore(cfg, importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if importDryRun {
			preview, err := importer.PreviewRun(cmd.Context(), importInputs, importFormat, store, !cfg.Entries.CaseInsensitiveNames)
			if err != nil {
				return err
			}
			printImportPreview(cmd.OutOrStdout(), preview)
			return nil
		}

		service := timesheet.NewService(store, logger, timesheet.Options{})
		result, err := importer.Run(cmd.Context(), importInputs, importFormat, service)
		if result != nil {
			for _, problem := range result.Problems {
				fmt.Fprintln(os.Stderr, "Skipped:", problem)
			}
		}
		if err != nil {
			return err
		}

		fmt.Printf("Import completed. Files: %d, Rows read: %d, Rows imported: %d, Duplicates: %d, Invalid: %d\n",
			result.FilesProcessed,
			result.RowsRead,
			result.RowsImported,
			result.RowsDuplicate,
			result.RowsInvalid,
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringArrayVarP(&importInputs, "input", "i", nil, "Input file path (repeatable)")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: csv|excel (optional, inferred from extension when omitted)")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to SQLite database (overrides database.path)")

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Classify rows against stored entries without writing")

	_ = importCmd.MarkFlagRequired("input")
}

func printImportPreview(out io.Writer, preview *importer.Preview) {
	for _, problem := range preview.Problems {
		fmt.Fprintln(out, "Invalid:", problem)
	}
	for _, conflict := range preview.Conflicts {
		fmt.Fprintf(out, "Conflict: %s %s %s-%s (stored %s-%s)\n",
			conflict.Candidate.Name,
			conflict.Candidate.Date,
			conflict.Candidate.StartTime,
			conflict.Candidate.EndTime,
			conflict.Existing.StartTime,
			conflict.Existing.EndTime,
		)
	}
	fmt.Fprintf(out, "Dry run. Files: %d, Rows read: %d, To add: %d, Duplicates: %d, Conflicts: %d, Invalid: %d\n",
		preview.FilesProcessed,
		preview.RowsRead,
		len(preview.ToAdd),
		preview.Duplicates,
		len(preview.Conflicts),
		preview.RowsInvalid,
	)
}
