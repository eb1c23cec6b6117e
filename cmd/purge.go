package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"workhours/config"
	"workhours/storage"

	"github.com/spf13/cobra"
)

var (
	purgeDBPath string
)

var (
	purgePromptInput  io.Reader = os.Stdin
	purgePromptOutput io.Writer = os.Stdout
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete all logged working hours",
	Long: `Destructive cleanup command.

This command deletes every entry from the database but keeps the database file.
Before deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete all entries (requires interactive confirmation)
  workhours purge --db ./workhours.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		path := cfg.Database.Path
		if purgeDBPath != "" {
			path = purgeDBPath
		}
		confirmed, err := confirmPurgePrompt(purgePromptInput, purgePromptOutput, path)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("purge aborted: confirmation was not 'Y'")
		}

		store, err := openConfiguredStore(cfg, purgeDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := purgeEntries(cmd.Context(), store)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d entries from: %s\n", deleted, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().StringVar(&purgeDBPath, "db", "", "Path to SQLite database (overrides database.path)")
}

func confirmPurgePrompt(input io.Reader, output io.Writer, path string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("purge confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete all entries in %q? Type Y to confirm: ", path); err != nil {
		return false, fmt.Errorf("write purge confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read purge confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func purgeEntries(ctx context.Context, store storage.Store) (int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	deleted, err := store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge entries: %w", err)
	}
	return deleted, nil
}
