package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage workhours configuration file values.",
	Long: `Create, edit, and display the workhours configuration file.

The configuration stores:
- server.port / server.static_dir / server.session_ttl
- database.driver / database.path
- admin.password / admin.delete_password
- entries.case_insensitive_names
- log.level / log.format

Every key can be overridden by an environment variable, e.g.
WORKHOURS_ADMIN_PASSWORD or WORKHOURS_DATABASE_PATH.`,
	Example: `
  # Create default config in $HOME/.workhours.yaml
  workhours config create

  # Show active config and source file
  workhours config show

  # Open active config in editor (creates example if missing)
  workhours config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
