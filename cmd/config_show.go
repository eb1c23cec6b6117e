package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"workhours/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values. Passwords are masked.`,
	Example: `
  # Show active configuration
  workhours config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults and environment overrides.")
		}
		printConfig(cmd.OutOrStdout(), cfg)
	},
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintf(out, "server.port: %d\n", cfg.Server.Port)
	fmt.Fprintf(out, "server.static_dir: %s\n", cfg.Server.StaticDir)
	fmt.Fprintf(out, "server.session_ttl: %s\n", cfg.Server.SessionTTL)
	fmt.Fprintf(out, "database.driver: %s\n", cfg.Database.Driver)
	fmt.Fprintf(out, "database.path: %s\n", cfg.Database.Path)
	fmt.Fprintf(out, "admin.password: %s\n", maskSecret(cfg.Admin.Password))
	fmt.Fprintf(out, "admin.delete_password: %s\n", maskSecret(cfg.Admin.DeletePassword))
	fmt.Fprintf(out, "entries.case_insensitive_names: %t\n", cfg.Entries.CaseInsensitiveNames)
	fmt.Fprintf(out, "log.level: %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "log.format: %s\n", cfg.Log.Format)
}

func maskSecret(value string) string {
	if value == "" {
		return "(not set)"
	}
	return "********"
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
