/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"workhours/config"
)

var (
	cfgFile string
	envFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "workhours",
	Short: "Log working hours, compute breaks, and export timesheets.",
	Long: `
**********************************************
*               WORK HOURS                   *
**********************************************

This CLI runs the work-hours web service and manages its SQLite database.
Net hours are computed from start and end time minus a break deduction:
- more than 9 hours: 45 minutes
- more than 6 hours: 30 minutes
- comment "ohne pause" / "keine pause": no break
- comment "15 minuten": 15 minutes
`,
	Example: `
  # Create configuration file
  workhours config create

  # Start the web service
  workhours serve --port 3000

  # Compute net hours for a single shift
  workhours calc --start 08:00 --end 16:30

  # Import entries from a CSV or Excel file
  workhours import -i ./arbeitszeiten.csv

  # Export raw rows
  workhours export --mode raw --output ./arbeitszeiten.xlsx

  # Export monthly totals per employee
  workhours export --mode summary --output ./summary.csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.workhours.yaml, then ./.workhours.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before configuration")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".workhours" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".workhours")
	}

	config.BindEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment. Create one with: workhours config create")
	}
}
