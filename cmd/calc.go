package cmd

import (
	"fmt"
	"io"

	"workhours/worklog"

	"github.com/spf13/cobra"
)

var (
	calcStart   string
	calcEnd     string
	calcComment string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute gross, break, and net hours for one shift",
	Example: `
  # 8.5 hours gross, 30 minutes break
  workhours calc --start 08:00 --end 16:30

  # Comment overrides the break rule
  workhours calc --start 08:00 --end 16:30 --comment "ohne Pause"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printCalculation(cmd.OutOrStdout(), calcStart, calcEnd, calcComment)
	},
}

func printCalculation(out io.Writer, start, end, comment string) error {
	hours, err := worklog.ComputeNetHours(start, end, comment)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Gross: %.2f h\nBreak: %.2f h\nNet:   %.2f h (%s)\n",
		hours.Gross, hours.Break, hours.Net, worklog.FormatDuration(hours.Net))
	return err
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVar(&calcStart, "start", "", "Start time HH:MM")
	calcCmd.Flags().StringVar(&calcEnd, "end", "", "End time HH:MM")
	calcCmd.Flags().StringVar(&calcComment, "comment", "", "Optional comment; may override the break rule")

	_ = calcCmd.MarkFlagRequired("start")
	_ = calcCmd.MarkFlagRequired("end")
}
