// cmd/quickcalories/summary.go
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"quickcalories/internal/calculator"
)

var (
	summaryDate string
	summaryWeek bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a day's totals or the last 7 days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			out := cmd.OutOrStdout()
			if summaryWeek {
				var history []calculator.DaySummary
				if err := a.call(cmd.Context(), "weekly_history", nil, &history); err != nil {
					return err
				}
				fmt.Fprintln(out, "DATE\tEATEN\tBURNED\tNET\tTARGET\tGOAL")
				for _, d := range history {
					fmt.Fprintf(out, "%s\t%d\t%d\t%d\t%d\t%s\n", d.Date, d.Totals.Calories, d.Burned, d.Net, d.Target, goalMark(d.MetGoal))
				}
				return nil
			}

			var day calculator.DaySummary
			if err := a.call(cmd.Context(), "daily_summary", map[string]interface{}{"date": summaryDate}, &day); err != nil {
				return err
			}
			printDay(out, day)
			return nil
		})
	},
}

func printDay(out io.Writer, d calculator.DaySummary) {
	fmt.Fprintf(out, "Date: %s\nEaten: %d kcal\nBurned: %d kcal\nNet: %d / %d kcal\nRemaining: %d kcal\n",
		d.Date, d.Totals.Calories, d.Burned, d.Net, d.Target, d.Remaining)
	fmt.Fprintf(out, "Protein: %.1fg\nCarbs: %.1fg\nFat: %.1fg\nGoal: %s\n",
		d.Totals.Protein, d.Totals.Carbs, d.Totals.Fat, goalMark(d.MetGoal))
}

func goalMark(met bool) string {
	if met {
		return "met"
	}
	return "-"
}

func init() {
	summaryCmd.Flags().StringVar(&summaryDate, "date", "", "Day to summarize (YYYY-MM-DD, defaults to today)")
	summaryCmd.Flags().BoolVar(&summaryWeek, "week", false, "Show the last 7 days")
	rootCmd.AddCommand(summaryCmd)
}
