// cmd/quickcalories/settings.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickcalories/internal/models"
	"quickcalories/internal/ratelimit"
)

var (
	settingsAPIKey       string
	settingsSubscription bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := map[string]interface{}{}
		if cmd.Flags().Changed("api-key") {
			in["user_api_key"] = settingsAPIKey
		}
		if cmd.Flags().Changed("subscription") {
			in["has_active_subscription"] = settingsSubscription
		}

		return withApp(func(a *app) error {
			var snap models.Settings
			if err := a.call(cmd.Context(), "update_settings", in, &snap); err != nil {
				return err
			}
			var status ratelimit.Status
			if err := a.call(cmd.Context(), "rate_limit_status", nil, &status); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Targets: %d kcal, P %.0fg C %.0fg F %.0fg\n",
				snap.Targets.Calories, snap.Targets.Protein, snap.Targets.Carbs, snap.Targets.Fat)
			fmt.Fprintf(out, "Own API key: %t\nSubscription: %t\n", snap.HasUserAPIKey, snap.HasActiveSubscription)
			if status.Unlimited {
				fmt.Fprintln(out, "AI requests today: unlimited")
			} else {
				fmt.Fprintf(out, "AI requests today: %d/%d\n", status.RequestCount, status.Quota)
			}
			return nil
		})
	},
}

func init() {
	settingsCmd.Flags().StringVar(&settingsAPIKey, "api-key", "", "Your own API key (empty to clear)")
	settingsCmd.Flags().BoolVar(&settingsSubscription, "subscription", false, "Mark the subscription active")
	rootCmd.AddCommand(settingsCmd)
}
