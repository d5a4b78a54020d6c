// cmd/quickcalories/root.go
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quickcalories/internal/nutrition"
)

var (
	dbPath     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "quickcalories",
	Short:         "quickcalories tracks calories and macros with AI estimates",
	Long:          "quickcalories logs food and workouts, estimates nutrition through the request gateway, and tracks progress against daily targets.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

// describeError turns the nutrition error kinds into user-facing text.
func describeError(err error) string {
	var apiErr *nutrition.APIError
	var netErr *nutrition.NetworkError
	switch {
	case errors.Is(err, nutrition.ErrRateLimitExceeded):
		return "Daily AI limit reached. Add your own API key (quickcalories settings --api-key) or upgrade to keep estimating today."
	case errors.As(err, &apiErr):
		return "AI service error: " + apiErr.Message
	case errors.As(err, &netErr):
		return "Network error: check your connection and try again."
	case errors.Is(err, nutrition.ErrInvalidResponse):
		return "Unable to parse nutritional data. Try describing the food differently."
	}
	return err.Error()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
}
