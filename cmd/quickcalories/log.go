// cmd/quickcalories/log.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickcalories/internal/models"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log food and workouts",
}

var (
	logFoodName     string
	logFoodCalories int
	logFoodProtein  float64
	logFoodCarbs    float64
	logFoodFat      float64
	logFoodServings float64
	logFoodSavedID  string
	logFoodAt       string
)

var logFoodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log a food manually or from a saved food",
	RunE: func(cmd *cobra.Command, args []string) error {
		tool := "log_food"
		in := map[string]interface{}{"servings": logFoodServings, "timestamp": logFoodAt}
		if logFoodSavedID != "" {
			tool = "log_saved_food"
			in["saved_food_id"] = logFoodSavedID
		} else {
			in["food_name"] = logFoodName
			in["calories"] = logFoodCalories
			in["protein"] = logFoodProtein
			in["carbs"] = logFoodCarbs
			in["fat"] = logFoodFat
		}

		return withApp(func(a *app) error {
			var entry models.FoodEntry
			if err := a.call(cmd.Context(), tool, in, &entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %d kcal (P %.1fg C %.1fg F %.1fg) id=%s\n",
				entry.FoodName, entry.Calories, entry.Protein, entry.Carbs, entry.Fat, entry.ID)
			return nil
		})
	},
}

var (
	logWorkoutName     string
	logWorkoutCalories int
	logWorkoutAt       string
)

var logWorkoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Log a workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := map[string]interface{}{
			"workout_name":    logWorkoutName,
			"calories_burned": logWorkoutCalories,
			"timestamp":       logWorkoutAt,
		}
		return withApp(func(a *app) error {
			var workout models.WorkoutEntry
			if err := a.call(cmd.Context(), "log_workout", in, &workout); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %d kcal burned id=%s\n", workout.WorkoutName, workout.CaloriesBurned, workout.ID)
			return nil
		})
	},
}

func init() {
	logFoodCmd.Flags().StringVar(&logFoodName, "name", "", "Food name")
	logFoodCmd.Flags().IntVar(&logFoodCalories, "calories", 0, "Calories per serving")
	logFoodCmd.Flags().Float64Var(&logFoodProtein, "protein", 0, "Protein grams per serving")
	logFoodCmd.Flags().Float64Var(&logFoodCarbs, "carbs", 0, "Carb grams per serving")
	logFoodCmd.Flags().Float64Var(&logFoodFat, "fat", 0, "Fat grams per serving")
	logFoodCmd.Flags().Float64Var(&logFoodServings, "servings", 1, "Serving multiplier (0.1-20)")
	logFoodCmd.Flags().StringVar(&logFoodSavedID, "saved", "", "Saved food ID to log")
	logFoodCmd.Flags().StringVar(&logFoodAt, "at", "", "RFC3339 time (defaults to now)")

	logWorkoutCmd.Flags().StringVar(&logWorkoutName, "name", "", "Workout name")
	logWorkoutCmd.Flags().IntVar(&logWorkoutCalories, "calories", 0, "Calories burned")
	logWorkoutCmd.Flags().StringVar(&logWorkoutAt, "at", "", "RFC3339 time (defaults to now)")

	logCmd.AddCommand(logFoodCmd, logWorkoutCmd)
	rootCmd.AddCommand(logCmd)
}
