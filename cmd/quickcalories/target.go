// cmd/quickcalories/target.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickcalories/internal/server"
)

var (
	targetWeight     float64
	targetHeight     float64
	targetFeet       int
	targetInches     int
	targetAge        int
	targetSex        string
	targetActivity   string
	targetGoal       string
	targetImperial   bool
	targetCalories   int
	targetSplit      string
	targetProteinPct float64
	targetCarbsPct   float64
	targetFatPct     float64
	targetSave       bool
)

var targetCmd = &cobra.Command{
	Use:   "target",
	Short: "Calculate daily calorie and macro targets",
	Long:  "Calculate targets from weight, height, age, sex, activity and goal, or pass --calories to set them manually.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := map[string]interface{}{
			"split":       targetSplit,
			"protein_pct": targetProteinPct,
			"carbs_pct":   targetCarbsPct,
			"fat_pct":     targetFatPct,
			"save":        targetSave,
		}
		if cmd.Flags().Changed("calories") {
			in["mode"] = "manual"
			in["calories"] = targetCalories
		} else {
			in["mode"] = "calculated"
			in["use_metric"] = !targetImperial
			in["age"] = targetAge
			in["sex"] = targetSex
			in["activity_level"] = targetActivity
			in["goal"] = targetGoal
			if targetImperial {
				in["weight_lbs"] = targetWeight
				in["height_feet"] = targetFeet
				in["height_inches"] = targetInches
			} else {
				in["weight_kg"] = targetWeight
				in["height_cm"] = targetHeight
			}
		}

		return withApp(func(a *app) error {
			var res server.TargetsResult
			if err := a.call(cmd.Context(), "compute_targets", in, &res); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Mode == "calculated" {
				fmt.Fprintf(out, "BMR: %.0f kcal\nTDEE: %.0f kcal\n", res.BMR, res.TDEE)
			}
			fmt.Fprintf(out, "Daily target: %d kcal (%s)\nProtein: %.0fg\nCarbs: %.0fg\nFat: %.0fg\n",
				res.DailyCalories, res.Split, res.Grams.Protein, res.Grams.Carbs, res.Grams.Fat)
			if res.Saved {
				fmt.Fprintln(out, "Saved as your daily targets")
			}
			return nil
		})
	},
}

func init() {
	targetCmd.Flags().Float64Var(&targetWeight, "weight", 0, "Weight in kg (lbs with --imperial)")
	targetCmd.Flags().Float64Var(&targetHeight, "height", 0, "Height in cm")
	targetCmd.Flags().IntVar(&targetFeet, "feet", 0, "Height feet (with --imperial)")
	targetCmd.Flags().IntVar(&targetInches, "inches", 0, "Height inches (with --imperial)")
	targetCmd.Flags().IntVar(&targetAge, "age", 0, "Age in years")
	targetCmd.Flags().StringVar(&targetSex, "sex", "", "male, female or unspecified")
	targetCmd.Flags().StringVar(&targetActivity, "activity", "sedentary", "sedentary, lightly_active, moderate, very_active, extremely_active")
	targetCmd.Flags().StringVar(&targetGoal, "goal", "maintain", "lose, maintain or gain")
	targetCmd.Flags().BoolVar(&targetImperial, "imperial", false, "Use lbs and feet/inches")
	targetCmd.Flags().IntVar(&targetCalories, "calories", 0, "Set daily calories manually")
	targetCmd.Flags().StringVar(&targetSplit, "split", "balanced", "balanced, high_protein, low_carb or custom")
	targetCmd.Flags().Float64Var(&targetProteinPct, "protein-pct", 0, "Custom protein percentage")
	targetCmd.Flags().Float64Var(&targetCarbsPct, "carbs-pct", 0, "Custom carbs percentage")
	targetCmd.Flags().Float64Var(&targetFatPct, "fat-pct", 0, "Custom fat percentage")
	targetCmd.Flags().BoolVar(&targetSave, "save", false, "Save the result as your daily targets")
	rootCmd.AddCommand(targetCmd)
}
