// cmd/quickcalories/estimate.go
package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"quickcalories/internal/models"
)

var (
	estimateImage    string
	estimateServings float64
	estimateLog      bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [description]",
	Short: "Estimate nutrition for a food description or photo",
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.TrimSpace(strings.Join(args, " "))
		in := map[string]interface{}{"servings": estimateServings}
		tool := "estimate_nutrition"

		if estimateImage != "" {
			raw, err := os.ReadFile(estimateImage)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			in["image_base64"] = base64.StdEncoding.EncodeToString(raw)
			in["prompt"] = description
			tool = "estimate_nutrition_image"
		} else {
			if description == "" {
				return fmt.Errorf("describe the food or pass --image")
			}
			in["description"] = description
		}
		if estimateLog {
			tool = "log_food"
		}

		return withApp(func(a *app) error {
			out := cmd.OutOrStdout()
			if estimateLog {
				var entry models.FoodEntry
				if err := a.call(cmd.Context(), tool, in, &entry); err != nil {
					return err
				}
				fmt.Fprintf(out, "Logged %s: %d kcal (P %.1fg C %.1fg F %.1fg) x%.1f\n",
					entry.FoodName, entry.Calories, entry.Protein, entry.Carbs, entry.Fat, entry.Servings)
				return nil
			}

			var res struct {
				Scaled    models.NutritionEstimate `json:"scaled"`
				Servings  float64                  `json:"servings"`
				TokenCost int                      `json:"token_cost"`
			}
			if err := a.call(cmd.Context(), tool, in, &res); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d kcal\nProtein: %.1fg\nCarbs: %.1fg\nFat: %.1fg\nServings: %.1f\n",
				res.Scaled.FoodName, res.Scaled.Calories, res.Scaled.Protein, res.Scaled.Carbs, res.Scaled.Fat, res.Servings)
			if res.TokenCost > 0 {
				fmt.Fprintf(out, "Image tokens: ~%d\n", res.TokenCost)
			}
			return nil
		})
	},
}

func init() {
	estimateCmd.Flags().StringVar(&estimateImage, "image", "", "Path to a food photo")
	estimateCmd.Flags().Float64Var(&estimateServings, "servings", 1, "Serving multiplier (0.1-20)")
	estimateCmd.Flags().BoolVar(&estimateLog, "log", false, "Log the estimate as a food entry")
	rootCmd.AddCommand(estimateCmd)
}
