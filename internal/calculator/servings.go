// internal/calculator/servings.go
package calculator

import (
	"fmt"

	"quickcalories/internal/models"
)

const (
	MinServings = 0.1
	MaxServings = 20.0
)

func ValidateServings(servings float64) error {
	if servings < MinServings || servings > MaxServings {
		return fmt.Errorf("servings must be between %.1f and %.0f", MinServings, MaxServings)
	}
	return nil
}

// ScaleEstimate multiplies a one-serving estimate. Calories are truncated.
func ScaleEstimate(e models.NutritionEstimate, servings float64) models.NutritionEstimate {
	return models.NutritionEstimate{
		FoodName: e.FoodName,
		Calories: int(float64(e.Calories) * servings),
		Protein:  e.Protein * servings,
		Carbs:    e.Carbs * servings,
		Fat:      e.Fat * servings,
	}
}

// UnitEstimate recovers the one-serving values of a logged entry.
func UnitEstimate(entry models.FoodEntry) models.NutritionEstimate {
	servings := entry.Servings
	if servings <= 0 {
		servings = 1
	}
	return models.NutritionEstimate{
		FoodName: entry.FoodName,
		Calories: int(float64(entry.Calories) / servings),
		Protein:  entry.Protein / servings,
		Carbs:    entry.Carbs / servings,
		Fat:      entry.Fat / servings,
	}
}

// Rescale changes the servings of an existing entry in place.
func Rescale(entry *models.FoodEntry, servings float64) {
	scaled := ScaleEstimate(UnitEstimate(*entry), servings)
	entry.Calories = scaled.Calories
	entry.Protein = scaled.Protein
	entry.Carbs = scaled.Carbs
	entry.Fat = scaled.Fat
	entry.Servings = servings
}

func SavedFoodEstimate(f models.SavedFood) models.NutritionEstimate {
	return models.NutritionEstimate{
		FoodName: f.FoodName,
		Calories: f.Calories,
		Protein:  f.Protein,
		Carbs:    f.Carbs,
		Fat:      f.Fat,
	}
}
