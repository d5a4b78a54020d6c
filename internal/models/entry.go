// internal/models/entry.go
package models

import (
	"time"
)

type EntrySource string

const (
	SourceAIText    EntrySource = "ai_text"
	SourceAIImage   EntrySource = "ai_image"
	SourceManual    EntrySource = "manual"
	SourceSavedFood EntrySource = "saved_food"
)

// FoodEntry is a logged food. Nutrition values are already multiplied by Servings.
type FoodEntry struct {
	ID        string      `json:"id"`
	FoodName  string      `json:"food_name"`
	Calories  int         `json:"calories"`
	Protein   float64     `json:"protein"`
	Carbs     float64     `json:"carbs"`
	Fat       float64     `json:"fat"`
	Servings  float64     `json:"servings"`
	Source    EntrySource `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
}

type WorkoutEntry struct {
	ID             string    `json:"id"`
	WorkoutName    string    `json:"workout_name"`
	CaloriesBurned int       `json:"calories_burned"`
	Timestamp      time.Time `json:"timestamp"`
}

// SavedFood is a reusable per-serving template.
type SavedFood struct {
	ID          string    `json:"id"`
	FoodName    string    `json:"food_name"`
	ServingSize float64   `json:"serving_size"`
	Unit        string    `json:"unit"`
	Calories    int       `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	CreatedAt   time.Time `json:"created_at"`
}

// NutritionEstimate is the parsed answer of the estimation service for one serving.
type NutritionEstimate struct {
	FoodName string  `json:"food_name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// EntryQuery filters entries by timestamp. Zero bounds are open.
type EntryQuery struct {
	From  time.Time
	To    time.Time
	Limit int
}
