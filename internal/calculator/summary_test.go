package calculator_test

import (
	"math"
	"testing"
	"time"

	"quickcalories/internal/calculator"
	"quickcalories/internal/models"
)

func TestScaleAndUnitEstimate(t *testing.T) {
	t.Parallel()
	apple := models.NutritionEstimate{FoodName: "Apple", Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3}
	scaled := calculator.ScaleEstimate(apple, 1.5)
	if scaled.Calories != 142 {
		t.Fatalf("expected truncated calories 142, got %d", scaled.Calories)
	}
	if math.Abs(scaled.Carbs-37.5) > 1e-9 {
		t.Fatalf("expected carbs 37.5, got %.3f", scaled.Carbs)
	}

	entry := models.FoodEntry{FoodName: "Rice", Calories: 400, Protein: 8, Carbs: 90, Fat: 1, Servings: 2}
	calculator.Rescale(&entry, 3)
	if entry.Calories != 600 || entry.Servings != 3 {
		t.Fatalf("expected 600 kcal at 3 servings, got %+v", entry)
	}
	if math.Abs(entry.Carbs-135) > 1e-9 {
		t.Fatalf("expected carbs 135, got %.3f", entry.Carbs)
	}
}

func TestValidateServings(t *testing.T) {
	t.Parallel()
	for _, v := range []float64{0.1, 1, 20} {
		if err := calculator.ValidateServings(v); err != nil {
			t.Fatalf("servings %v: %v", v, err)
		}
	}
	for _, v := range []float64{0, 0.05, 20.5} {
		if err := calculator.ValidateServings(v); err == nil {
			t.Fatalf("expected error for servings %v", v)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	entries := []models.FoodEntry{
		{Calories: 1200, Protein: 60, Carbs: 120, Fat: 40},
		{Calories: 1000, Protein: 50, Carbs: 100, Fat: 30},
	}
	workouts := []models.WorkoutEntry{{CaloriesBurned: 300}}
	s := calculator.Summarize(day, entries, workouts, 2000)
	if s.Date != "2026-03-04" {
		t.Fatalf("unexpected date %s", s.Date)
	}
	if s.Totals.Calories != 2200 || s.Burned != 300 || s.Net != 1900 {
		t.Fatalf("unexpected totals %+v", s)
	}
	if s.Remaining != 100 {
		t.Fatalf("expected remaining 100, got %d", s.Remaining)
	}
	if !s.MetGoal {
		t.Fatalf("expected 1900 of 2000 to meet goal")
	}

	over := calculator.Summarize(day, entries, nil, 1500)
	if over.Remaining != 0 || over.MetGoal {
		t.Fatalf("expected no remaining and missed goal, got %+v", over)
	}
}

func TestMetGoalBand(t *testing.T) {
	t.Parallel()
	if !calculator.MetGoal(1800, 2000) || !calculator.MetGoal(2200, 2000) {
		t.Fatalf("band edges should count as met")
	}
	if calculator.MetGoal(1799, 2000) || calculator.MetGoal(2201, 2000) {
		t.Fatalf("outside band should not count as met")
	}
}

func TestLastDays(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	days := calculator.LastDays(now, 7)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if !days[0].Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected today first, got %s", days[0])
	}
	if !days[6].Equal(time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected six days back across month boundary, got %s", days[6])
	}
}
