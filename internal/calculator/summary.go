// internal/calculator/summary.go
package calculator

import (
	"time"

	"quickcalories/internal/models"
)

// goalBand is the +/- fraction of the target that still counts as on goal.
const goalBand = 0.1

type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type DaySummary struct {
	Date      string `json:"date"`
	Totals    Totals `json:"totals"`
	Burned    int    `json:"burned"`
	Net       int    `json:"net"`
	Target    int    `json:"target"`
	Remaining int    `json:"remaining"`
	MetGoal   bool   `json:"met_goal"`
}

func Sum(entries []models.FoodEntry) Totals {
	var t Totals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
	}
	return t
}

func Burned(workouts []models.WorkoutEntry) int {
	total := 0
	for _, w := range workouts {
		total += w.CaloriesBurned
	}
	return total
}

// MetGoal reports whether net calories landed within 10% of target.
func MetGoal(net, target int) bool {
	lower := int(float64(target) * (1 - goalBand))
	upper := int(float64(target) * (1 + goalBand))
	return net >= lower && net <= upper
}

// Summarize builds the summary for one day. Callers pass only that day's records.
func Summarize(day time.Time, entries []models.FoodEntry, workouts []models.WorkoutEntry, target int) DaySummary {
	totals := Sum(entries)
	burned := Burned(workouts)
	net := totals.Calories - burned
	remaining := target - net
	if remaining < 0 {
		remaining = 0
	}
	return DaySummary{
		Date:      day.Format("2006-01-02"),
		Totals:    totals,
		Burned:    burned,
		Net:       net,
		Target:    target,
		Remaining: remaining,
		MetGoal:   MetGoal(net, target),
	}
}

// DayBounds returns [start of day, start of next day) in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// LastDays returns the start of each of the last n days ending with t's day, newest first.
func LastDays(t time.Time, n int) []time.Time {
	start, _ := DayBounds(t)
	days := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, start.AddDate(0, 0, -i))
	}
	return days
}
