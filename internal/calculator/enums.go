// internal/calculator/enums.go
package calculator

import (
	"fmt"
	"strings"
)

type Sex int

const (
	SexUnspecified Sex = iota
	SexMale
	SexFemale
)

type sexDef struct {
	name   string
	label  string
	offset float64
}

var sexTable = map[Sex]sexDef{
	SexMale:        {name: "male", label: "Male", offset: 5},
	SexFemale:      {name: "female", label: "Female", offset: -161},
	SexUnspecified: {name: "unspecified", label: "Prefer not to say", offset: -78},
}

func (s Sex) String() string { return sexTable[s].name }
func (s Sex) Label() string { return sexTable[s].label }

func ParseSex(v string) (Sex, error) {
	switch normalize(v) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	case "", "unspecified", "prefer_not_to_say", "other":
		return SexUnspecified, nil
	}
	return SexUnspecified, fmt.Errorf("unknown sex %q", v)
}

type ActivityLevel int

const (
	Sedentary ActivityLevel = iota
	LightlyActive
	ModeratelyActive
	VeryActive
	ExtremelyActive
)

type activityDef struct {
	name        string
	label       string
	description string
	multiplier  float64
}

var activityTable = map[ActivityLevel]activityDef{
	Sedentary:        {"sedentary", "Sedentary", "Little or no exercise", 1.2},
	LightlyActive:    {"lightly_active", "Lightly Active", "Exercise 1-3 days/week", 1.375},
	ModeratelyActive: {"moderate", "Moderately Active", "Exercise 3-5 days/week", 1.55},
	VeryActive:       {"very_active", "Very Active", "Exercise 6-7 days/week", 1.725},
	ExtremelyActive:  {"extremely_active", "Extremely Active", "Physical job + training", 1.9},
}

// ActivityLevels lists every level in ascending order.
var ActivityLevels = []ActivityLevel{Sedentary, LightlyActive, ModeratelyActive, VeryActive, ExtremelyActive}

func (a ActivityLevel) String() string { return activityTable[a].name }
func (a ActivityLevel) Label() string { return activityTable[a].label }
func (a ActivityLevel) Description() string { return activityTable[a].description }
func (a ActivityLevel) Multiplier() float64 { return activityTable[a].multiplier }

func ParseActivityLevel(v string) (ActivityLevel, error) {
	n := normalize(v)
	for _, lvl := range ActivityLevels {
		def := activityTable[lvl]
		if n == def.name || n == normalize(def.label) {
			return lvl, nil
		}
	}
	if n == "moderately_active" {
		return ModeratelyActive, nil
	}
	return Sedentary, fmt.Errorf("unknown activity level %q", v)
}

type Goal int

const (
	LoseWeight Goal = iota
	Maintain
	GainMuscle
)

type goalDef struct {
	name        string
	label       string
	description string
	adjustment  float64
}

var goalTable = map[Goal]goalDef{
	LoseWeight: {"lose", "Lose Weight", "Create a calorie deficit", -500},
	Maintain:   {"maintain", "Maintain Weight", "Balance calories in and out", 0},
	GainMuscle: {"gain", "Gain Muscle", "Create a calorie surplus", 300},
}

var Goals = []Goal{LoseWeight, Maintain, GainMuscle}

func (g Goal) String() string { return goalTable[g].name }
func (g Goal) Label() string { return goalTable[g].label }
func (g Goal) Description() string { return goalTable[g].description }
func (g Goal) CalorieAdjustment() float64 { return goalTable[g].adjustment }

func ParseGoal(v string) (Goal, error) {
	switch normalize(v) {
	case "lose", "lose_weight":
		return LoseWeight, nil
	case "maintain", "maintain_weight", "":
		return Maintain, nil
	case "gain", "gain_muscle":
		return GainMuscle, nil
	}
	return Maintain, fmt.Errorf("unknown goal %q", v)
}

func normalize(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.ReplaceAll(v, "-", "_")
	return strings.ReplaceAll(v, " ", "_")
}
