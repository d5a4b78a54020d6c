// internal/calculator/macros.go
package calculator

import (
	"fmt"
	"math"
)

const (
	ProteinKcalPerGram = 4.0
	CarbsKcalPerGram   = 4.0
	FatKcalPerGram     = 9.0

	// customSplitTolerance is in percentage points.
	customSplitTolerance = 0.5
)

type MacroSplit int

const (
	Balanced MacroSplit = iota
	HighProtein
	LowCarb
	Custom
)

// MacroPercentages are fractions of total calories, e.g. 0.30.
type MacroPercentages struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

func (p MacroPercentages) Sum() float64 {
	return p.Protein + p.Carbs + p.Fat
}

type splitDef struct {
	name        string
	label       string
	description string
	pct         MacroPercentages
}

var splitTable = map[MacroSplit]splitDef{
	Balanced:    {"balanced", "Balanced", "30% protein, 40% carbs, 30% fat", MacroPercentages{0.30, 0.40, 0.30}},
	HighProtein: {"high_protein", "High Protein", "35% protein, 35% carbs, 30% fat", MacroPercentages{0.35, 0.35, 0.30}},
	LowCarb:     {"low_carb", "Low Carb", "30% protein, 20% carbs, 50% fat", MacroPercentages{0.30, 0.20, 0.50}},
	Custom:      {"custom", "Custom", "Set your own percentages", MacroPercentages{}},
}

var MacroSplits = []MacroSplit{Balanced, HighProtein, LowCarb, Custom}

func (s MacroSplit) String() string { return splitTable[s].name }
func (s MacroSplit) Label() string { return splitTable[s].label }
func (s MacroSplit) Description() string { return splitTable[s].description }

// Percentages returns the fixed triple. Custom has none and returns zeros.
func (s MacroSplit) Percentages() MacroPercentages { return splitTable[s].pct }

func ParseMacroSplit(v string) (MacroSplit, error) {
	n := normalize(v)
	if n == "" {
		return Balanced, nil
	}
	for _, s := range MacroSplits {
		if n == splitTable[s].name {
			return s, nil
		}
	}
	return Balanced, fmt.Errorf("unknown macro split %q", v)
}

type MacroGrams struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// GramsFor converts a calorie budget into grams using pct.
func GramsFor(totalCalories int, pct MacroPercentages) MacroGrams {
	kcal := float64(totalCalories)
	return MacroGrams{
		Protein: kcal * pct.Protein / ProteinKcalPerGram,
		Carbs:   kcal * pct.Carbs / CarbsKcalPerGram,
		Fat:     kcal * pct.Fat / FatKcalPerGram,
	}
}

// Grams applies split, or custom when split is Custom. custom is not checked here;
// callers run ValidateCustomPercentages first.
func Grams(totalCalories int, split MacroSplit, custom MacroPercentages) MacroGrams {
	if split == Custom {
		return GramsFor(totalCalories, custom)
	}
	return GramsFor(totalCalories, split.Percentages())
}

// PercentagesFromWhole turns 30/40/30 style input into fractions.
func PercentagesFromWhole(protein, carbs, fat float64) MacroPercentages {
	return MacroPercentages{Protein: protein / 100, Carbs: carbs / 100, Fat: fat / 100}
}

// ValidateCustomPercentages requires each share in [0, 1] and a sum of 100% +/- 0.5 points.
func ValidateCustomPercentages(p MacroPercentages) error {
	shares := []struct {
		name string
		v    float64
	}{{"protein", p.Protein}, {"carbs", p.Carbs}, {"fat", p.Fat}}
	for _, s := range shares {
		if s.v < 0 || s.v > 1 {
			return fmt.Errorf("%s percentage must be between 0 and 100", s.name)
		}
	}
	total := p.Sum() * 100
	if math.Abs(total-100) > customSplitTolerance {
		return fmt.Errorf("macro percentages must add up to 100 (got %.1f)", total)
	}
	return nil
}
