// internal/calculator/calculator.go
package calculator

import "fmt"

// BiometricProfile is the input to a single target calculation.
type BiometricProfile struct {
	WeightKg float64
	HeightCm float64
	Age      int
	Sex      Sex
}

// Validate rejects profiles the formulas would turn into nonsense.
// The formulas themselves never call it.
func (p BiometricProfile) Validate() error {
	if p.WeightKg <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if p.HeightCm <= 0 {
		return fmt.Errorf("height must be > 0")
	}
	if p.Age < 0 {
		return fmt.Errorf("age must be >= 0")
	}
	return nil
}

// BMR uses the Mifflin-St Jeor equation.
func BMR(weightKg, heightCm float64, age int, sex Sex) float64 {
	return 10*weightKg + 6.25*heightCm - 5*float64(age) + sexTable[sex].offset
}

func TDEE(bmr float64, level ActivityLevel) float64 {
	return bmr * level.Multiplier()
}

func AdjustForGoal(tdee float64, goal Goal) float64 {
	return tdee + goal.CalorieAdjustment()
}

// TruncateCalories drops the fractional part toward zero.
func TruncateCalories(kcal float64) int {
	return int(kcal)
}

// DailyTarget composes BMR, TDEE and the goal adjustment.
func DailyTarget(p BiometricProfile, level ActivityLevel, goal Goal) int {
	bmr := BMR(p.WeightKg, p.HeightCm, p.Age, p.Sex)
	return TruncateCalories(AdjustForGoal(TDEE(bmr, level), goal))
}
