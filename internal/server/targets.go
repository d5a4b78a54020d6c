// internal/server/targets.go
package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"quickcalories/internal/calculator"
	"quickcalories/internal/models"
)

// summaryLimit bounds the records read for one day.
const summaryLimit = 1000

const historyDays = 7

type ComputeTargetsParams struct {
	Mode          string  `json:"mode,omitempty" description:"calculated (default) or manual"`
	UseMetric     *bool   `json:"use_metric,omitempty" description:"Metric inputs (defaults to true)"`
	WeightKg      float64 `json:"weight_kg,omitempty" description:"Weight in kilograms"`
	HeightCm      float64 `json:"height_cm,omitempty" description:"Height in centimeters"`
	WeightLbs     float64 `json:"weight_lbs,omitempty" description:"Weight in pounds"`
	HeightFeet    int     `json:"height_feet,omitempty" description:"Height feet component"`
	HeightInches  int     `json:"height_inches,omitempty" description:"Height inches component"`
	Age           int     `json:"age,omitempty" description:"Age in years"`
	Sex           string  `json:"sex,omitempty" description:"male, female or unspecified"`
	ActivityLevel string  `json:"activity_level,omitempty" description:"sedentary, lightly_active, moderate, very_active, extremely_active"`
	Goal          string  `json:"goal,omitempty" description:"lose, maintain or gain"`
	Calories      int     `json:"calories,omitempty" description:"Daily calories for manual mode"`
	Split         string  `json:"split,omitempty" description:"balanced, high_protein, low_carb or custom"`
	ProteinPct    float64 `json:"protein_pct,omitempty" description:"Custom protein percentage (0-100)"`
	CarbsPct      float64 `json:"carbs_pct,omitempty" description:"Custom carbs percentage (0-100)"`
	FatPct        float64 `json:"fat_pct,omitempty" description:"Custom fat percentage (0-100)"`
	Save          bool    `json:"save,omitempty" description:"Store the result as the daily targets"`
}

type TargetsResult struct {
	Mode          string                      `json:"mode"`
	BMR           float64                     `json:"bmr,omitempty"`
	TDEE          float64                     `json:"tdee,omitempty"`
	DailyCalories int                         `json:"daily_calories"`
	Split         string                      `json:"split"`
	Percentages   calculator.MacroPercentages `json:"percentages"`
	Grams         calculator.MacroGrams       `json:"grams"`
	Saved         bool                        `json:"saved"`
}

type DateParams struct {
	Date string `json:"date,omitempty" description:"Day to summarize (YYYY-MM-DD, defaults to today)"`
}

type UpdateSettingsParams struct {
	DailyCalorieTarget     *int     `json:"daily_calorie_target,omitempty"`
	ProteinTarget          *float64 `json:"protein_target,omitempty"`
	CarbsTarget            *float64 `json:"carbs_target,omitempty"`
	FatTarget              *float64 `json:"fat_target,omitempty"`
	UserAPIKey             *string  `json:"user_api_key,omitempty"`
	HasActiveSubscription  *bool    `json:"has_active_subscription,omitempty"`
	HasCompletedOnboarding *bool    `json:"has_completed_onboarding,omitempty"`
}

// biometrics converts metric or imperial input into a validated profile.
func (p ComputeTargetsParams) biometrics() (calculator.BiometricProfile, error) {
	sex, err := calculator.ParseSex(p.Sex)
	if err != nil {
		return calculator.BiometricProfile{}, invalidArgs("%v", err)
	}
	profile := calculator.BiometricProfile{
		WeightKg: p.WeightKg,
		HeightCm: p.HeightCm,
		Age:      p.Age,
		Sex:      sex,
	}
	if p.UseMetric != nil && !*p.UseMetric {
		profile.WeightKg = calculator.LbsToKg(p.WeightLbs)
		profile.HeightCm = calculator.FeetInchesToCm(p.HeightFeet, p.HeightInches)
	}
	if err := profile.Validate(); err != nil {
		return profile, invalidArgs("%v", err)
	}
	return profile, nil
}

func (p ComputeTargetsParams) percentages() (calculator.MacroSplit, calculator.MacroPercentages, error) {
	split, err := calculator.ParseMacroSplit(p.Split)
	if err != nil {
		return split, calculator.MacroPercentages{}, invalidArgs("%v", err)
	}
	if split != calculator.Custom {
		return split, split.Percentages(), nil
	}
	pct := calculator.PercentagesFromWhole(p.ProteinPct, p.CarbsPct, p.FatPct)
	if err := calculator.ValidateCustomPercentages(pct); err != nil {
		return split, pct, invalidArgs("%v", err)
	}
	return split, pct, nil
}

func (s *QuickCaloriesServer) handleComputeTargets(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ComputeTargetsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	split, pct, err := params.percentages()
	if err != nil {
		return nil, err
	}

	result := TargetsResult{Split: split.String(), Percentages: pct}
	var profile *models.Profile

	switch strings.ToLower(strings.TrimSpace(params.Mode)) {
	case "", "calculated":
		bio, err := params.biometrics()
		if err != nil {
			return nil, err
		}
		level, err := calculator.ParseActivityLevel(params.ActivityLevel)
		if err != nil {
			return nil, invalidArgs("%v", err)
		}
		goal, err := calculator.ParseGoal(params.Goal)
		if err != nil {
			return nil, invalidArgs("%v", err)
		}
		result.Mode = "calculated"
		result.BMR = calculator.BMR(bio.WeightKg, bio.HeightCm, bio.Age, bio.Sex)
		result.TDEE = calculator.TDEE(result.BMR, level)
		result.DailyCalories = calculator.DailyTarget(bio, level, goal)
		profile = &models.Profile{
			WeightKg:      bio.WeightKg,
			HeightCm:      bio.HeightCm,
			Age:           bio.Age,
			Sex:           bio.Sex.String(),
			ActivityLevel: level.String(),
			Goal:          goal.String(),
			UseMetric:     params.UseMetric == nil || *params.UseMetric,
		}
	case "manual":
		if params.Calories <= 0 {
			return nil, invalidArgs("calories must be > 0")
		}
		result.Mode = "manual"
		result.DailyCalories = params.Calories
	default:
		return nil, invalidArgs("unknown mode %q", params.Mode)
	}

	result.Grams = calculator.Grams(result.DailyCalories, split, pct)

	if params.Save {
		if err := s.saveTargets(result, profile); err != nil {
			return nil, err
		}
		result.Saved = true
	}
	return s.createJSONResponse(result)
}

func (s *QuickCaloriesServer) saveTargets(result TargetsResult, profile *models.Profile) error {
	targets := models.Targets{
		Calories: result.DailyCalories,
		Protein:  result.Grams.Protein,
		Carbs:    result.Grams.Carbs,
		Fat:      result.Grams.Fat,
	}
	if err := s.settings.SetTargets(targets); err != nil {
		return fmt.Errorf("failed to save targets: %w", err)
	}
	if profile != nil {
		if err := s.settings.SetProfile(*profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}
	if err := s.settings.SetOnboardingComplete(true); err != nil {
		return fmt.Errorf("failed to save onboarding state: %w", err)
	}
	return nil
}

func (s *QuickCaloriesServer) daySummary(day time.Time) (calculator.DaySummary, error) {
	from, to := calculator.DayBounds(day)
	q := models.EntryQuery{From: from, To: to, Limit: summaryLimit}

	entries, err := s.storage.GetEntries(q)
	if err != nil {
		return calculator.DaySummary{}, fmt.Errorf("failed to retrieve entries: %w", err)
	}
	workouts, err := s.storage.GetWorkouts(q)
	if err != nil {
		return calculator.DaySummary{}, fmt.Errorf("failed to retrieve workouts: %w", err)
	}

	foods := make([]models.FoodEntry, 0, len(entries))
	for _, e := range entries {
		foods = append(foods, *e)
	}
	burns := make([]models.WorkoutEntry, 0, len(workouts))
	for _, w := range workouts {
		burns = append(burns, *w)
	}
	return calculator.Summarize(from, foods, burns, s.settings.Targets().Calories), nil
}

func (s *QuickCaloriesServer) handleDailySummary(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params DateParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	day := s.now()
	if params.Date != "" {
		var err error
		if day, err = parseDay(params.Date); err != nil {
			return nil, err
		}
	}

	summary, err := s.daySummary(day)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(summary)
}

func (s *QuickCaloriesServer) handleWeeklyHistory(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	days := calculator.LastDays(s.now(), historyDays)
	history := make([]calculator.DaySummary, 0, len(days))
	for _, day := range days {
		summary, err := s.daySummary(day)
		if err != nil {
			return nil, err
		}
		history = append(history, summary)
	}
	return s.createJSONResponse(history)
}

func (s *QuickCaloriesServer) handleGetSettings(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(s.settings.Snapshot())
}

func (s *QuickCaloriesServer) handleUpdateSettings(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UpdateSettingsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	targets := s.settings.Targets()
	changed := false
	if params.DailyCalorieTarget != nil {
		targets.Calories, changed = *params.DailyCalorieTarget, true
	}
	if params.ProteinTarget != nil {
		targets.Protein, changed = *params.ProteinTarget, true
	}
	if params.CarbsTarget != nil {
		targets.Carbs, changed = *params.CarbsTarget, true
	}
	if params.FatTarget != nil {
		targets.Fat, changed = *params.FatTarget, true
	}
	if changed {
		if targets.Calories <= 0 || targets.Protein < 0 || targets.Carbs < 0 || targets.Fat < 0 {
			return nil, invalidArgs("calorie target must be > 0 and macro targets >= 0")
		}
		if err := s.settings.SetTargets(targets); err != nil {
			return nil, fmt.Errorf("failed to save targets: %w", err)
		}
	}

	if params.UserAPIKey != nil {
		if err := s.settings.SetUserAPIKey(*params.UserAPIKey); err != nil {
			return nil, fmt.Errorf("failed to save api key: %w", err)
		}
	}
	if params.HasActiveSubscription != nil {
		if err := s.settings.SetSubscription(*params.HasActiveSubscription); err != nil {
			return nil, fmt.Errorf("failed to save subscription: %w", err)
		}
	}
	if params.HasCompletedOnboarding != nil {
		if err := s.settings.SetOnboardingComplete(*params.HasCompletedOnboarding); err != nil {
			return nil, fmt.Errorf("failed to save onboarding state: %w", err)
		}
	}
	return s.createJSONResponse(s.settings.Snapshot())
}

func (s *QuickCaloriesServer) handleRateLimitStatus(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return s.createJSONResponse(s.limiter.Status())
}
