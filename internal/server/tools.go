// internal/server/tools.go
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/google/uuid"

	"quickcalories/internal/calculator"
	"quickcalories/internal/models"
)

const dateLayout = "2006-01-02"

type EstimateParams struct {
	Description string  `json:"description" description:"Free-text description of the food"`
	Servings    float64 `json:"servings,omitempty" description:"Serving multiplier (0.1-20, defaults to 1)"`
}

type EstimateImageParams struct {
	ImageBase64 string  `json:"image_base64" description:"Base64 image bytes or a data URI"`
	Prompt      string  `json:"prompt,omitempty" description:"Optional extra context about the photo"`
	Servings    float64 `json:"servings,omitempty" description:"Serving multiplier (0.1-20, defaults to 1)"`
}

type LogFoodParams struct {
	FoodName    string  `json:"food_name,omitempty" description:"Name of the food for manual entries"`
	Calories    *int    `json:"calories,omitempty" description:"Calories per serving for manual entries"`
	Protein     float64 `json:"protein,omitempty" description:"Protein grams per serving"`
	Carbs       float64 `json:"carbs,omitempty" description:"Carb grams per serving"`
	Fat         float64 `json:"fat,omitempty" description:"Fat grams per serving"`
	Description string  `json:"description,omitempty" description:"Food description to estimate with AI"`
	ImageBase64 string  `json:"image_base64,omitempty" description:"Food photo to estimate with AI"`
	Prompt      string  `json:"prompt,omitempty" description:"Extra context for the photo"`
	Servings    float64 `json:"servings,omitempty" description:"Serving multiplier (0.1-20, defaults to 1)"`
	Timestamp   string  `json:"timestamp,omitempty" description:"RFC3339 time eaten (defaults to now)"`
}

type LogSavedFoodParams struct {
	SavedFoodID string  `json:"saved_food_id" description:"ID of the saved food"`
	Servings    float64 `json:"servings,omitempty" description:"Serving multiplier (0.1-20, defaults to 1)"`
	Timestamp   string  `json:"timestamp,omitempty" description:"RFC3339 time eaten (defaults to now)"`
}

type RangeParams struct {
	Date      string `json:"date,omitempty" description:"Single day (YYYY-MM-DD)"`
	StartDate string `json:"start_date,omitempty" description:"First day of the range (YYYY-MM-DD)"`
	EndDate   string `json:"end_date,omitempty" description:"Last day of the range, inclusive (YYYY-MM-DD)"`
	Limit     int    `json:"limit,omitempty" description:"Maximum number of records (defaults to 20)"`
}

type UpdateEntryParams struct {
	ID        string   `json:"id" description:"Entry ID"`
	FoodName  *string  `json:"food_name,omitempty" description:"New name"`
	Calories  *int     `json:"calories,omitempty" description:"New calories per serving"`
	Protein   *float64 `json:"protein,omitempty" description:"New protein grams per serving"`
	Carbs     *float64 `json:"carbs,omitempty" description:"New carb grams per serving"`
	Fat       *float64 `json:"fat,omitempty" description:"New fat grams per serving"`
	Servings  *float64 `json:"servings,omitempty" description:"New serving multiplier"`
	Timestamp string   `json:"timestamp,omitempty" description:"New RFC3339 time"`
}

type IDParams struct {
	ID string `json:"id" description:"Record ID"`
}

type LogWorkoutParams struct {
	WorkoutName    string `json:"workout_name" description:"Name of the workout"`
	CaloriesBurned int    `json:"calories_burned" description:"Calories burned"`
	Timestamp      string `json:"timestamp,omitempty" description:"RFC3339 time (defaults to now)"`
}

type UpdateWorkoutParams struct {
	ID             string  `json:"id" description:"Workout ID"`
	WorkoutName    *string `json:"workout_name,omitempty" description:"New name"`
	CaloriesBurned *int    `json:"calories_burned,omitempty" description:"New calories burned"`
	Timestamp      string  `json:"timestamp,omitempty" description:"New RFC3339 time"`
}

type UpdateSavedFoodParams struct {
	ID          string   `json:"id" description:"Saved food ID"`
	FoodName    *string  `json:"food_name,omitempty" description:"New name"`
	ServingSize *float64 `json:"serving_size,omitempty" description:"New serving size amount"`
	Unit        *string  `json:"unit,omitempty" description:"New serving unit"`
	Calories    *int     `json:"calories,omitempty" description:"New calories per serving"`
	Protein     *float64 `json:"protein,omitempty" description:"New protein grams per serving"`
	Carbs       *float64 `json:"carbs,omitempty" description:"New carb grams per serving"`
	Fat         *float64 `json:"fat,omitempty" description:"New fat grams per serving"`
}

type SaveFoodParams struct {
	FoodName    string  `json:"food_name" description:"Name of the food"`
	ServingSize float64 `json:"serving_size,omitempty" description:"Serving size amount (defaults to 1)"`
	Unit        string  `json:"unit,omitempty" description:"Serving unit (defaults to serving)"`
	Calories    int     `json:"calories" description:"Calories per serving"`
	Protein     float64 `json:"protein" description:"Protein grams per serving"`
	Carbs       float64 `json:"carbs" description:"Carb grams per serving"`
	Fat         float64 `json:"fat" description:"Fat grams per serving"`
}

// extractParams decodes the request arguments into target.
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return invalidArgs("failed to marshal arguments: %v", err)
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return invalidArgs("failed to unmarshal parameters: %v", err)
	}
	return nil
}

func (s *QuickCaloriesServer) registerTools() {
	s.tools = map[string]toolHandler{
		"estimate_nutrition":       s.handleEstimateNutrition,
		"estimate_nutrition_image": s.handleEstimateNutritionImage,
		"log_food":                 s.handleLogFood,
		"log_saved_food":           s.handleLogSavedFood,
		"get_entries":              s.handleGetEntries,
		"update_entry":             s.handleUpdateEntry,
		"delete_entry":             s.handleDeleteEntry,
		"log_workout":              s.handleLogWorkout,
		"get_workouts":             s.handleGetWorkouts,
		"update_workout":           s.handleUpdateWorkout,
		"delete_workout":           s.handleDeleteWorkout,
		"save_food":                s.handleSaveFood,
		"list_saved_foods":         s.handleListSavedFoods,
		"update_saved_food":        s.handleUpdateSavedFood,
		"delete_saved_food":        s.handleDeleteSavedFood,
		"compute_targets":          s.handleComputeTargets,
		"daily_summary":            s.handleDailySummary,
		"weekly_history":           s.handleWeeklyHistory,
		"get_settings":             s.handleGetSettings,
		"update_settings":          s.handleUpdateSettings,
		"rate_limit_status":        s.handleRateLimitStatus,
	}
}

// ToolNames lists the registered tools.
func (s *QuickCaloriesServer) ToolNames() []string {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	return names
}

func servingsOrDefault(v float64) (float64, error) {
	if v == 0 {
		return 1, nil
	}
	if err := calculator.ValidateServings(v); err != nil {
		return 0, invalidArgs("%v", err)
	}
	return v, nil
}

func (s *QuickCaloriesServer) timestampOrNow(v string) (time.Time, error) {
	if v == "" {
		return s.now(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, invalidArgs("invalid timestamp format: %v", err)
	}
	return t, nil
}

func parseDay(v string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, v, time.Local)
	if err != nil {
		return time.Time{}, invalidArgs("invalid date %q, expected YYYY-MM-DD", v)
	}
	return t, nil
}

// query turns date arguments into a half-open timestamp range.
func (p RangeParams) query() (models.EntryQuery, error) {
	q := models.EntryQuery{Limit: p.Limit}
	if p.Date != "" {
		day, err := parseDay(p.Date)
		if err != nil {
			return q, err
		}
		q.From, q.To = calculator.DayBounds(day)
		return q, nil
	}
	if p.StartDate != "" {
		day, err := parseDay(p.StartDate)
		if err != nil {
			return q, err
		}
		q.From = day
	}
	if p.EndDate != "" {
		day, err := parseDay(p.EndDate)
		if err != nil {
			return q, err
		}
		_, q.To = calculator.DayBounds(day)
	}
	if !q.From.IsZero() && !q.To.IsZero() && !q.From.Before(q.To) {
		return q, invalidArgs("start_date must not be after end_date")
	}
	return q, nil
}

// decodeImage accepts plain base64 or a data URI.
func decodeImage(v string) ([]byte, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, invalidArgs("image_base64 is required")
	}
	if strings.HasPrefix(v, "data:") {
		if i := strings.Index(v, ","); i >= 0 {
			v = v[i+1:]
		}
	}
	raw, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, invalidArgs("image_base64 is not valid base64: %v", err)
	}
	return raw, nil
}

func (s *QuickCaloriesServer) estimateText(ctx context.Context, description string) (models.NutritionEstimate, error) {
	if s.estimator == nil {
		return models.NutritionEstimate{}, errNoEstimator
	}
	if strings.TrimSpace(description) == "" {
		return models.NutritionEstimate{}, invalidArgs("description is required")
	}
	return s.estimator.EstimateText(ctx, description)
}

func (s *QuickCaloriesServer) estimateImage(ctx context.Context, raw []byte, prompt string) (models.NutritionEstimate, error) {
	if s.estimator == nil {
		return models.NutritionEstimate{}, errNoEstimator
	}
	return s.estimator.EstimateImage(ctx, raw, prompt)
}

func (s *QuickCaloriesServer) handleEstimateNutrition(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EstimateParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	servings, err := servingsOrDefault(params.Servings)
	if err != nil {
		return nil, err
	}

	estimate, err := s.estimateText(ctx, params.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate nutrition: %w", err)
	}

	return s.createJSONResponse(map[string]interface{}{
		"estimate": estimate,
		"servings": servings,
		"scaled":   calculator.ScaleEstimate(estimate, servings),
	})
}

func (s *QuickCaloriesServer) handleEstimateNutritionImage(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params EstimateImageParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	servings, err := servingsOrDefault(params.Servings)
	if err != nil {
		return nil, err
	}
	raw, err := decodeImage(params.ImageBase64)
	if err != nil {
		return nil, err
	}

	estimate, err := s.estimateImage(ctx, raw, params.Prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate nutrition: %w", err)
	}

	result := map[string]interface{}{
		"estimate": estimate,
		"servings": servings,
		"scaled":   calculator.ScaleEstimate(estimate, servings),
	}
	if s.images != nil {
		if cost, err := s.images.TokenCostFor(raw); err == nil {
			result["token_cost"] = cost
		}
	}
	return s.createJSONResponse(result)
}

func (s *QuickCaloriesServer) handleLogFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	servings, err := servingsOrDefault(params.Servings)
	if err != nil {
		return nil, err
	}
	timestamp, err := s.timestampOrNow(params.Timestamp)
	if err != nil {
		return nil, err
	}

	var estimate models.NutritionEstimate
	var source models.EntrySource
	switch {
	case params.ImageBase64 != "":
		raw, err := decodeImage(params.ImageBase64)
		if err != nil {
			return nil, err
		}
		if estimate, err = s.estimateImage(ctx, raw, params.Prompt); err != nil {
			return nil, fmt.Errorf("failed to estimate nutrition: %w", err)
		}
		source = models.SourceAIImage
	case params.Calories == nil && params.Description != "":
		if estimate, err = s.estimateText(ctx, params.Description); err != nil {
			return nil, fmt.Errorf("failed to estimate nutrition: %w", err)
		}
		source = models.SourceAIText
	default:
		if strings.TrimSpace(params.FoodName) == "" {
			return nil, invalidArgs("food_name is required for manual entries")
		}
		if params.Calories == nil || *params.Calories < 0 {
			return nil, invalidArgs("calories must be >= 0")
		}
		if params.Protein < 0 || params.Carbs < 0 || params.Fat < 0 {
			return nil, invalidArgs("macros must be >= 0")
		}
		estimate = models.NutritionEstimate{
			FoodName: strings.TrimSpace(params.FoodName),
			Calories: *params.Calories,
			Protein:  params.Protein,
			Carbs:    params.Carbs,
			Fat:      params.Fat,
		}
		source = models.SourceManual
	}

	entry := newEntry(calculator.ScaleEstimate(estimate, servings), servings, source, timestamp)
	if err := s.storage.SaveEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return s.createJSONResponse(entry)
}

func newEntry(scaled models.NutritionEstimate, servings float64, source models.EntrySource, ts time.Time) *models.FoodEntry {
	return &models.FoodEntry{
		ID:        uuid.NewString(),
		FoodName:  scaled.FoodName,
		Calories:  scaled.Calories,
		Protein:   scaled.Protein,
		Carbs:     scaled.Carbs,
		Fat:       scaled.Fat,
		Servings:  servings,
		Source:    source,
		Timestamp: ts,
	}
}

func (s *QuickCaloriesServer) handleLogSavedFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogSavedFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.SavedFoodID == "" {
		return nil, invalidArgs("saved_food_id is required")
	}
	servings, err := servingsOrDefault(params.Servings)
	if err != nil {
		return nil, err
	}
	timestamp, err := s.timestampOrNow(params.Timestamp)
	if err != nil {
		return nil, err
	}

	food, err := s.storage.GetSavedFood(params.SavedFoodID)
	if err != nil {
		return nil, err
	}
	scaled := calculator.ScaleEstimate(calculator.SavedFoodEstimate(*food), servings)
	entry := newEntry(scaled, servings, models.SourceSavedFood, timestamp)
	if err := s.storage.SaveEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}
	return s.createJSONResponse(entry)
}

func (s *QuickCaloriesServer) handleGetEntries(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params RangeParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	q, err := params.query()
	if err != nil {
		return nil, err
	}

	entries, err := s.storage.GetEntries(q)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}
	if entries == nil {
		entries = []*models.FoodEntry{}
	}
	return s.createJSONResponse(entries)
}

// handleUpdateEntry edits an entry. Nutrition overrides are per serving and
// are rescaled by the (possibly new) servings.
func (s *QuickCaloriesServer) handleUpdateEntry(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UpdateEntryParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ID == "" {
		return nil, invalidArgs("id is required")
	}

	entry, err := s.storage.GetEntry(params.ID)
	if err != nil {
		return nil, err
	}

	servings := entry.Servings
	if params.Servings != nil {
		if err := calculator.ValidateServings(*params.Servings); err != nil {
			return nil, invalidArgs("%v", err)
		}
		servings = *params.Servings
	}

	if params.Calories != nil || params.Protein != nil || params.Carbs != nil || params.Fat != nil {
		unit := calculator.UnitEstimate(*entry)
		if params.Calories != nil {
			unit.Calories = *params.Calories
		}
		if params.Protein != nil {
			unit.Protein = *params.Protein
		}
		if params.Carbs != nil {
			unit.Carbs = *params.Carbs
		}
		if params.Fat != nil {
			unit.Fat = *params.Fat
		}
		if unit.Calories < 0 || unit.Protein < 0 || unit.Carbs < 0 || unit.Fat < 0 {
			return nil, invalidArgs("nutrition values must be >= 0")
		}
		scaled := calculator.ScaleEstimate(unit, servings)
		entry.Calories, entry.Protein, entry.Carbs, entry.Fat = scaled.Calories, scaled.Protein, scaled.Carbs, scaled.Fat
		entry.Servings = servings
	} else if servings != entry.Servings {
		calculator.Rescale(entry, servings)
	}

	if params.FoodName != nil {
		name := strings.TrimSpace(*params.FoodName)
		if name == "" {
			return nil, invalidArgs("food_name must not be empty")
		}
		entry.FoodName = name
	}
	if params.Timestamp != "" {
		if entry.Timestamp, err = s.timestampOrNow(params.Timestamp); err != nil {
			return nil, err
		}
	}

	if err := s.storage.UpdateEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return s.createJSONResponse(entry)
}

func (s *QuickCaloriesServer) handleDeleteEntry(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params IDParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ID == "" {
		return nil, invalidArgs("id is required")
	}
	if err := s.storage.DeleteEntry(params.ID); err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{"deleted": params.ID})
}

func (s *QuickCaloriesServer) handleLogWorkout(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params LogWorkoutParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.WorkoutName) == "" {
		return nil, invalidArgs("workout_name is required")
	}
	if params.CaloriesBurned <= 0 {
		return nil, invalidArgs("calories_burned must be > 0")
	}
	timestamp, err := s.timestampOrNow(params.Timestamp)
	if err != nil {
		return nil, err
	}

	workout := &models.WorkoutEntry{
		ID:             uuid.NewString(),
		WorkoutName:    strings.TrimSpace(params.WorkoutName),
		CaloriesBurned: params.CaloriesBurned,
		Timestamp:      timestamp,
	}
	if err := s.storage.SaveWorkout(workout); err != nil {
		return nil, fmt.Errorf("failed to save workout: %w", err)
	}
	return s.createJSONResponse(workout)
}

func (s *QuickCaloriesServer) handleGetWorkouts(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params RangeParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	q, err := params.query()
	if err != nil {
		return nil, err
	}

	workouts, err := s.storage.GetWorkouts(q)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve workouts: %w", err)
	}
	if workouts == nil {
		workouts = []*models.WorkoutEntry{}
	}
	return s.createJSONResponse(workouts)
}

func (s *QuickCaloriesServer) handleUpdateWorkout(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UpdateWorkoutParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ID == "" {
		return nil, invalidArgs("id is required")
	}

	workout, err := s.storage.GetWorkout(params.ID)
	if err != nil {
		return nil, err
	}
	if params.WorkoutName != nil {
		name := strings.TrimSpace(*params.WorkoutName)
		if name == "" {
			return nil, invalidArgs("workout_name must not be empty")
		}
		workout.WorkoutName = name
	}
	if params.CaloriesBurned != nil {
		if *params.CaloriesBurned <= 0 {
			return nil, invalidArgs("calories_burned must be > 0")
		}
		workout.CaloriesBurned = *params.CaloriesBurned
	}
	if params.Timestamp != "" {
		if workout.Timestamp, err = s.timestampOrNow(params.Timestamp); err != nil {
			return nil, err
		}
	}

	if err := s.storage.UpdateWorkout(workout); err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}
	return s.createJSONResponse(workout)
}

func (s *QuickCaloriesServer) handleDeleteWorkout(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params IDParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ID == "" {
		return nil, invalidArgs("id is required")
	}
	if err := s.storage.DeleteWorkout(params.ID); err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{"deleted": params.ID})
}

func (s *QuickCaloriesServer) handleSaveFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SaveFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.FoodName) == "" {
		return nil, invalidArgs("food_name is required")
	}
	if params.Calories < 0 || params.Protein < 0 || params.Carbs < 0 || params.Fat < 0 {
		return nil, invalidArgs("nutrition values must be >= 0")
	}
	if params.ServingSize < 0 {
		return nil, invalidArgs("serving_size must be > 0")
	}
	if params.ServingSize == 0 {
		params.ServingSize = 1
	}
	if strings.TrimSpace(params.Unit) == "" {
		params.Unit = "serving"
	}

	food := &models.SavedFood{
		ID:          uuid.NewString(),
		FoodName:    strings.TrimSpace(params.FoodName),
		ServingSize: params.ServingSize,
		Unit:        strings.TrimSpace(params.Unit),
		Calories:    params.Calories,
		Protein:     params.Protein,
		Carbs:       params.Carbs,
		Fat:         params.Fat,
		CreatedAt:   s.now(),
	}
	if err := s.storage.SaveFood(food); err != nil {
		return nil, fmt.Errorf("failed to save food: %w", err)
	}
	return s.createJSONResponse(food)
}

func (s *QuickCaloriesServer) handleListSavedFoods(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	foods, err := s.storage.ListSavedFoods()
	if err != nil {
		return nil, fmt.Errorf("failed to list saved foods: %w", err)
	}
	if foods == nil {
		foods = []*models.SavedFood{}
	}
	return s.createJSONResponse(foods)
}

// handleUpdateSavedFood edits a saved food. Entries already logged from it keep
// their values.
func (s *QuickCaloriesServer) handleUpdateSavedFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params UpdateSavedFoodParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ID == "" {
		return nil, invalidArgs("id is required")
	}

	food, err := s.storage.GetSavedFood(params.ID)
	if err != nil {
		return nil, err
	}
	if params.FoodName != nil {
		name := strings.TrimSpace(*params.FoodName)
		if name == "" {
			return nil, invalidArgs("food_name must not be empty")
		}
		food.FoodName = name
	}
	if params.ServingSize != nil {
		if *params.ServingSize <= 0 {
			return nil, invalidArgs("serving_size must be > 0")
		}
		food.ServingSize = *params.ServingSize
	}
	if params.Unit != nil {
		unit := strings.TrimSpace(*params.Unit)
		if unit == "" {
			return nil, invalidArgs("unit must not be empty")
		}
		food.Unit = unit
	}
	if params.Calories != nil {
		food.Calories = *params.Calories
	}
	if params.Protein != nil {
		food.Protein = *params.Protein
	}
	if params.Carbs != nil {
		food.Carbs = *params.Carbs
	}
	if params.Fat != nil {
		food.Fat = *params.Fat
	}
	if food.Calories < 0 || food.Protein < 0 || food.Carbs < 0 || food.Fat < 0 {
		return nil, invalidArgs("nutrition values must be >= 0")
	}

	if err := s.storage.UpdateSavedFood(food); err != nil {
		return nil, fmt.Errorf("failed to update saved food: %w", err)
	}
	return s.createJSONResponse(food)
}

func (s *QuickCaloriesServer) handleDeleteSavedFood(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params IDParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.ID == "" {
		return nil, invalidArgs("id is required")
	}
	if err := s.storage.DeleteSavedFood(params.ID); err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{"deleted": params.ID})
}
