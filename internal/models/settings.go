// internal/models/settings.go
package models

import "time"

// RateLimitState is the daily AI request counter.
type RateLimitState struct {
	RequestCount int        `json:"request_count"`
	LastReset    *time.Time `json:"last_reset,omitempty"`
}

type Profile struct {
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	UseMetric     bool    `json:"use_metric"`
}

type Targets struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Settings is a snapshot of the user's preferences.
type Settings struct {
	Targets                Targets        `json:"targets"`
	Profile                *Profile       `json:"profile,omitempty"`
	HasUserAPIKey          bool           `json:"has_user_api_key"`
	HasActiveSubscription  bool           `json:"has_active_subscription"`
	HasCompletedOnboarding bool           `json:"has_completed_onboarding"`
	RateLimit              RateLimitState `json:"rate_limit"`
}

var DefaultTargets = Targets{
	Calories: 2000,
	Protein:  150,
	Carbs:    200,
	Fat:      67,
}
