// internal/settings/manager.go
package settings

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"quickcalories/internal/models"
)

const (
	keyCalorieTarget    = "daily_calorie_target"
	keyProteinTarget    = "protein_target"
	keyCarbsTarget      = "carbs_target"
	keyFatTarget        = "fat_target"
	keyUserAPIKey       = "user_api_key"
	keySubscription     = "has_active_subscription"
	keyOnboarding       = "has_completed_onboarding"
	keyProfile          = "profile"
	keyRateLimitCount   = "rate_limit_count"
	keyRateLimitLastSet = "rate_limit_last_reset"
)

// Store is the key/value persistence behind the manager.
type Store interface {
	SetSetting(key, value string) error
	DeleteSetting(key string) error
	ListSettings() (map[string]string, error)
}

// Manager is the single shared settings instance. It is read once from the
// store and written through on every change.
type Manager struct {
	mu    sync.RWMutex
	store Store

	targets      models.Targets
	profile      *models.Profile
	apiKey       string
	subscription bool
	onboarded    bool
	rateLimit    models.RateLimitState
}

// Load reads every persisted setting, falling back to defaults.
func Load(store Store) (*Manager, error) {
	values, err := store.ListSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	m := &Manager{store: store, targets: models.DefaultTargets}
	if v, ok := values[keyCalorieTarget]; ok {
		if m.targets.Calories, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("parse %s: %w", keyCalorieTarget, err)
		}
	}
	for key, dst := range map[string]*float64{
		keyProteinTarget: &m.targets.Protein,
		keyCarbsTarget:   &m.targets.Carbs,
		keyFatTarget:     &m.targets.Fat,
	} {
		if v, ok := values[key]; ok {
			if *dst, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("parse %s: %w", key, err)
			}
		}
	}

	m.apiKey = values[keyUserAPIKey]
	m.subscription = values[keySubscription] == "true"
	m.onboarded = values[keyOnboarding] == "true"

	if v, ok := values[keyProfile]; ok {
		var p models.Profile
		if err := json.Unmarshal([]byte(v), &p); err != nil {
			return nil, fmt.Errorf("parse %s: %w", keyProfile, err)
		}
		m.profile = &p
	}

	if v, ok := values[keyRateLimitCount]; ok {
		if m.rateLimit.RequestCount, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("parse %s: %w", keyRateLimitCount, err)
		}
	}
	if v, ok := values[keyRateLimitLastSet]; ok {
		t, err := parseTime(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", keyRateLimitLastSet, err)
		}
		m.rateLimit.LastReset = &t
	}

	return m, nil
}

func (m *Manager) Snapshot() models.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := models.Settings{
		Targets:                m.targets,
		HasUserAPIKey:          m.apiKey != "",
		HasActiveSubscription:  m.subscription,
		HasCompletedOnboarding: m.onboarded,
		RateLimit:              m.rateLimit,
	}
	if m.profile != nil {
		p := *m.profile
		s.Profile = &p
	}
	return s
}

func (m *Manager) Targets() models.Targets {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.targets
}

func (m *Manager) SetTargets(t models.Targets) error {
	if t.Calories <= 0 {
		return fmt.Errorf("calorie target must be > 0")
	}
	if t.Protein < 0 || t.Carbs < 0 || t.Fat < 0 {
		return fmt.Errorf("macro targets must be >= 0")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.setAll(map[string]string{
		keyCalorieTarget: strconv.Itoa(t.Calories),
		keyProteinTarget: formatFloat(t.Protein),
		keyCarbsTarget:   formatFloat(t.Carbs),
		keyFatTarget:     formatFloat(t.Fat),
	}); err != nil {
		return err
	}
	m.targets = t
	return nil
}

func (m *Manager) Profile() (models.Profile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return models.Profile{}, false
	}
	return *m.profile, true
}

func (m *Manager) SetProfile(p models.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SetSetting(keyProfile, string(raw)); err != nil {
		return err
	}
	m.profile = &p
	return nil
}

// UserAPIKey returns the user's own upstream key, or "".
func (m *Manager) UserAPIKey() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.apiKey
}

// SetUserAPIKey stores key; an empty key removes it.
func (m *Manager) SetUserAPIKey(key string) error {
	key = strings.TrimSpace(key)

	m.mu.Lock()
	defer m.mu.Unlock()
	var err error
	if key == "" {
		err = m.store.DeleteSetting(keyUserAPIKey)
	} else {
		err = m.store.SetSetting(keyUserAPIKey, key)
	}
	if err != nil {
		return err
	}
	m.apiKey = key
	return nil
}

func (m *Manager) HasUserAPIKey() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.apiKey != ""
}

func (m *Manager) HasActiveSubscription() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.subscription
}

func (m *Manager) SetSubscription(active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SetSetting(keySubscription, strconv.FormatBool(active)); err != nil {
		return err
	}
	m.subscription = active
	return nil
}

func (m *Manager) HasCompletedOnboarding() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.onboarded
}

func (m *Manager) SetOnboardingComplete(done bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SetSetting(keyOnboarding, strconv.FormatBool(done)); err != nil {
		return err
	}
	m.onboarded = done
	return nil
}

func (m *Manager) RateLimitState() models.RateLimitState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rateLimit
}

func (m *Manager) SaveRateLimitState(state models.RateLimitState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := map[string]string{keyRateLimitCount: strconv.Itoa(state.RequestCount)}
	if state.LastReset != nil {
		values[keyRateLimitLastSet] = formatTime(*state.LastReset)
	}
	if err := m.setAll(values); err != nil {
		return err
	}
	m.rateLimit = state
	return nil
}

func (m *Manager) setAll(values map[string]string) error {
	for key, value := range values {
		if err := m.store.SetSetting(key, value); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
