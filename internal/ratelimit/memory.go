// internal/ratelimit/memory.go
package ratelimit

import (
	"sync"

	"quickcalories/internal/models"
)

// MemoryStore keeps the counter and entitlements in process memory.
type MemoryStore struct {
	mu           sync.Mutex
	state        models.RateLimitState
	apiKey       string
	subscription bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) RateLimitState() models.RateLimitState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MemoryStore) SaveRateLimitState(state models.RateLimitState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}

func (m *MemoryStore) HasUserAPIKey() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiKey != ""
}

func (m *MemoryStore) UserAPIKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiKey
}

func (m *MemoryStore) HasActiveSubscription() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscription
}

// SetAPIKey and SetSubscription mutate entitlements under the store lock.
func (m *MemoryStore) SetAPIKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKey = key
}

func (m *MemoryStore) SetSubscription(active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscription = active
}
