// internal/ratelimit/limiter.go
package ratelimit

import (
	"errors"
	"log"
	"sync"
	"time"

	"quickcalories/internal/models"
)

// FreeDailyQuota is the number of AI requests allowed per calendar day without a bypass.
const FreeDailyQuota = 1

var ErrQuotaExhausted = errors.New("daily AI request limit reached")

// Store owns the persisted counter.
type Store interface {
	RateLimitState() models.RateLimitState
	SaveRateLimitState(state models.RateLimitState) error
}

// Entitlements reports the conditions that lift the quota.
type Entitlements interface {
	HasUserAPIKey() bool
	HasActiveSubscription() bool
}

// Limiter applies the daily quota. All reads and writes of the counter go
// through mu so a check and its increment never interleave with another caller.
type Limiter struct {
	mu       sync.Mutex
	store    Store
	ents     Entitlements
	now      func() time.Time
	quota    int
	reserved int
}

type Option func(*Limiter)

// WithClock replaces time.Now. The clock's location decides where a day starts.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func WithQuota(quota int) Option {
	return func(l *Limiter) { l.quota = quota }
}

func New(store Store, ents Entitlements, opts ...Option) *Limiter {
	l := &Limiter{
		store: store,
		ents:  ents,
		now:   time.Now,
		quota: FreeDailyQuota,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CanProceed reports whether one more request may be sent right now.
func (l *Limiter) CanProceed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	state := l.rollover()
	return l.allowed(state.RequestCount)
}

// RecordSuccess counts one completed request.
func (l *Limiter) RecordSuccess() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.increment()
}

// Reserve holds a quota slot for a request in flight. The caller must
// Commit on success or Release otherwise.
func (l *Limiter) Reserve() (*Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	state := l.rollover()
	if !l.allowed(state.RequestCount + l.reserved) {
		return nil, ErrQuotaExhausted
	}
	l.reserved++
	return &Reservation{limiter: l}, nil
}

type Status struct {
	RequestCount int        `json:"request_count"`
	Quota        int        `json:"quota"`
	Remaining    int        `json:"remaining"`
	Unlimited    bool       `json:"unlimited"`
	LastReset    *time.Time `json:"last_reset,omitempty"`
}

func (l *Limiter) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	state := l.rollover()
	remaining := l.quota - state.RequestCount - l.reserved
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		RequestCount: state.RequestCount,
		Quota:        l.quota,
		Remaining:    remaining,
		Unlimited:    l.bypassed(),
		LastReset:    state.LastReset,
	}
}

func (l *Limiter) allowed(used int) bool {
	if l.bypassed() {
		return true
	}
	return used < l.quota
}

func (l *Limiter) bypassed() bool {
	if l.ents == nil {
		return false
	}
	return l.ents.HasUserAPIKey() || l.ents.HasActiveSubscription()
}

// rollover initializes the reset stamp on first use and zeroes the counter
// when the stamp falls on an earlier calendar day. Caller holds mu.
func (l *Limiter) rollover() models.RateLimitState {
	state := l.store.RateLimitState()
	now := l.now()
	switch {
	case state.LastReset == nil:
		state.LastReset = &now
	case !sameDay(*state.LastReset, now):
		state.RequestCount = 0
		state.LastReset = &now
	default:
		return state
	}
	l.save(state)
	return state
}

func (l *Limiter) increment() {
	state := l.store.RateLimitState()
	state.RequestCount++
	l.save(state)
}

func (l *Limiter) save(state models.RateLimitState) {
	if err := l.store.SaveRateLimitState(state); err != nil {
		log.Printf("Failed to persist rate limit state: %v", err)
	}
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Reservation is a quota slot held by one in-flight request.
type Reservation struct {
	limiter *Limiter
	once    sync.Once
}

// Commit turns the slot into a counted request.
func (r *Reservation) Commit() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		l := r.limiter
		l.mu.Lock()
		defer l.mu.Unlock()
		l.reserved--
		l.increment()
	})
}

// Release gives the slot back without counting it. Safe after Commit and on nil.
func (r *Reservation) Release() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		l := r.limiter
		l.mu.Lock()
		defer l.mu.Unlock()
		l.reserved--
	})
}
