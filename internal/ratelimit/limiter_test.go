package ratelimit_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"quickcalories/internal/ratelimit"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T) (*ratelimit.Limiter, *ratelimit.MemoryStore, *fakeClock) {
	t.Helper()
	store := ratelimit.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 5, 10, 9, 0, 0, 0, time.Local)}
	return ratelimit.New(store, store, ratelimit.WithClock(clock.Now)), store, clock
}

func TestFreshLimiterAllowsOneRequestPerDay(t *testing.T) {
	t.Parallel()
	limiter, store, _ := newLimiter(t)

	if !limiter.CanProceed() {
		t.Fatalf("expected fresh limiter to allow a request")
	}
	if store.RateLimitState().LastReset == nil {
		t.Fatalf("expected first check to stamp the reset time")
	}
	limiter.RecordSuccess()
	if limiter.CanProceed() {
		t.Fatalf("expected quota to be exhausted after one success")
	}
}

func TestDayRolloverResetsCounter(t *testing.T) {
	t.Parallel()
	limiter, store, _ := newLimiter(t)
	limiter.CanProceed()
	limiter.RecordSuccess()

	state := store.RateLimitState()
	yesterday := state.LastReset.AddDate(0, 0, -1)
	state.LastReset = &yesterday
	if err := store.SaveRateLimitState(state); err != nil {
		t.Fatalf("save state: %v", err)
	}

	if !limiter.CanProceed() {
		t.Fatalf("expected a new day to allow a request")
	}
	if got := store.RateLimitState().RequestCount; got != 0 {
		t.Fatalf("expected counter reset to 0, got %d", got)
	}
}

func TestClockCrossingMidnightResets(t *testing.T) {
	t.Parallel()
	limiter, _, clock := newLimiter(t)
	limiter.CanProceed()
	limiter.RecordSuccess()
	clock.Advance(16 * time.Hour)
	if !limiter.CanProceed() {
		t.Fatalf("expected reset after crossing midnight")
	}
}

func TestBypassWithUserAPIKey(t *testing.T) {
	t.Parallel()
	limiter, store, _ := newLimiter(t)
	store.SetAPIKey("sk-user")
	for i := 0; i < 5; i++ {
		limiter.RecordSuccess()
		if !limiter.CanProceed() {
			t.Fatalf("expected bypass after %d successes", i+1)
		}
	}
	if got := store.RateLimitState().RequestCount; got != 5 {
		t.Fatalf("expected counter to keep growing under bypass, got %d", got)
	}
}

func TestBypassWithSubscription(t *testing.T) {
	t.Parallel()
	limiter, store, _ := newLimiter(t)
	store.SetSubscription(true)
	limiter.RecordSuccess()
	limiter.RecordSuccess()
	if !limiter.CanProceed() {
		t.Fatalf("expected subscription to bypass quota")
	}
}

func TestReservationBlocksConcurrentCheck(t *testing.T) {
	t.Parallel()
	limiter, store, _ := newLimiter(t)

	res, err := limiter.Reserve()
	if err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if _, err := limiter.Reserve(); !errors.Is(err, ratelimit.ErrQuotaExhausted) {
		t.Fatalf("expected second reserve to be denied, got %v", err)
	}
	res.Release()
	if got := store.RateLimitState().RequestCount; got != 0 {
		t.Fatalf("release must not count, got %d", got)
	}

	res, err = limiter.Reserve()
	if err != nil {
		t.Fatalf("reserve after release: %v", err)
	}
	res.Commit()
	res.Release()
	if got := store.RateLimitState().RequestCount; got != 1 {
		t.Fatalf("expected one counted request, got %d", got)
	}
	if limiter.CanProceed() {
		t.Fatalf("expected quota exhausted after commit")
	}
}

func TestConcurrentReservationsOnlyOneWins(t *testing.T) {
	t.Parallel()
	limiter, _, _ := newLimiter(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := limiter.Reserve()
			if err != nil {
				return
			}
			mu.Lock()
			granted++
			mu.Unlock()
			res.Commit()
		}()
	}
	wg.Wait()
	if granted != 1 {
		t.Fatalf("expected exactly one reservation, got %d", granted)
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()
	limiter, _, _ := newLimiter(t)
	st := limiter.Status()
	if st.Remaining != 1 || st.Quota != ratelimit.FreeDailyQuota || st.Unlimited {
		t.Fatalf("unexpected fresh status %+v", st)
	}
	limiter.RecordSuccess()
	if st := limiter.Status(); st.Remaining != 0 || st.RequestCount != 1 {
		t.Fatalf("unexpected status after success %+v", st)
	}
}
