//go:build cucumber

package ratelimit_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"quickcalories/internal/ratelimit"
)

// TestDailyQuotaFeatures runs the daily quota scenarios via godog.
func TestDailyQuotaFeatures(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "daily_quota.feature")
	suite := godog.TestSuite{
		Name:                "daily-quota",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{featurePath},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeScenario wires step definitions for the quota feature.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &quotaState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a fresh quota$`, state.freshQuota)
	ctx.Step(`^the user has configured an API key$`, state.withAPIKey)
	ctx.Step(`^the user has an active subscription$`, state.withSubscription)
	ctx.Step(`^a request succeeds$`, state.requestSucceeds)
	ctx.Step(`^(\d+) requests succeed$`, state.requestsSucceed)
	ctx.Step(`^the last reset was yesterday$`, state.lastResetYesterday)
	ctx.Step(`^a request may proceed$`, state.mayProceed)
	ctx.Step(`^a request may not proceed$`, state.mayNotProceed)
	ctx.Step(`^the request count is (\d+)$`, state.requestCountIs)
}

// quotaState holds scenario state for the quota feature.
type quotaState struct {
	store   *ratelimit.MemoryStore
	limiter *ratelimit.Limiter
}

func (s *quotaState) reset() {
	s.store = ratelimit.NewMemoryStore()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.Local)
	s.limiter = ratelimit.New(s.store, s.store, ratelimit.WithClock(func() time.Time { return now }))
}

func (s *quotaState) freshQuota() error {
	s.reset()
	return nil
}

func (s *quotaState) withAPIKey() error {
	s.store.SetAPIKey("sk-user")
	return nil
}

func (s *quotaState) withSubscription() error {
	s.store.SetSubscription(true)
	return nil
}

func (s *quotaState) requestSucceeds() error {
	return s.requestsSucceed(1)
}

func (s *quotaState) requestsSucceed(n int) error {
	for i := 0; i < n; i++ {
		res, err := s.limiter.Reserve()
		if err != nil {
			return fmt.Errorf("request %d: %w", i+1, err)
		}
		res.Commit()
	}
	return nil
}

func (s *quotaState) lastResetYesterday() error {
	state := s.store.RateLimitState()
	if state.LastReset == nil {
		return fmt.Errorf("reset time was never stamped")
	}
	yesterday := state.LastReset.AddDate(0, 0, -1)
	state.LastReset = &yesterday
	return s.store.SaveRateLimitState(state)
}

func (s *quotaState) mayProceed() error {
	if !s.limiter.CanProceed() {
		return fmt.Errorf("expected request to be allowed")
	}
	return nil
}

func (s *quotaState) mayNotProceed() error {
	if s.limiter.CanProceed() {
		return fmt.Errorf("expected request to be denied")
	}
	return nil
}

func (s *quotaState) requestCountIs(n int) error {
	if got := s.store.RateLimitState().RequestCount; got != n {
		return fmt.Errorf("expected request count %d, got %d", n, got)
	}
	return nil
}
