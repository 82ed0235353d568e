package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Allow(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 3,
	})
	defer limiter.Stop()

	companyID := int64(10157)

	for i := 0; i < 3; i++ {
		if !limiter.Allow(companyID) {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	if limiter.Allow(companyID) {
		t.Error("Fourth request should be blocked due to rate limit")
	}
}

func TestLimiter_DifferentCompanies(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 1,
	})
	defer limiter.Stop()

	if !limiter.Allow(1) {
		t.Error("company 1 first request should be allowed")
	}
	if !limiter.Allow(2) {
		t.Error("company 2 first request should be allowed")
	}
	if limiter.Allow(1) {
		t.Error("company 1 second request should be blocked")
	}
	if limiter.Allow(2) {
		t.Error("company 2 second request should be blocked")
	}
}

func TestLimiter_Remaining(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 5,
	})
	defer limiter.Stop()

	companyID := int64(10157)

	if remaining := limiter.Remaining(companyID); remaining != 5 {
		t.Errorf("Remaining() = %d, want 5", remaining)
	}

	limiter.Allow(companyID)
	limiter.Allow(companyID)
	limiter.Allow(companyID)

	if remaining := limiter.Remaining(companyID); remaining != 2 {
		t.Errorf("Remaining() = %d, want 2", remaining)
	}

	limiter.Allow(companyID)
	limiter.Allow(companyID)

	if remaining := limiter.Remaining(companyID); remaining != 0 {
		t.Errorf("Remaining() = %d, want 0", remaining)
	}
}

func TestLimiter_ResetTime(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 1,
	})
	defer limiter.Stop()

	before := time.Now()
	limiter.Allow(1)

	resetTime := limiter.ResetTime(1)

	expectedReset := before.Add(time.Minute)
	tolerance := 2 * time.Second

	if resetTime.Before(expectedReset.Add(-tolerance)) || resetTime.After(expectedReset.Add(tolerance)) {
		t.Errorf("ResetTime() = %v, expected around %v", resetTime, expectedReset)
	}
}

func TestLimiter_DefaultConfig(t *testing.T) {
	limiter := New(Config{})
	defer limiter.Stop()

	for i := 0; i < 60; i++ {
		if !limiter.Allow(1) {
			t.Errorf("Request %d should be allowed with default config", i+1)
		}
	}

	if limiter.Allow(1) {
		t.Error("61st request should be blocked")
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 1,
		Window:            50 * time.Millisecond,
	})
	defer limiter.Stop()

	if err := limiter.Wait(context.Background(), 1); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(context.Background(), 1); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Wait() returned after %v, want it to block until the window slides", elapsed)
	}
}

func TestLimiter_WaitContextCanceled(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 1,
	})
	defer limiter.Stop()

	limiter.Allow(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, 1); err != context.DeadlineExceeded {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestLimiter_Stop(t *testing.T) {
	limiter := New(Config{})

	limiter.Stop()
	limiter.Stop()
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := New(Config{
		RequestsPerMinute: 100,
	})
	defer limiter.Stop()

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 20; j++ {
				limiter.Allow(1)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if remaining := limiter.Remaining(1); remaining != 0 {
		t.Errorf("Remaining() = %d, want 0 after concurrent access", remaining)
	}
}
