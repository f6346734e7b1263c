package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiterAllowWithinBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 1, Burst: 3})

	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}
	if rl.Allow() {
		t.Fatal("request beyond burst should be denied")
	}
}

func TestRateLimiterExecute(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 1, Burst: 1})

	if err := rl.Execute(func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rl.Execute(func() error { return nil }); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestRateLimiterWaitRefills(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 100, Burst: 1})

	if !rl.Allow() {
		t.Fatal("first request should be allowed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("wait should succeed after refill: %v", err)
	}
}

func TestRateLimiterWaitCancelled(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Name: "test", Rate: 0.001, Burst: 1})
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}
