package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5, 0)
	if limiter.limiter.Burst() != 5 {
		t.Errorf("expected burst 5, got %d", limiter.limiter.Burst())
	}

	l2 := NewLimiter(-1, -1, 0)
	if l2.limiter.Burst() != 1 {
		t.Errorf("expected default burst 1 for negative input, got %d", l2.limiter.Burst())
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1, 0)
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1, 50*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	duration := time.Since(start)
	if duration < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", duration)
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.001, 1, 0)
	ctx, cancel := context.WithCancel(context.Background())

	// Exhaust the burst, then cancel while blocked
	_ = limiter.Wait(ctx)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("expected error after cancellation")
	}
}

func TestLimiter_Allow(t *testing.T) {
	limiter := NewLimiter(0.001, 1, 0)

	if !limiter.Allow() {
		t.Error("first call should be allowed")
	}
	if limiter.Allow() {
		t.Error("second call should be rate limited")
	}
}
