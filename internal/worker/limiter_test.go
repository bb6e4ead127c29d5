package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_BurstFloor(t *testing.T) {
	if l := NewLimiter(10, -1); l.burst != 1 {
		t.Errorf("burst = %d, want floor of 1", l.burst)
	}
	if l := NewLimiter(10, 5); l.burst != 5 {
		t.Errorf("burst = %d, want 5", l.burst)
	}
}

func TestLimiter_ThrottlesSameHost(t *testing.T) {
	limiter := NewLimiter(50, 1) // 20ms between requests, no burst headroom
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/a"); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	start := time.Now()
	if err := limiter.Wait(ctx, "http://example.com/b"); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("second request on same host waited %v, want >= ~20ms", elapsed)
	}
}

func TestLimiter_HostsAreIndependent(t *testing.T) {
	limiter := NewLimiter(1, 1) // 1 rps: a second hit on the same host would block
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://pmc.ncbi.nlm.nih.gov/articles/PMC1/"); err != nil {
		t.Fatalf("first host: %v", err)
	}
	start := time.Now()
	if err := limiter.Wait(ctx, "https://www.frontiersin.org/articles/x"); err != nil {
		t.Fatalf("second host: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("different host waited %v, want immediate clearance", elapsed)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 5)
	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "http://example.com", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("elapsed %v, want >= 50ms polite delay", elapsed)
	}
}

func TestLimiter_DelayHonorsCancellation(t *testing.T) {
	limiter := NewLimiter(100, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.WaitWithDelay(ctx, "http://example.com", time.Minute)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestLimiter_RejectsUnparsableURL(t *testing.T) {
	limiter := NewLimiter(10, 1)
	if err := limiter.Wait(context.Background(), "::bad-url"); err == nil {
		t.Error("expected error for unparsable URL")
	}
}
