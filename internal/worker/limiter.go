package worker

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound requests per target host, so a batch
// hammering one publisher cannot exceed the configured request rate no
// matter how many quotes point at it.
type Limiter struct {
	mu     sync.Mutex
	byHost map[string]*rate.Limiter
	limit  rate.Limit
	burst  int
}

// NewLimiter builds a limiter allowing requestsPerSecond sustained per
// host with the given burst. Bursts below one are raised to one.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		byHost: make(map[string]*rate.Limiter),
		limit:  rate.Limit(requestsPerSecond),
		burst:  burst,
	}
}

// Wait blocks until the host behind rawURL has a token available, or
// the context is cancelled.
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("rate limit %q: %w", rawURL, err)
	}
	return l.forHost(u.Host).Wait(ctx)
}

// WaitWithDelay waits for a token and then sleeps the extra polite
// delay used between consecutive fetches.
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, delay time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (l *Limiter) forHost(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.byHost[host]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.byHost[host] = lim
	}
	return lim
}
