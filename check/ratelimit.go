package check

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/webcheck"
	"golang.org/x/time/rate"
)

var _ webcheck.HostLimiter = (*HostLimiter)(nil)

// HostLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed independently.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host, with a burst of 1.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to host.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}

// WaitForURL waits on limiter for the host of rawURL. Host names are
// compared case-insensitively and keep their port. A nil limiter or a URL
// without a host does not wait; the fetcher reports bad URLs.
func WaitForURL(ctx context.Context, limiter webcheck.HostLimiter, rawURL string) error {
	if limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	host := strings.ToLower(u.Host)
	if err := limiter.Wait(ctx, host); err != nil {
		return webcheck.WrapError(webcheck.EFETCH, err, "waiting for rate limit on %s", host)
	}
	return nil
}
