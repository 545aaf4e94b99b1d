package check_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/webcheck"
	"github.com/fwojciec/webcheck/check"
	"github.com/fwojciec/webcheck/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements webcheck.HostLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ webcheck.HostLimiter = check.NewHostLimiter(1)
	})

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := check.NewHostLimiter(10) // 10 req/sec

		start := time.Now()
		err := limiter.Wait(context.Background(), "shop.example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := check.NewHostLimiter(10) // 10 req/sec = 100ms between requests

		// First request is immediate
		err := limiter.Wait(context.Background(), "shop.example.com")
		require.NoError(t, err)

		// Second request should wait
		start := time.Now()
		err = limiter.Wait(context.Background(), "shop.example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := check.NewHostLimiter(10) // 10 req/sec

		// First request to host A
		err := limiter.Wait(context.Background(), "shop.example.com")
		require.NoError(t, err)

		// First request to host B is immediate
		start := time.Now()
		err = limiter.Wait(context.Background(), "news.example.org")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := check.NewHostLimiter(1) // 1 req/sec = 1000ms between requests

		// First request exhausts the token
		err := limiter.Wait(context.Background(), "shop.example.com")
		require.NoError(t, err)

		// Second request with short timeout
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "shop.example.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent requests to one host all complete", func(t *testing.T) {
		t.Parallel()

		limiter := check.NewHostLimiter(100) // 100 req/sec = 10ms between requests

		var wg sync.WaitGroup
		var completed atomic.Int32

		// 5 concurrent requests to one host
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := limiter.Wait(context.Background(), "shop.example.com")
				if err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}

func TestWaitForURL(t *testing.T) {
	t.Parallel()

	recorder := func(hosts *[]string, err error) *mock.HostLimiter {
		return &mock.HostLimiter{
			WaitFn: func(ctx context.Context, host string) error {
				*hosts = append(*hosts, host)
				return err
			},
		}
	}

	t.Run("waits on the lowercased host with port", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		err := check.WaitForURL(context.Background(), recorder(&hosts, nil), "https://Shop.Example.com:8443/sale?x=1")

		require.NoError(t, err)
		assert.Equal(t, []string{"shop.example.com:8443"}, hosts)
	})

	t.Run("skips urls without a host", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		for _, raw := range []string{"", "/relative/path", "mailto:ops@example.com", "http://[::1"} {
			require.NoError(t, check.WaitForURL(context.Background(), recorder(&hosts, nil), raw))
		}
		assert.Empty(t, hosts)
	})

	t.Run("nil limiter does not wait", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, check.WaitForURL(context.Background(), nil, "https://example.com/"))
	})

	t.Run("limiter error is a fetch error", func(t *testing.T) {
		t.Parallel()

		var hosts []string
		err := check.WaitForURL(context.Background(), recorder(&hosts, context.Canceled), "https://example.com/")

		assert.Equal(t, webcheck.EFETCH, webcheck.ErrorCode(err))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
