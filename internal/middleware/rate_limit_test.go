//go:build !integration

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), rl.RateLimit())
	router.GET("/api/rates", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func hit(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/rates", nil)
	req.RemoteAddr = ip + ":4321"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_RateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		rate          int
		requests      int
		wantAllowed   int
		wantRemaining string
	}{
		{name: "under the limit", rate: 3, requests: 2, wantAllowed: 2, wantRemaining: "1"},
		{name: "at the limit", rate: 3, requests: 3, wantAllowed: 3, wantRemaining: "0"},
		{name: "over the limit", rate: 2, requests: 5, wantAllowed: 2, wantRemaining: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.rate, time.Minute)
			defer rl.Stop()
			router := limitedRouter(rl)

			allowed := 0
			var last *httptest.ResponseRecorder
			for i := 0; i < tt.requests; i++ {
				last = hit(router, "10.0.0.1")
				if last.Code == http.StatusOK {
					allowed++
				}
			}

			assert.Equal(t, tt.wantAllowed, allowed)
			assert.Equal(t, tt.wantRemaining, last.Header().Get("X-RateLimit-Remaining"))
			if tt.requests > tt.wantAllowed {
				assert.Equal(t, http.StatusTooManyRequests, last.Code)
				assert.Contains(t, last.Body.String(), "rate_limit_exceeded")
				assert.NotEmpty(t, last.Header().Get("Retry-After"))
			}
		})
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	router := limitedRouter(rl)

	assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2").Code)
	assert.Equal(t, "1", hit(router, "10.0.0.3").Header().Get("X-RateLimit-Limit"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	now := time.Date(2025, 7, 22, 9, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	ok, _, _ := rl.allow("ip:a")
	require.True(t, ok)
	ok, _, reset := rl.allow("ip:a")
	assert.False(t, ok)
	assert.Equal(t, now.Add(time.Minute), reset)

	now = now.Add(time.Minute)
	ok, remaining, _ := rl.allow("ip:a")
	assert.True(t, ok)
	assert.Zero(t, remaining)
}

func TestRateLimiter_CleanupAndStats(t *testing.T) {
	now := time.Date(2025, 7, 22, 9, 0, 0, 0, time.UTC)
	rl := NewShardedRateLimiter(5, time.Minute, 4)
	defer rl.Stop()
	rl.now = func() time.Time { return now }

	for _, id := range []string{"a", "b", "c"} {
		rl.allow(id)
	}
	total, perShard := rl.Stats()
	assert.Equal(t, 3, total)
	assert.Len(t, perShard, 4)

	now = now.Add(3 * time.Minute)
	rl.cleanupExpired()
	total, _ = rl.Stats()
	assert.Zero(t, total)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(50, time.Minute)
	defer rl.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _, _ := rl.allow("ip:shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}
