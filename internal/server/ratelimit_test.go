package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestRateLimiter_SweepDropsIdleClients(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(rate.Limit(1), 1, time.Minute)
	rl.now = clock.now

	assert.True(t, rl.Allow("10.0.0.1"))
	clock.advance(30 * time.Second)
	assert.True(t, rl.Allow("10.0.0.2"))
	require.Equal(t, 2, rl.Clients())

	clock.advance(45 * time.Second)
	assert.Equal(t, 1, rl.Sweep())
	assert.Equal(t, 1, rl.Clients())

	// recent use keeps a bucket alive
	assert.True(t, rl.Allow("10.0.0.2"))
	clock.advance(59 * time.Second)
	assert.Zero(t, rl.Sweep())

	clock.advance(2 * time.Second)
	assert.Equal(t, 1, rl.Sweep())
	assert.Zero(t, rl.Clients())
}

func TestRateLimiter_SweptClientStartsFull(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(rate.Limit(0.001), 1, time.Minute)
	rl.now = clock.now

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	clock.advance(2 * time.Minute)
	rl.Sweep()
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiter_RunStopsWithContext(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(0.001), 1, 0)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	serve := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusNoContent, serve("192.0.2.1:1000"))
	// same host, new port
	assert.Equal(t, http.StatusTooManyRequests, serve("192.0.2.1:2000"))
	assert.Equal(t, http.StatusNoContent, serve("192.0.2.2:1000"))
	assert.Equal(t, DefaultClientTTL, rl.ttl)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "INFO", levelFor(http.StatusOK).String())
	assert.Equal(t, "WARN", levelFor(http.StatusTooManyRequests).String())
	assert.Equal(t, "ERROR", levelFor(http.StatusInternalServerError).String())
}
