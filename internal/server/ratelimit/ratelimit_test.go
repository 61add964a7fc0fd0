package ratelimit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func defaultOnly(limit int) *Config {
	return &Config{Enabled: true, DefaultLimit: limit, DefaultWindow: time.Minute}
}

func TestLimiter_AllowUpToBurst(t *testing.T) {
	l, _ := newTestLimiter(t, defaultOnly(10))

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/catalog", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/catalog", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.InDelta(t, 6*time.Second, info.RetryAfter, float64(time.Millisecond))
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, defaultOnly(10))

	for i := 0; i < 10; i++ {
		l.Allow("client", "/catalog", "GET")
	}
	allowed, _ := l.Allow("client", "/catalog", "GET")
	require.False(t, allowed)

	clock.Advance(7 * time.Second)
	allowed, _ = l.Allow("client", "/catalog", "GET")
	assert.True(t, allowed)

	allowed, _ = l.Allow("client", "/catalog", "GET")
	assert.False(t, allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, defaultOnly(1))

	allowed, _ := l.Allow("a", "/catalog", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/catalog", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/catalog", "GET")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := defaultOnly(1)
	cfg.Whitelist = map[string]bool{"10.0.0.1": true}
	cfg.Blacklist = map[string]bool{"10.0.0.2": true}
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/analyze", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.2", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false})

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("client", "/analyze", "POST")
		require.True(t, allowed)
	}
	assert.Zero(t, l.bucketCount())
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	cfg := defaultOnly(100)
	cfg.EndpointConfigs = DefaultEndpointConfigs()
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("client", "/analyze/upload", "POST")
		require.True(t, allowed)
		assert.Equal(t, 30, info.Limit)
	}
	allowed, _ := l.Allow("client", "/analyze/upload", "POST")
	assert.False(t, allowed, "upload burst should be exhausted")

	allowed, info := l.Allow("client", "/analyze", "POST")
	assert.True(t, allowed, "other endpoints keep their own bucket")
	assert.Equal(t, 120, info.Limit)

	allowed, info = l.Allow("client", "/catalog", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_UnmatchedPathsShareOneBucket(t *testing.T) {
	cfg := defaultOnly(3)
	cfg.EndpointConfigs = DefaultEndpointConfigs()
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 50; i++ {
		l.Allow("client", fmt.Sprintf("/random/%d", i), "GET")
	}
	assert.Equal(t, 1, l.bucketCount())

	allowed, _ := l.Allow("client", "/catalog", "GET")
	assert.False(t, allowed, "unknown paths drain the shared default bucket")

	allowed, _ = l.Allow("client", "/analyze", "POST")
	assert.True(t, allowed)
	l.Allow("client", "/analyze/upload", "POST")
	l.Allow("client", "/health", "GET")
	assert.Equal(t, 3, l.bucketCount())
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	cfg := defaultOnly(1)
	cfg.EndpointConfigs = DefaultEndpointConfigs()
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("client", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, defaultOnly(20))

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("client", "/analyze", "POST"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(20), allowedCount.Load())
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(t, defaultOnly(10))

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/analyze", "POST")
	}
	require.Equal(t, 3, l.bucketCount())

	clock.Advance(30 * time.Minute)
	l.Allow("client-0", "/analyze", "POST")
	clock.Advance(45 * time.Minute)
	l.cleanupBuckets()

	assert.Equal(t, 1, l.bucketCount())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, _ := l.Allow("client", "/analyze", "POST")
	assert.True(t, allowed)
	assert.True(t, l.config.Enabled)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Hour})

	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: 1},
		{Path: "/analyze/upload", Method: "POST", Limit: 2},
		{Path: "/files/", Method: "GET", Limit: 3},
		{Path: "/files/archive/", Method: "GET", Limit: 4},
		{Path: "/health", Method: "*", Limit: 0},
	}

	tests := []struct {
		name      string
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{name: "exact", path: "/analyze", method: "POST", wantLimit: 1},
		{name: "exact longer path", path: "/analyze/upload", method: "POST", wantLimit: 2},
		{name: "method is case-insensitive", path: "/analyze", method: "post", wantLimit: 1},
		{name: "prefix", path: "/files/a.txt", method: "GET", wantLimit: 3},
		{name: "longest prefix", path: "/files/archive/b.txt", method: "GET", wantLimit: 4},
		{name: "wildcard method", path: "/health", method: "HEAD", wantLimit: 0},
		{name: "method mismatch", path: "/analyze", method: "GET", wantNil: true},
		{name: "no prefix for exact entries", path: "/analyze/other", method: "POST", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfigFrom(t *testing.T) {
	env := map[string]string{
		"RATE_LIMIT_DEFAULT_LIMIT":  "50",
		"RATE_LIMIT_DEFAULT_WINDOW": "30s",
		"RATE_LIMIT_WHITELIST":      "10.0.0.1, 10.0.0.2 ,",
		"RATE_LIMIT_ANALYZE_LIMIT":  "7",
	}
	cfg := LoadConfigFrom(func(k string) string { return env[k] })

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)
	for _, ec := range cfg.EndpointConfigs {
		if ec.Path == "/health" {
			assert.Zero(t, ec.Limit)
			continue
		}
		assert.Equal(t, 7, ec.Limit, ec.Path)
	}
}

func TestLoadConfigFrom_Disabled(t *testing.T) {
	cfg := LoadConfigFrom(func(k string) string {
		if k == "RATE_LIMIT_ENABLED" {
			return "false"
		}
		return ""
	})

	assert.False(t, cfg.Enabled)
}

func TestLoadConfigFrom_InvalidValuesKeepDefaults(t *testing.T) {
	cfg := LoadConfigFrom(func(k string) string { return "not-a-number" })

	assert.Equal(t, DefaultConfig().DefaultLimit, cfg.DefaultLimit)
	assert.Equal(t, DefaultConfig().DefaultWindow, cfg.DefaultWindow)
}
