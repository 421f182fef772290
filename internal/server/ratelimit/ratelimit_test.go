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

// fakeClock is advanced manually by tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

func TestTokenBucket_TakeAndRefill(t *testing.T) {
	now := time.Now()
	bucket := newTokenBucket(3, 1.0, now)

	for i := 0; i < 3; i++ {
		allowed, _, _, _ := bucket.take(now)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}
	allowed, remaining, reset, retry := bucket.take(now)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, now.Add(3*time.Second), reset)
	assert.Equal(t, time.Second, retry)

	allowed, _, _, _ = bucket.take(now.Add(1100 * time.Millisecond))
	assert.True(t, allowed, "one token should have refilled")
}

func TestTokenBucket_NeverExceedsCapacity(t *testing.T) {
	now := time.Now()
	bucket := newTokenBucket(2, 10.0, now)

	_, remaining, _, _ := bucket.take(now.Add(time.Hour))
	assert.Equal(t, 1, remaining)
}

func TestLimiter_Allow(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/score", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/score", "POST")
	assert.False(t, allowed)
	assert.InDelta(t, 12.0, info.RetryAfter.Seconds(), 0.001)
	assert.InDelta(t, 60.0, info.ResetTime.Sub(clock.Now()).Seconds(), 0.001)

	clock.Advance(13 * time.Second)
	allowed, _ = l.Allow("127.0.0.1", "/score", "POST")
	assert.True(t, allowed)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/score", Method: "POST", Limit: 1, Window: time.Minute},
			{Path: "/explain", Method: "POST", Limit: 1, Window: time.Minute},
			{Path: "/score", Method: "GET", Limit: 1, Window: time.Minute},
		},
	})

	allowed, _ := l.Allow("a", "/score", "POST")
	assert.True(t, allowed)
	allowed, _ = l.Allow("a", "/score", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/score", "POST")
	assert.True(t, allowed, "other client")
	allowed, _ = l.Allow("a", "/explain", "POST")
	assert.True(t, allowed, "other endpoint")
	allowed, _ = l.Allow("a", "/score", "GET")
	assert.True(t, allowed, "other method")
}

func TestLimiter_PrefixSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/resumes/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		},
	})

	allowedCount := 0
	for i := 0; i < 100; i++ {
		path := fmt.Sprintf("/resumes/%08d-0000-0000-0000-000000000000/comparisons", i)
		if ok, _ := l.Allow("5.6.7.8", path, "POST"); ok {
			allowedCount++
		}
	}
	assert.Equal(t, 20, allowedCount)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	_, ok := l.buckets["5.6.7.8:/resumes/:POST"]
	assert.True(t, ok)
}

func TestLimiter_UnmatchedPathsShareDefaultBucket(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 3, DefaultWindow: time.Minute})

	allowedCount := 0
	for i := 0; i < 10; i++ {
		if ok, _ := l.Allow("c", fmt.Sprintf("/junk/%d", i), "GET"); ok {
			allowedCount++
		}
	}
	assert.Equal(t, 3, allowedCount)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/score", "POST")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("10.0.0.2", "/score", "POST")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("c", "/score", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	cfg := DefaultConfig()
	l, _ := newTestLimiter(t, cfg)

	// /jobs/scrape has a burst of 5
	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("c", "/jobs/scrape", "POST")
		require.True(t, allowed)
		assert.Equal(t, 20, info.Limit)
	}
	allowed, _ := l.Allow("c", "/jobs/scrape", "POST")
	assert.False(t, allowed)

	// health is unlimited
	for i := 0; i < 1000; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})

	var allowedCount atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/score", "POST"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), allowedCount.Load())
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		IdleTimeout:   time.Hour,
	})

	for i := 0; i < 3; i++ {
		l.Allow(fmt.Sprintf("client-%d", i), "/score", "POST")
	}
	clock.Advance(2 * time.Hour)
	l.Allow("fresh", "/score", "POST")

	l.cleanup()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.buckets, 1)
	_, ok := l.buckets["fresh:default:POST"]
	assert.True(t, ok)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	l.Stop()

	assert.True(t, l.config.Enabled)
	assert.Equal(t, 600, l.config.DefaultLimit)
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method string
		wantPath     string
	}{
		{"/resumes", "POST", "/resumes"},
		{"/resumes/123/comparisons", "POST", "/resumes/"},
		{"/resumes", "GET", ""},
		{"/jobs/scrape", "POST", "/jobs/scrape"},
		{"/score", "POST", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantPath == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2,")
	t.Setenv("RATE_LIMIT_BLACKLIST", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"1.1.1.1": true, "2.2.2.2": true}, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
