package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRateLimitType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/ping", RateLimitTypeHealth},
		{"/status", RateLimitTypeHealth},
		{"/api/v1/auth/login", RateLimitTypeAuth},
		{"/api/v1/auth/register", RateLimitTypeAuth},
		{"/api/v1/transactions", RateLimitTypeTransaction},
		{"/api/v1/transactions/:id", RateLimitTypeTransaction},
		{"/api/v1/users", RateLimitTypeUser},
		{"/some/other/route", RateLimitTypeDefault},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, getRateLimitType(tc.path), "path %s", tc.path)
	}
}

func TestIsAllowedShortCircuits(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, &Config{
		Enabled:         false,
		WindowDuration:  time.Minute,
		DefaultRequests: 100,
	})

	// Disabled limiter approves without touching redis (client is nil)
	result, err := limiter.IsAllowed(context.Background(), "192.0.2.1", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 100, result.Limit)
}

func TestIsAllowedWhitelist(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 100,
		WhitelistedIPs:  []string{"192.0.2.10"},
	})

	result, err := limiter.IsAllowed(context.Background(), "192.0.2.10", RateLimitTypeDefault)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestIsAllowedCountsSameSecondRequests(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewRateLimiter(client, &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 5,
	})

	ctx := context.Background()

	// A burst inside a single second must leave one window entry per
	// request, not collapse them into one
	for i := 0; i < 3; i++ {
		result, err := limiter.IsAllowed(ctx, "192.0.2.20", RateLimitTypeDefault)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	}

	entries, err := client.ZCard(ctx, "ledgerly:ratelimit:192.0.2.20:default").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(3), entries)
}

func TestGetLimitPerType(t *testing.T) {
	t.Parallel()

	limiter := NewRateLimiter(nil, &Config{
		Enabled:             true,
		DefaultRequests:     100,
		AuthRequests:        10,
		UserRequests:        50,
		TransactionRequests: 60,
		HealthRequests:      300,
	})

	assert.Equal(t, 10, limiter.getLimit(RateLimitTypeAuth))
	assert.Equal(t, 50, limiter.getLimit(RateLimitTypeUser))
	assert.Equal(t, 60, limiter.getLimit(RateLimitTypeTransaction))
	assert.Equal(t, 300, limiter.getLimit(RateLimitTypeHealth))
	assert.Equal(t, 100, limiter.getLimit(RateLimitTypeDefault))
	assert.Equal(t, 100, limiter.getLimit(RateLimitType("unknown")))
}
