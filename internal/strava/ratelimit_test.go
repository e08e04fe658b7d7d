package strava

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterCountsRequests(t *testing.T) {
	r := NewRateLimiterWithLimits(Limits{Short: 10, ShortWindow: time.Minute, Daily: 100})

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Wait(context.Background()))
	}
	short, daily := r.Usage()
	assert.Equal(t, 3, short)
	assert.Equal(t, 3, daily)

	shortLeft, dailyLeft := r.Status()
	assert.Equal(t, 7, shortLeft)
	assert.Equal(t, 97, dailyLeft)
}

func TestRateLimiterHonorsContextWhenExhausted(t *testing.T) {
	r := NewRateLimiterWithLimits(Limits{Short: 1, ShortWindow: time.Hour, Daily: 100})
	require.NoError(t, r.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestUpdateFromHeaders(t *testing.T) {
	r := NewRateLimiter()

	h := http.Header{}
	h.Set("X-RateLimit-Usage", "34, 512")
	h.Set("X-RateLimit-Limit", "600,30000")
	r.UpdateFromHeaders(h)

	short, daily := r.Status()
	assert.Equal(t, 566, short)
	assert.Equal(t, 29488, daily)

	// Malformed headers are ignored
	h.Set("X-RateLimit-Usage", "garbage")
	r.UpdateFromHeaders(h)
	su, du := r.Usage()
	assert.Equal(t, 34, su)
	assert.Equal(t, 512, du)
}
