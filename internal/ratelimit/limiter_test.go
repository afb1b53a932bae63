package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_New(t *testing.T) {
	limiter := New(10, time.Second)

	assert.NotNil(t, limiter)
}

func TestLimiter_Allow(t *testing.T) {
	limiter := New(5, time.Second)

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow(1), "request %d should be allowed", i+1)
	}

	assert.False(t, limiter.Allow(1), "request 6 should be blocked")
}

func TestLimiter_Allow_Weighted(t *testing.T) {
	limiter := New(10, time.Second)

	assert.True(t, limiter.Allow(5))
	assert.True(t, limiter.Allow(5))
	assert.False(t, limiter.Allow(5), "budget exhausted")
}

func TestLimiter_Wait(t *testing.T) {
	limiter := New(5, 100*time.Millisecond)

	for i := 0; i < 5; i++ {
		err := limiter.Wait(context.Background(), 1)
		assert.NoError(t, err)
	}
}

func TestLimiter_Wait_ContextCancellation(t *testing.T) {
	limiter := New(1, time.Second)

	err := limiter.Wait(context.Background(), 1)
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = limiter.Wait(ctx, 1)
	assert.Error(t, err)
}

func TestLimiter_SetLimit(t *testing.T) {
	limiter := New(1, time.Second)
	assert.True(t, limiter.Allow(1))
	assert.False(t, limiter.Allow(1))

	limiter.SetLimit(100, time.Second)
	assert.True(t, limiter.Allow(10))
}

func TestLimiter_Metrics(t *testing.T) {
	limiter := New(2, time.Second)

	limiter.Allow(1)
	limiter.Allow(1)
	limiter.Allow(1)

	snapshot := limiter.Metrics()
	assert.Equal(t, int64(3), snapshot.TotalRequests)
	assert.Equal(t, int64(1), snapshot.DeniedRequests)
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter := New(100, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				limiter.Allow(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), limiter.Metrics().TotalRequests)
}
