package simulate_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tracketo/storefront/internal/simulate"
)

func TestLatency_ZeroIsImmediate(t *testing.T) {
	start := time.Now()
	assert.NoError(t, simulate.Latency(context.Background(), 0))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestLatency_Blocks(t *testing.T) {
	start := time.Now()
	assert.NoError(t, simulate.Latency(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestLatency_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := simulate.Latency(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
