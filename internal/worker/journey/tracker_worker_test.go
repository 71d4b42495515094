package journey_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/journey-microservice/internal/worker/journey"
)

type countingTicker struct {
	ticks int64
}

func (c *countingTicker) Tick(ctx context.Context) {
	atomic.AddInt64(&c.ticks, 1)
}

func (c *countingTicker) count() int64 {
	return atomic.LoadInt64(&c.ticks)
}

func TestTrackerWorker_PollsUntilStopped(t *testing.T) {
	ticker := &countingTicker{}
	w := journey.NewTrackerWorker(ticker, 10*time.Millisecond, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	assert.Eventually(t, func() bool {
		return ticker.count() >= 3
	}, time.Second, 5*time.Millisecond, "worker should keep polling")

	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	stopped := ticker.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, ticker.count(), "no ticks after stop")
}

func TestTrackerWorker_StopsOnContextCancel(t *testing.T) {
	ticker := &countingTicker{}
	w := journey.NewTrackerWorker(ticker, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func TestTrackerWorker_DefaultsPollInterval(t *testing.T) {
	w := journey.NewTrackerWorker(&countingTicker{}, 0, zap.NewNop())
	assert.Equal(t, "journey-tracker", w.Name())
}
