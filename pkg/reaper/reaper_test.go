package reaper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/pkg/logger"
)

func newSilentLogger(t *testing.T) (*logger.Logger, error) {
	t.Helper()
	return logger.NewLogger(logger.LoggerMode{Level: "none"})
}

type countingQueue struct {
	calls int32
	n     int64
	err   error
}

func (c *countingQueue) Reap(ctx context.Context, now time.Time) (int64, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.n, c.err
}

type countingTokens struct {
	calls int32
	n     int64
	err   error
}

func (c *countingTokens) ReapRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.n, c.err
}

func TestReaper_RunReapsOnEveryTickUntilCanceled(t *testing.T) {
	queue := &countingQueue{n: 3}
	tokens := &countingTokens{n: 1}
	log, err := newSilentLogger(t)
	require.NoError(t, err)

	r := New(queue, tokens, 10*time.Millisecond, log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	r.Run(ctx)

	assert.GreaterOrEqual(t, atomic.LoadInt32(&queue.calls), int32(2))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&tokens.calls), int32(2))
}

func TestReaper_ReapOnceToleratesEitherSideFailing(t *testing.T) {
	queue := &countingQueue{err: assert.AnError}
	tokens := &countingTokens{n: 1}
	log, err := newSilentLogger(t)
	require.NoError(t, err)

	r := New(queue, tokens, time.Hour, log)

	assert.NotPanics(t, func() { r.reapOnce(context.Background()) })
	assert.Equal(t, int32(1), atomic.LoadInt32(&queue.calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokens.calls))
}
