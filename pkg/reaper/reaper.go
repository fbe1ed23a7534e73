// Package reaper runs the periodic Durable Store cleanup named in §4.5 and
// §9 (the source left reaper scheduling unwired; this resolves it in favor
// of an in-process ticker rather than requiring an external cron).
package reaper

import (
	"context"
	"time"

	"hush/pkg/logger"
)

// MessageReaper deletes expired queue rows; TokenReaper deletes expired
// revocation records. Both are satisfied by the account/message
// repositories without either package importing this one.
type MessageReaper interface {
	Reap(ctx context.Context, now time.Time) (int64, error)
}

type TokenReaper interface {
	ReapRevokedTokens(ctx context.Context, now time.Time) (int64, error)
}

type Reaper struct {
	tokens   TokenReaper
	queue    MessageReaper
	interval time.Duration
	logger   *logger.Logger
}

func New(queue MessageReaper, tokens TokenReaper, interval time.Duration, log *logger.Logger) *Reaper {
	return &Reaper{queue: queue, tokens: tokens, interval: interval, logger: log}
}

// Run blocks, reaping on every tick until ctx is canceled. Intended to be
// launched as its own goroutine from cmd/server (hourly by default, §4.5).
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reapOnce(ctx)
		}
	}
}

func (r *Reaper) reapOnce(ctx context.Context) {
	now := time.Now()

	if n, err := r.queue.Reap(ctx, now); err != nil {
		r.logger.Error("reaper: message reap failed", "err", err)
	} else if n > 0 {
		r.logger.Info("reaper: expired messages removed", "count", n)
	}

	if n, err := r.tokens.ReapRevokedTokens(ctx, now); err != nil {
		r.logger.Error("reaper: token reap failed", "err", err)
	} else if n > 0 {
		r.logger.Info("reaper: expired revocations removed", "count", n)
	}
}
