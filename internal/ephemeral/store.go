// Package ephemeral is the Ephemeral Store (C2, §4.2): short-TTL keyed
// values for auth nonces and rate-limit counters. GetAndDelete is the
// correctness pivot for challenge consumption (P3) — it must be a single
// atomic operation so a stolen challenge can never be replayed.
package ephemeral

import (
	"context"
	"time"
)

type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// GetAndDelete atomically reads and removes key. ok is false if the
	// key was absent (already consumed, or never set, or expired).
	GetAndDelete(ctx context.Context, key string) (value string, ok bool, err error)

	// IncrWithWindow increments the counter at key and returns the new
	// count, arming a TTL of window only the first time the key is seen
	// within its current window.
	IncrWithWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}
