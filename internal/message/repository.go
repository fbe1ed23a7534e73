package message

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hush/internal/message/model"
)

// Repository is the Durable Store's queue-facing contract (C1, §4.1/§4.5).
type Repository interface {
	Insert(ctx context.Context, msg *model.QueuedCiphertext) error
	AccountExists(ctx context.Context, accountID uuid.UUID) (bool, error)

	// Drain returns up to limit rows for recipientID in ascending id order.
	Drain(ctx context.Context, recipientID uuid.UUID, limit int) ([]model.QueuedCiphertext, error)

	// Delete removes the row only if it belongs to recipientID (P4); it
	// reports whether a row was actually deleted.
	Delete(ctx context.Context, id, recipientID uuid.UUID) (bool, error)

	// Reap deletes every row whose expiry is before now (P6).
	Reap(ctx context.Context, now time.Time) (int64, error)
}
