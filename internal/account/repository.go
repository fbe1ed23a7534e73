package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hush/internal/account/model"
)

// Repository is the Durable Store's account-facing contract (C1, §4.1).
// Every mutating method that touches more than one table opens its own
// transaction internally; callers never see a bun.Tx.
type Repository interface {
	Register(ctx context.Context, account *model.Account, spk *model.SignedPreKey, otpks []model.OneTimePreKey) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetByIdentityKey(ctx context.Context, identityKey []byte) (*model.Account, error)

	UpsertSignedPreKey(ctx context.Context, spk *model.SignedPreKey) error
	GetSignedPreKey(ctx context.Context, accountID uuid.UUID) (*model.SignedPreKey, error)

	UploadOneTimePreKeys(ctx context.Context, accountID uuid.UUID, keys []model.OneTimePreKey) (uploaded, total int, err error)
	CountRemainingOneTimePreKeys(ctx context.Context, accountID uuid.UUID) (int, error)

	// FetchBundle performs the whole consumption algorithm of §4.4 in one
	// transaction: read identity + signed prekey, SELECT ... FOR UPDATE
	// SKIP LOCKED the oldest unused one-time prekey, delete it if found.
	FetchBundle(ctx context.Context, accountID uuid.UUID, refillThreshold int) (*model.Bundle, error)

	Delete(ctx context.Context, id uuid.UUID) error

	IsTokenRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error)
	RevokeToken(ctx context.Context, tokenID uuid.UUID, expiresAt time.Time) error
}
