package model

import (
	"time"

	"github.com/google/uuid"
)

// SignedPreKey is the account's single medium-term key (§3). Rotation
// replaces it in place; there is never more than one row per account.
type SignedPreKey struct {
	AccountID uuid.UUID `bun:",pk,type:uuid"`
	Account   *Account  `bun:"rel:belongs-to,join:account_id=id"`

	KeyID     uint32 `bun:",notnull"`
	PublicKey []byte `bun:",notnull"` // 32 bytes
	Signature []byte `bun:",notnull"` // 64 bytes, verifiable under Account.IdentityPublicKey

	UploadedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// OneTimePreKey is consumed exactly once by a bundle fetch (P2). Deleted on
// consumption, not merely flagged, so CountRemainingOneTimePreKeys never
// has to filter a used column.
type OneTimePreKey struct {
	ID        int64     `bun:",pk,autoincrement"`
	AccountID uuid.UUID `bun:",notnull,type:uuid,unique:account_key_id"`
	Account   *Account  `bun:"rel:belongs-to,join:account_id=id"`

	KeyID     uint32 `bun:",notnull,unique:account_key_id"`
	PublicKey []byte `bun:",notnull"` // 32 bytes

	UploadedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// RevokedToken is a tombstone: presence of a row for a token id means the
// token must be rejected regardless of its own expiry claim (§3).
type RevokedToken struct {
	TokenID   uuid.UUID `bun:",pk,type:uuid"`
	ExpiresAt time.Time `bun:",notnull"`
}
