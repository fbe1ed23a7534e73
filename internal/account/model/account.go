package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is the durable identity anchor of §3. It carries no attribute
// that could correlate a request to a network origin or wall-clock time
// other than CreatedAt, which exists only to schedule key rotation.
type Account struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	// IdentityPublicKey is the account's immutable long-term Ed25519 key.
	IdentityPublicKey []byte `bun:",unique,notnull"` // 32 bytes

	// RegistrationID is client-chosen and opaque to the server; it feeds
	// the client-side ratchet only.
	RegistrationID uint32 `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
