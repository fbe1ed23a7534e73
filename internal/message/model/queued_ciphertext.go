package model

import (
	"time"

	"github.com/google/uuid"
)

// Tag classification values (§3).
const (
	TagInitialX3DH        uint8 = 1
	TagEstablishedSession uint8 = 2
)

const MaxCiphertextBytes = 262144

// QueuedCiphertext is the sealed message queue's only row shape. It holds
// no sender attribute anywhere — not a nullable column, not an index, not
// a foreign key — sealed-sender is structural, not optional (P1).
//
// ID is a UUIDv7 minted by the application (not the database's
// gen_random_uuid(), which is v4 and unordered): its leading 48 bits are a
// millisecond timestamp, so ascending-id order is ascending arrival order
// even under concurrent inserts across connections, giving the stable
// delivery order §5 requires without a separate sequence.
type QueuedCiphertext struct {
	ID          uuid.UUID `bun:",pk,type:uuid"`
	RecipientID uuid.UUID `bun:",notnull,type:uuid"`
	Ciphertext  []byte    `bun:",notnull"`
	Tag         uint8     `bun:",notnull"`
	ExpiresAt   time.Time `bun:",notnull"`
}
