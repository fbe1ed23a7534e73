package model

import "github.com/google/uuid"

// Bundle is everything a sender needs to open an asynchronous session with
// an account (§4.4). OneTimePreKey is nil when the pool is exhausted — the
// documented lower-forward-secrecy degradation, not an error.
type Bundle struct {
	AccountID       uuid.UUID
	IdentityKey     []byte
	RegistrationID  uint32
	SignedPreKeyID  uint32
	SignedPreKey    []byte
	SignedPreKeySig []byte
	OneTimePreKeyID *uint32
	OneTimePreKey   []byte
	RemainingCount  int
	NeedsRefresh    bool
}
