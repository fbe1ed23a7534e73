package account

import "github.com/google/uuid"

// RegisterCommand travels from the transport layer into the usecase (the
// teacher's handler -> usecase.Command convention, generalized).
type RegisterCommand struct {
	IdentityPublicKey []byte
	RegistrationID    uint32
	SignedPreKey      SignedPreKeyUpload
	OneTimePreKeys    []OneTimePreKeyUpload
}

type SignedPreKeyUpload struct {
	KeyID     uint32
	PublicKey []byte
	Signature []byte
}

type OneTimePreKeyUpload struct {
	KeyID     uint32
	PublicKey []byte
}

type RegisterResult struct {
	AccountID uuid.UUID
}

type VerifyResult struct {
	Token     string
	AccountID uuid.UUID
}

type BundleResult struct {
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

type ReplenishResult struct {
	Uploaded int
	Total    int
}
