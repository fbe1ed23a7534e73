package httpapi

// Request/response schemas for §6.1. Binary fields are lowercase hex on
// the wire; decoding happens once at the boundary so the core usecases
// never see untyped JSON (§9's re-architecture guidance).

type registerRequest struct {
	PublicKey        string                    `json:"public_key"`
	RegistrationID   uint32                    `json:"registration_id"`
	SignedPreKey     signedPreKeyUploadRequest `json:"signed_prekey"`
	OneTimePreKeys   []oneTimePreKeyRequest    `json:"one_time_prekeys"`
}

type signedPreKeyUploadRequest struct {
	KeyID     uint32 `json:"key_id"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type oneTimePreKeyRequest struct {
	KeyID     uint32 `json:"key_id"`
	PublicKey string `json:"public_key"`
}

type registerResponse struct {
	AccountID string `json:"account_id"`
}

type challengeRequest struct {
	PublicKey string `json:"public_key"`
}

type challengeResponse struct {
	Nonce string `json:"nonce"`
}

type verifyRequest struct {
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type verifyResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
}

type bundleResponse struct {
	Bundle              bundlePayload `json:"bundle"`
	PreKeyCount         int           `json:"prekey_count"`
	NeedsPreKeyRefresh  bool          `json:"needs_prekey_refresh"`
}

type bundlePayload struct {
	AccountID             string  `json:"account_id"`
	IdentityKey           string  `json:"identity_key"`
	RegistrationID        uint32  `json:"registration_id"`
	SignedPreKeyID        uint32  `json:"signed_prekey_id"`
	SignedPreKey          string  `json:"signed_prekey"`
	SignedPreKeySignature string  `json:"signed_prekey_signature"`
	OneTimePreKeyID       *uint32 `json:"one_time_prekey_id"`
	OneTimePreKey         *string `json:"one_time_prekey"`
}

type replenishRequest struct {
	OneTimePreKeys []oneTimePreKeyRequest `json:"one_time_prekeys"`
}

type replenishResponse struct {
	Uploaded int `json:"uploaded"`
	Total    int `json:"total"`
}

type rotateSignedPreKeyRequest struct {
	KeyID     uint32 `json:"key_id"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type rotateSignedPreKeyResponse struct {
	Updated bool `json:"updated"`
}

type sendRequest struct {
	RecipientID string `json:"recipient_id"`
	Ciphertext  string `json:"ciphertext"`
	MessageType *uint8 `json:"message_type,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

type receiveResponse struct {
	Messages []messagePayload `json:"messages"`
}

type messagePayload struct {
	ID          string `json:"id"`
	Ciphertext  string `json:"ciphertext"`
	MessageType uint8  `json:"message_type"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

type prekeyCountResponse struct {
	Total int `json:"total"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type logoutResponse struct {
	LoggedOut bool `json:"logged_out"`
}
