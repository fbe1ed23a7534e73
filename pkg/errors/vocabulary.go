package errors

// Domain errors — the stable vocabulary of §6.1/§7. Handlers pass these
// straight through to the wire; nothing else may reach a client verbatim.
var (
	ErrUnauthorized         = Unauthorized("unauthorized", "missing or malformed authorization header")
	ErrInvalidToken         = Unauthorized("invalid_token", "invalid or expired bearer token")
	ErrMissingFields        = InvalidArg("missing_fields", "one or more required fields are missing")
	ErrInvalidKeyLength     = InvalidArg("invalid_key_length", "public key must be exactly 32 bytes")
	ErrInvalidSPKSignature  = InvalidArg("invalid_signed_prekey_signature", "signed prekey signature does not verify under the identity key")
	ErrInvalidOrExpiredChal = Unauthorized("invalid_or_expired_challenge", "challenge is unknown, already used, or expired")
	ErrInvalidSignature     = Unauthorized("invalid_signature", "signature verification failed")
	ErrAccountNotFound      = NotFound("account_not_found", "no such account")
	ErrAlreadyRegistered    = AlreadyExists("already_registered", "an account with this identity key already exists")
	ErrRecipientNotFound    = NotFound("recipient_not_found", "recipient account does not exist")
	ErrMessageNotFound      = NotFound("message_not_found", "no such message for this account")
	ErrMessageTooLarge      = PayloadTooLarge("message_too_large", "ciphertext exceeds the maximum payload size")
	ErrTooManyPrekeys       = InvalidArg("too_many_prekeys", "one-time prekey batch must contain between 1 and 200 keys")
	ErrRateLimitExceeded    = RateLimited("rate_limit_exceeded", "too many requests for this credential")
)

// ErrInternal wraps an unexpected failure behind the generic internal_error
// slug so nothing implementation-specific ever reaches a client.
func ErrInternal(cause error) error {
	return Wrap(CodeInternal, "internal_error", "internal error", cause)
}
