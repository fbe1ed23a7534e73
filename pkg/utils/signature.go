// Package utils holds the small cryptographic helpers shared across the
// account usecase: every Ed25519 signature check in the module — prekey
// signing, login challenge response, signed-prekey rotation — goes through
// the same verification path rather than each call site invoking
// crypto/ed25519 on its own.
package utils

import "crypto/ed25519"

// VerifySignature reports whether signature is a valid Ed25519 signature by
// signingPubKey over message. It never returns an error; a malformed key or
// signature length simply verifies false. The key length is checked here
// because ed25519.Verify panics on a wrong-length public key; it already
// returns false for a wrong-length signature.
func VerifySignature(signingPubKey, message, signature []byte) bool {
	return len(signingPubKey) == ed25519.PublicKeySize && ed25519.Verify(signingPubKey, message, signature)
}
