package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	apierrors "hush/pkg/errors"
)

type contextKey int

const accountIDKey contextKey = iota

// AccountID extracts the opaque account handle a prior call to Middleware
// attached to the request context (§4.3, §9's plain-parameter guidance —
// this is the one thread-local-shaped exception the net/http handler
// signature forces on every Go server, kept to exactly one value).
func AccountID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey).(uuid.UUID)
	return id, ok
}

// Middleware validates the Authorization header, rejects missing/malformed
// headers and invalid/expired/revoked tokens with 401, and attaches the
// resolved account id to the request context.
func Middleware(issuer *Issuer, revocation RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if header == "" || !strings.HasPrefix(header, prefix) {
				writeUnauthorized(w, apierrors.ErrUnauthorized)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
			if token == "" {
				writeUnauthorized(w, apierrors.ErrUnauthorized)
				return
			}

			claims, err := issuer.VerifyAndCheckRevocation(r.Context(), token, revocation)
			if err != nil {
				writeUnauthorized(w, apierrors.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	ae, _ := apierrors.As(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + ae.Slug + `"}`))
}
