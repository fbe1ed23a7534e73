// Package ratelimit is the privacy-preserving request limiter of §1/§6.1:
// keyed on a hash of the bearer credential, never on IP or account, with an
// explicit exemption for the health path.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"hush/internal/ephemeral"
	apierrors "hush/pkg/errors"
)

const window = 60 * time.Second

// Middleware enforces maxPerWindow requests per credential-hash within a
// 60-second sliding window (§6.3's max-requests-per-minute). /health is
// exempt and must be routed outside this middleware's mount point.
func Middleware(store ephemeral.Store, maxPerWindow int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + credentialHash(r)

			count, err := store.IncrWithWindow(r.Context(), key, window)
			if err != nil {
				// A limiter outage must not become an outage for the
				// service it protects; fail open and let the request
				// through.
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(maxPerWindow) {
				ae, _ := apierrors.As(apierrors.ErrRateLimitExceeded)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"` + ae.Slug + `"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// credentialHash never derives from the request's network origin — only
// from the bearer credential presented, or the literal string "anonymous"
// when none was (§1, §8 scenario 6: rate-limit is per-credential, not
// per-IP or per-connection).
func credentialHash(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "anonymous"
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "anonymous"
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
