package httpapi

import (
	"encoding/json"
	"net/http"

	apierrors "hush/pkg/errors"
)

// writeError maps an *AppError's Code to the HTTP status of §7 and writes
// the stable {error: slug} envelope of §6.1. Anything that isn't an
// *AppError collapses to 500 internal_error — nothing else ever reaches
// the client verbatim.
func writeError(w http.ResponseWriter, err error) {
	ae, ok := apierrors.As(err)
	if !ok {
		ae = &apierrors.AppError{Code: apierrors.CodeInternal, Slug: "internal_error"}
	}

	status := http.StatusInternalServerError
	switch ae.Code {
	case apierrors.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apierrors.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apierrors.CodeNotFound, apierrors.CodePermissionDenied:
		// §7: authorization failures on another account's row are 404,
		// uniformly — never 403, so existence is never disclosed.
		status = http.StatusNotFound
	case apierrors.CodeAlreadyExists:
		status = http.StatusConflict
	case apierrors.CodePayloadTooLarge:
		status = http.StatusRequestEntityTooLarge
	case apierrors.CodeRateLimited:
		status = http.StatusTooManyRequests
	}

	writeJSON(w, status, ae)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
