package httpapi

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hush/internal/account"
	"hush/internal/auth"
	apierrors "hush/pkg/errors"
)

type AccountHandlers struct {
	usecase *account.Usecase
	issuer  *auth.Issuer
}

func NewAccountHandlers(usecase *account.Usecase, issuer *auth.Issuer) *AccountHandlers {
	return &AccountHandlers{usecase: usecase, issuer: issuer}
}

func (h *AccountHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	pub, err := hex.DecodeString(req.PublicKey)
	if err != nil {
		writeError(w, apierrors.ErrInvalidKeyLength)
		return
	}
	spkPub, err := hex.DecodeString(req.SignedPreKey.PublicKey)
	if err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}
	spkSig, err := hex.DecodeString(req.SignedPreKey.Signature)
	if err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	otpks := make([]account.OneTimePreKeyUpload, 0, len(req.OneTimePreKeys))
	for _, k := range req.OneTimePreKeys {
		pub, err := hex.DecodeString(k.PublicKey)
		if err != nil {
			writeError(w, apierrors.ErrMissingFields)
			return
		}
		otpks = append(otpks, account.OneTimePreKeyUpload{KeyID: k.KeyID, PublicKey: pub})
	}

	result, err := h.usecase.Register(r.Context(), account.RegisterCommand{
		IdentityPublicKey: pub,
		RegistrationID:    req.RegistrationID,
		SignedPreKey: account.SignedPreKeyUpload{
			KeyID:     req.SignedPreKey.KeyID,
			PublicKey: spkPub,
			Signature: spkSig,
		},
		OneTimePreKeys: otpks,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{AccountID: result.AccountID.String()})
}

func (h *AccountHandlers) Challenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	pub, err := hex.DecodeString(req.PublicKey)
	if err != nil {
		writeError(w, apierrors.ErrInvalidKeyLength)
		return
	}

	nonce, err := h.usecase.Challenge(r.Context(), pub)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, challengeResponse{Nonce: nonce})
}

func (h *AccountHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	pub, err := hex.DecodeString(req.PublicKey)
	if err != nil {
		writeError(w, apierrors.ErrInvalidKeyLength)
		return
	}
	sig, err := hex.DecodeString(req.Signature)
	if err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	result, err := h.usecase.Verify(r.Context(), pub, sig)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{Token: result.Token, AccountID: result.AccountID.String()})
}

func (h *AccountHandlers) FetchBundle(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "account_id"))
	if err != nil {
		writeError(w, apierrors.ErrAccountNotFound)
		return
	}

	bundle, err := h.usecase.FetchBundle(r.Context(), targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := bundlePayload{
		AccountID:             targetID.String(),
		IdentityKey:           hex.EncodeToString(bundle.IdentityKey),
		RegistrationID:        bundle.RegistrationID,
		SignedPreKeyID:        bundle.SignedPreKeyID,
		SignedPreKey:          hex.EncodeToString(bundle.SignedPreKey),
		SignedPreKeySignature: hex.EncodeToString(bundle.SignedPreKeySig),
	}
	if bundle.OneTimePreKeyID != nil {
		payload.OneTimePreKeyID = bundle.OneTimePreKeyID
		encoded := hex.EncodeToString(bundle.OneTimePreKey)
		payload.OneTimePreKey = &encoded
	}

	writeJSON(w, http.StatusOK, bundleResponse{
		Bundle:             payload,
		PreKeyCount:        bundle.RemainingCount,
		NeedsPreKeyRefresh: bundle.NeedsRefresh,
	})
}

func (h *AccountHandlers) ReplenishPreKeys(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		writeError(w, apierrors.ErrUnauthorized)
		return
	}

	var req replenishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	uploads := make([]account.OneTimePreKeyUpload, 0, len(req.OneTimePreKeys))
	for _, k := range req.OneTimePreKeys {
		pub, err := hex.DecodeString(k.PublicKey)
		if err != nil {
			writeError(w, apierrors.ErrMissingFields)
			return
		}
		uploads = append(uploads, account.OneTimePreKeyUpload{KeyID: k.KeyID, PublicKey: pub})
	}

	result, err := h.usecase.ReplenishOneTimePreKeys(r.Context(), accountID, uploads)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, replenishResponse{Uploaded: result.Uploaded, Total: result.Total})
}

func (h *AccountHandlers) RotateSignedPreKey(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		writeError(w, apierrors.ErrUnauthorized)
		return
	}

	var req rotateSignedPreKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	pub, err := hex.DecodeString(req.PublicKey)
	if err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}
	sig, err := hex.DecodeString(req.Signature)
	if err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	err = h.usecase.RotateSignedPreKey(r.Context(), accountID, account.SignedPreKeyUpload{
		KeyID:     req.KeyID,
		PublicKey: pub,
		Signature: sig,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rotateSignedPreKeyResponse{Updated: true})
}

func (h *AccountHandlers) PreKeyCount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		writeError(w, apierrors.ErrUnauthorized)
		return
	}

	count, err := h.usecase.GetRemainingOneTimePreKeysCount(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prekeyCountResponse{Total: count})
}

func (h *AccountHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	token := header
	if len(header) > 7 && header[:7] == "Bearer " {
		token = header[7:]
	}

	claims, err := h.issuer.Verify(token)
	if err != nil {
		writeError(w, apierrors.ErrInvalidToken)
		return
	}

	if err := h.usecase.Logout(r.Context(), claims.TokenID, claims.ExpiresAt); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logoutResponse{LoggedOut: true})
}

func (h *AccountHandlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		writeError(w, apierrors.ErrUnauthorized)
		return
	}

	if err := h.usecase.DeleteAccount(r.Context(), accountID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Deleted: true})
}
