package httpapi

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hush/internal/auth"
	"hush/internal/message"
	apierrors "hush/pkg/errors"
)

type MessageHandlers struct {
	usecase *message.Usecase
}

func NewMessageHandlers(usecase *message.Usecase) *MessageHandlers {
	return &MessageHandlers{usecase: usecase}
}

func (h *MessageHandlers) Send(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.AccountID(r.Context()); !ok {
		writeError(w, apierrors.ErrUnauthorized)
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		writeError(w, apierrors.ErrRecipientNotFound)
		return
	}

	ciphertext, err := hex.DecodeString(req.Ciphertext)
	if err != nil {
		writeError(w, apierrors.ErrMissingFields)
		return
	}

	var tag uint8
	if req.MessageType != nil {
		tag = *req.MessageType
	}

	id, err := h.usecase.Send(r.Context(), message.SendCommand{
		RecipientID: recipientID,
		Ciphertext:  ciphertext,
		Tag:         tag,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sendResponse{MessageID: id.String()})
}

// Receive is deliberately the only handler that reads AccountID as the
// recipient — the authenticated caller can only ever drain their own
// queue, never anyone else's (§4.5).
func (h *MessageHandlers) Receive(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		writeError(w, apierrors.ErrUnauthorized)
		return
	}

	envelopes, err := h.usecase.Drain(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}

	payload := make([]messagePayload, 0, len(envelopes))
	for _, e := range envelopes {
		payload = append(payload, messagePayload{
			ID:          e.ID.String(),
			Ciphertext:  hex.EncodeToString(e.Ciphertext),
			MessageType: e.Tag,
		})
	}

	writeJSON(w, http.StatusOK, receiveResponse{Messages: payload})
}

func (h *MessageHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		writeError(w, apierrors.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apierrors.ErrMessageNotFound)
		return
	}

	if err := h.usecase.Delete(r.Context(), id, accountID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Deleted: true})
}
