package message

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hush/internal/message/model"
	apierrors "hush/pkg/errors"
	"hush/pkg/logger"
)

const drainLimit = 100

// Notifier is the Notification Fabric's inbound edge from the relay's
// point of view (§4.5: "after a successful commit, invokes the
// Notification Fabric"). Defined here, not imported from internal/fabric,
// so message has no dependency on the socket layer at all; fabric.Hub
// satisfies it structurally without importing message either.
type Notifier interface {
	Notify(accountID uuid.UUID, payload any)
}

type SendCommand struct {
	RecipientID uuid.UUID
	Ciphertext  []byte
	Tag         uint8
}

type Envelope struct {
	ID         uuid.UUID
	Ciphertext []byte
	Tag        uint8
}

type Usecase struct {
	repo     Repository
	notifier Notifier
	logger   *logger.Logger
	ttl      time.Duration
}

func NewUsecase(repo Repository, notifier Notifier, log *logger.Logger, ttl time.Duration) *Usecase {
	return &Usecase{repo: repo, notifier: notifier, logger: log, ttl: ttl}
}

// Send validates recipient existence and payload size, inserts the row
// with no sender attribute, and fans out a metadata-only notification
// after the row is durably committed (§4.5, P1).
func (uc *Usecase) Send(ctx context.Context, cmd SendCommand) (uuid.UUID, error) {
	if cmd.RecipientID == uuid.Nil || len(cmd.Ciphertext) == 0 {
		return uuid.Nil, apierrors.ErrMissingFields
	}
	if len(cmd.Ciphertext) > model.MaxCiphertextBytes {
		return uuid.Nil, apierrors.ErrMessageTooLarge
	}

	tag := cmd.Tag
	if tag == 0 {
		tag = model.TagInitialX3DH
	}
	if tag != model.TagInitialX3DH && tag != model.TagEstablishedSession {
		return uuid.Nil, apierrors.ErrMissingFields
	}

	exists, err := uc.repo.AccountExists(ctx, cmd.RecipientID)
	if err != nil {
		uc.logger.Error("recipient lookup failed", "err", err)
		return uuid.Nil, apierrors.ErrInternal(err)
	}
	if !exists {
		return uuid.Nil, apierrors.ErrRecipientNotFound
	}

	id, err := uuid.NewV7()
	if err != nil {
		uc.logger.Error("message id generation failed", "err", err)
		return uuid.Nil, apierrors.ErrInternal(err)
	}

	msg := &model.QueuedCiphertext{
		ID:          id,
		RecipientID: cmd.RecipientID,
		Ciphertext:  cmd.Ciphertext,
		Tag:         tag,
		ExpiresAt:   time.Now().Add(uc.ttl),
	}
	if err := uc.repo.Insert(ctx, msg); err != nil {
		if isForeignKeyViolation(err) {
			return uuid.Nil, apierrors.ErrRecipientNotFound
		}
		uc.logger.Error("message insert failed", "err", err)
		return uuid.Nil, apierrors.ErrInternal(err)
	}

	if uc.notifier != nil {
		uc.notifier.Notify(cmd.RecipientID, map[string]any{
			"type":       "new_message",
			"message_id": msg.ID.String(),
		})
	}

	return msg.ID, nil
}

// Drain returns at most 100 queued entries for the authenticated recipient
// in stable ascending-id order, exposing nothing beyond id/ciphertext/tag
// (§4.5).
func (uc *Usecase) Drain(ctx context.Context, recipientID uuid.UUID) ([]Envelope, error) {
	rows, err := uc.repo.Drain(ctx, recipientID, drainLimit)
	if err != nil {
		uc.logger.Error("drain failed", "err", err)
		return nil, apierrors.ErrInternal(err)
	}

	envelopes := make([]Envelope, 0, len(rows))
	for _, r := range rows {
		envelopes = append(envelopes, Envelope{ID: r.ID, Ciphertext: r.Ciphertext, Tag: r.Tag})
	}
	return envelopes, nil
}

// Delete enforces cross-account isolation via the dual predicate alone —
// no separate authorization check exists or is needed (§4.5, P4).
func (uc *Usecase) Delete(ctx context.Context, id, recipientID uuid.UUID) error {
	deleted, err := uc.repo.Delete(ctx, id, recipientID)
	if err != nil {
		uc.logger.Error("message delete failed", "err", err)
		return apierrors.ErrInternal(err)
	}
	if !deleted {
		return apierrors.ErrMessageNotFound
	}
	return nil
}
