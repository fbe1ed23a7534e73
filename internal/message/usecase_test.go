package message

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/internal/message/mocks"
	"hush/internal/message/model"
	apierrors "hush/pkg/errors"
	"hush/pkg/logger"
)

func newTestUsecase(t *testing.T) (*Usecase, *mocks.MockRepository, *mocks.MockNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	notifier := mocks.NewMockNotifier(ctrl)
	log, err := logger.NewLogger(logger.LoggerMode{Level: "none"})
	require.NoError(t, err)
	return NewUsecase(repo, notifier, log, 30*24*time.Hour), repo, notifier
}

func TestUsecase_Send(t *testing.T) {
	recipientID := uuid.New()

	t.Run("happy path fans out a metadata-only notification", func(t *testing.T) {
		uc, repo, notifier := newTestUsecase(t)
		repo.EXPECT().AccountExists(gomock.Any(), recipientID).Return(true, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		notifier.EXPECT().Notify(recipientID, gomock.Any())

		id, err := uc.Send(context.Background(), SendCommand{
			RecipientID: recipientID,
			Ciphertext:  []byte("sealed-bytes"),
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("missing fields", func(t *testing.T) {
		uc, _, _ := newTestUsecase(t)
		_, err := uc.Send(context.Background(), SendCommand{RecipientID: recipientID})
		assert.ErrorIs(t, err, apierrors.ErrMissingFields)
	})

	t.Run("ciphertext too large", func(t *testing.T) {
		uc, _, _ := newTestUsecase(t)
		_, err := uc.Send(context.Background(), SendCommand{
			RecipientID: recipientID,
			Ciphertext:  make([]byte, model.MaxCiphertextBytes+1),
		})
		assert.ErrorIs(t, err, apierrors.ErrMessageTooLarge)
	})

	t.Run("unknown recipient", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().AccountExists(gomock.Any(), recipientID).Return(false, nil)

		_, err := uc.Send(context.Background(), SendCommand{
			RecipientID: recipientID,
			Ciphertext:  []byte("sealed-bytes"),
		})
		assert.ErrorIs(t, err, apierrors.ErrRecipientNotFound)
	})

	t.Run("defaults an unset tag to initial X3DH", func(t *testing.T) {
		uc, repo, notifier := newTestUsecase(t)
		repo.EXPECT().AccountExists(gomock.Any(), recipientID).Return(true, nil)

		var inserted *model.QueuedCiphertext
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg *model.QueuedCiphertext) error {
			inserted = msg
			return nil
		})
		notifier.EXPECT().Notify(recipientID, gomock.Any())

		_, err := uc.Send(context.Background(), SendCommand{
			RecipientID: recipientID,
			Ciphertext:  []byte("sealed-bytes"),
		})
		require.NoError(t, err)
		require.NotNil(t, inserted)
		assert.Equal(t, model.TagInitialX3DH, inserted.Tag)
	})
}

func TestUsecase_Drain(t *testing.T) {
	recipientID := uuid.New()

	uc, repo, _ := newTestUsecase(t)
	rows := []model.QueuedCiphertext{
		{ID: uuid.New(), Ciphertext: []byte("a"), Tag: model.TagInitialX3DH},
		{ID: uuid.New(), Ciphertext: []byte("b"), Tag: model.TagEstablishedSession},
	}
	repo.EXPECT().Drain(gomock.Any(), recipientID, drainLimit).Return(rows, nil)

	envelopes, err := uc.Drain(context.Background(), recipientID)
	require.NoError(t, err)
	assert.Len(t, envelopes, 2)
}

func TestUsecase_Delete(t *testing.T) {
	id := uuid.New()
	recipientID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().Delete(gomock.Any(), id, recipientID).Return(true, nil)

		err := uc.Delete(context.Background(), id, recipientID)
		require.NoError(t, err)
	})

	t.Run("cannot delete another account's message", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().Delete(gomock.Any(), id, recipientID).Return(false, nil)

		err := uc.Delete(context.Background(), id, recipientID)
		assert.ErrorIs(t, err, apierrors.ErrMessageNotFound)
	})
}
