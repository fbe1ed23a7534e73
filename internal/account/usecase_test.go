package account

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush/internal/account/mocks"
	"hush/internal/account/model"
	"hush/internal/account/repository"
	"hush/internal/auth"
	apierrors "hush/pkg/errors"
	"hush/pkg/logger"
)

func newTestUsecase(t *testing.T) (*Usecase, *mocks.MockRepository, *mocks.MockEphemeralStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	eph := mocks.NewMockEphemeralStore(ctrl)
	log, err := logger.NewLogger(logger.LoggerMode{Level: "none"})
	require.NoError(t, err)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	return NewUsecase(repo, eph, issuer, log, 10), repo, eph
}

func TestUsecase_Register(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	spkPub, _, _ := ed25519.GenerateKey(nil)
	spkSig := ed25519.Sign(priv, spkPub)

	baseCmd := RegisterCommand{
		IdentityPublicKey: pub,
		RegistrationID:    1,
		SignedPreKey: SignedPreKeyUpload{
			KeyID:     1,
			PublicKey: spkPub,
			Signature: spkSig,
		},
		OneTimePreKeys: []OneTimePreKeyUpload{
			{KeyID: 1, PublicKey: []byte("01234567890123456789012345678901")},
		},
	}

	t.Run("happy path", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, err := uc.Register(context.Background(), baseCmd)
		require.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("invalid identity key length", func(t *testing.T) {
		uc, _, _ := newTestUsecase(t)
		cmd := baseCmd
		cmd.IdentityPublicKey = []byte("too-short")

		_, err := uc.Register(context.Background(), cmd)
		assert.ErrorIs(t, err, apierrors.ErrInvalidKeyLength)
	})

	t.Run("invalid signed prekey signature", func(t *testing.T) {
		uc, _, _ := newTestUsecase(t)
		cmd := baseCmd
		otherPub, _, _ := ed25519.GenerateKey(nil)
		cmd.SignedPreKey.PublicKey = otherPub

		_, err := uc.Register(context.Background(), cmd)
		assert.ErrorIs(t, err, apierrors.ErrInvalidSPKSignature)
	})

	t.Run("too many prekeys", func(t *testing.T) {
		uc, _, _ := newTestUsecase(t)
		cmd := baseCmd
		cmd.OneTimePreKeys = make([]OneTimePreKeyUpload, 201)

		_, err := uc.Register(context.Background(), cmd)
		assert.ErrorIs(t, err, apierrors.ErrTooManyPrekeys)
	})
}

func TestUsecase_ChallengeAndVerify(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	accountID := uuid.New()

	t.Run("challenge stores nonce for a real account", func(t *testing.T) {
		uc, repo, eph := newTestUsecase(t)
		repo.EXPECT().GetByIdentityKey(gomock.Any(), pub).Return(&model.Account{ID: accountID, IdentityPublicKey: pub}, nil)
		eph.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		nonce, err := uc.Challenge(context.Background(), pub)
		require.NoError(t, err)
		assert.NotEmpty(t, nonce)
	})

	t.Run("challenge is indistinguishable for an unknown account", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().GetByIdentityKey(gomock.Any(), pub).Return(nil, repository.ErrNotFound)

		nonce, err := uc.Challenge(context.Background(), pub)
		require.NoError(t, err)
		assert.NotEmpty(t, nonce)
	})

	t.Run("verify mints a token on a valid signature", func(t *testing.T) {
		uc, repo, eph := newTestUsecase(t)
		nonceHex := "deadbeef"
		eph.EXPECT().GetAndDelete(gomock.Any(), gomock.Any()).Return(nonceHex, true, nil)
		nonce, err := hex.DecodeString(nonceHex)
		require.NoError(t, err)
		sig := ed25519.Sign(priv, nonce)
		repo.EXPECT().GetByIdentityKey(gomock.Any(), pub).Return(&model.Account{ID: accountID, IdentityPublicKey: pub}, nil)

		result, err := uc.Verify(context.Background(), pub, sig)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, accountID, result.AccountID)
	})

	t.Run("verify rejects a consumed or unknown challenge", func(t *testing.T) {
		uc, _, eph := newTestUsecase(t)
		eph.EXPECT().GetAndDelete(gomock.Any(), gomock.Any()).Return("", false, nil)

		_, err := uc.Verify(context.Background(), pub, []byte("sig"))
		assert.ErrorIs(t, err, apierrors.ErrInvalidOrExpiredChal)
	})

	t.Run("verify rejects an invalid signature", func(t *testing.T) {
		uc, _, eph := newTestUsecase(t)
		nonceHex := "deadbeef"
		eph.EXPECT().GetAndDelete(gomock.Any(), gomock.Any()).Return(nonceHex, true, nil)

		_, err := uc.Verify(context.Background(), pub, []byte("wrong-signature"))
		assert.ErrorIs(t, err, apierrors.ErrInvalidSignature)
	})
}

func TestUsecase_FetchBundle(t *testing.T) {
	accountID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().FetchBundle(gomock.Any(), accountID, 10).Return(&model.Bundle{
			IdentityKey:    []byte("identity"),
			SignedPreKey:   []byte("spk"),
			RemainingCount: 5,
		}, nil)

		result, err := uc.FetchBundle(context.Background(), accountID)
		require.NoError(t, err)
		assert.Equal(t, 5, result.RemainingCount)
	})

	t.Run("unknown account never discloses more than not-found", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().FetchBundle(gomock.Any(), accountID, 10).Return(nil, repository.ErrNotFound)

		_, err := uc.FetchBundle(context.Background(), accountID)
		assert.ErrorIs(t, err, apierrors.ErrAccountNotFound)
	})
}

func TestUsecase_Logout(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	tokenID := uuid.New()
	expiresAt := time.Now().Add(time.Hour)

	repo.EXPECT().RevokeToken(gomock.Any(), tokenID, expiresAt).Return(nil)

	err := uc.Logout(context.Background(), tokenID, expiresAt)
	require.NoError(t, err)
}

func TestUsecase_DeleteAccount(t *testing.T) {
	accountID := uuid.New()

	t.Run("happy path", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().Delete(gomock.Any(), accountID).Return(nil)

		err := uc.DeleteAccount(context.Background(), accountID)
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		uc, repo, _ := newTestUsecase(t)
		repo.EXPECT().Delete(gomock.Any(), accountID).Return(repository.ErrNotFound)

		err := uc.DeleteAccount(context.Background(), accountID)
		assert.ErrorIs(t, err, apierrors.ErrAccountNotFound)
	})
}
