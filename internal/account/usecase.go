package account

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"hush/internal/account/model"
	"hush/internal/auth"
	"hush/internal/ephemeral"
	apierrors "hush/pkg/errors"
	"hush/pkg/logger"
	"hush/pkg/utils"
)

const challengeKeyPrefix = "challenge:"

// Usecase implements the Auth Gate (C3) and Key Service (C4) operations of
// §4.3/§4.4, generalized from the teacher's UserUsecase.
type Usecase struct {
	repo            Repository
	ephemeral       ephemeral.Store
	issuer          *auth.Issuer
	logger          *logger.Logger
	refillThreshold int
	challengeTTL    time.Duration
}

func NewUsecase(repo Repository, eph ephemeral.Store, issuer *auth.Issuer, log *logger.Logger, refillThreshold int) *Usecase {
	return &Usecase{
		repo:            repo,
		ephemeral:       eph,
		issuer:          issuer,
		logger:          log,
		refillThreshold: refillThreshold,
		challengeTTL:    120 * time.Second,
	}
}

// Register validates the request in the exact order §4.3 specifies —
// presence, identity key length, then the signed prekey's signature —
// before ever opening a transaction.
func (uc *Usecase) Register(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	if len(cmd.IdentityPublicKey) == 0 || cmd.SignedPreKey.PublicKey == nil || cmd.SignedPreKey.Signature == nil {
		return nil, apierrors.ErrMissingFields
	}
	if len(cmd.IdentityPublicKey) != ed25519.PublicKeySize {
		return nil, apierrors.ErrInvalidKeyLength
	}
	if len(cmd.OneTimePreKeys) > 200 {
		return nil, apierrors.ErrTooManyPrekeys
	}

	if !utils.VerifySignature(cmd.IdentityPublicKey, cmd.SignedPreKey.PublicKey, cmd.SignedPreKey.Signature) {
		return nil, apierrors.ErrInvalidSPKSignature
	}

	seen := make(map[uint32]bool, len(cmd.OneTimePreKeys))
	otpks := make([]model.OneTimePreKey, 0, len(cmd.OneTimePreKeys))
	for _, k := range cmd.OneTimePreKeys {
		if seen[k.KeyID] {
			return nil, apierrors.ErrMissingFields
		}
		seen[k.KeyID] = true
		otpks = append(otpks, model.OneTimePreKey{KeyID: k.KeyID, PublicKey: k.PublicKey})
	}

	acc := &model.Account{
		IdentityPublicKey: cmd.IdentityPublicKey,
		RegistrationID:    cmd.RegistrationID,
	}
	spk := &model.SignedPreKey{
		KeyID:     cmd.SignedPreKey.KeyID,
		PublicKey: cmd.SignedPreKey.PublicKey,
		Signature: cmd.SignedPreKey.Signature,
	}

	if err := uc.repo.Register(ctx, acc, spk, otpks); err != nil {
		if isUniqueViolation(err) {
			return nil, apierrors.ErrAlreadyRegistered
		}
		uc.logger.Error("account registration failed", "err", err)
		return nil, apierrors.ErrInternal(err)
	}

	return &RegisterResult{AccountID: acc.ID}, nil
}

// Challenge returns a random nonce regardless of account existence, storing
// it only when the account is real. The two paths are observationally
// identical to a caller (§4.3, §8 scenario 2).
func (uc *Usecase) Challenge(ctx context.Context, identityPublicKey []byte) (string, error) {
	if len(identityPublicKey) != ed25519.PublicKeySize {
		return "", apierrors.ErrInvalidKeyLength
	}

	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		uc.logger.Error("challenge nonce generation failed", "err", err)
		return "", apierrors.ErrInternal(err)
	}
	nonceHex := hex.EncodeToString(nonce)

	acc, err := uc.repo.GetByIdentityKey(ctx, identityPublicKey)
	if err == nil && acc != nil {
		key := challengeKeyPrefix + hex.EncodeToString(identityPublicKey)
		if err := uc.ephemeral.Set(ctx, key, nonceHex, uc.challengeTTL); err != nil {
			uc.logger.Error("challenge store failed", "err", err)
			return "", apierrors.ErrInternal(err)
		}
	}
	// Unknown account: fall through and return the same-shaped nonce
	// without storing it. There is deliberately no branch that returns a
	// different error or status here.

	return nonceHex, nil
}

// Verify consumes the challenge nonce exactly once (P3) and, on a valid
// signature, mints a bearer token.
func (uc *Usecase) Verify(ctx context.Context, identityPublicKey, signature []byte) (*VerifyResult, error) {
	if len(identityPublicKey) != ed25519.PublicKeySize {
		return nil, apierrors.ErrInvalidKeyLength
	}

	key := challengeKeyPrefix + hex.EncodeToString(identityPublicKey)
	nonceHex, ok, err := uc.ephemeral.GetAndDelete(ctx, key)
	if err != nil {
		uc.logger.Error("challenge lookup failed", "err", err)
		return nil, apierrors.ErrInternal(err)
	}
	if !ok {
		return nil, apierrors.ErrInvalidOrExpiredChal
	}

	nonce, err := hex.DecodeString(nonceHex)
	if err != nil {
		return nil, apierrors.ErrInvalidOrExpiredChal
	}

	if !utils.VerifySignature(identityPublicKey, nonce, signature) {
		return nil, apierrors.ErrInvalidSignature
	}

	acc, err := uc.repo.GetByIdentityKey(ctx, identityPublicKey)
	if err != nil {
		// The nonce was only ever stored for an account that existed at
		// Challenge time; if it's gone now the account is unknown.
		return nil, apierrors.ErrInvalidOrExpiredChal
	}

	token, _, err := uc.issuer.Mint(acc.ID)
	if err != nil {
		uc.logger.Error("token mint failed", "err", err)
		return nil, apierrors.ErrInternal(err)
	}

	return &VerifyResult{Token: token, AccountID: acc.ID}, nil
}

// FetchBundle implements §4.4's consumption algorithm end to end.
func (uc *Usecase) FetchBundle(ctx context.Context, targetAccountID uuid.UUID) (*BundleResult, error) {
	bundle, err := uc.repo.FetchBundle(ctx, targetAccountID, uc.refillThreshold)
	if err != nil {
		if isNotFound(err) {
			return nil, apierrors.ErrAccountNotFound
		}
		uc.logger.Error("bundle fetch failed", "err", err)
		return nil, apierrors.ErrInternal(err)
	}

	return &BundleResult{
		IdentityKey:     bundle.IdentityKey,
		RegistrationID:  bundle.RegistrationID,
		SignedPreKeyID:  bundle.SignedPreKeyID,
		SignedPreKey:    bundle.SignedPreKey,
		SignedPreKeySig: bundle.SignedPreKeySig,
		OneTimePreKeyID: bundle.OneTimePreKeyID,
		OneTimePreKey:   bundle.OneTimePreKey,
		RemainingCount:  bundle.RemainingCount,
		NeedsRefresh:    bundle.NeedsRefresh,
	}, nil
}

func (uc *Usecase) ReplenishOneTimePreKeys(ctx context.Context, accountID uuid.UUID, uploads []OneTimePreKeyUpload) (*ReplenishResult, error) {
	if len(uploads) < 1 || len(uploads) > 200 {
		return nil, apierrors.ErrTooManyPrekeys
	}

	keys := make([]model.OneTimePreKey, 0, len(uploads))
	for _, u := range uploads {
		if len(u.PublicKey) != 32 {
			return nil, apierrors.ErrInvalidKeyLength
		}
		keys = append(keys, model.OneTimePreKey{KeyID: u.KeyID, PublicKey: u.PublicKey})
	}

	uploaded, total, err := uc.repo.UploadOneTimePreKeys(ctx, accountID, keys)
	if err != nil {
		uc.logger.Error("prekey replenish failed", "err", err)
		return nil, apierrors.ErrInternal(err)
	}
	return &ReplenishResult{Uploaded: uploaded, Total: total}, nil
}

func (uc *Usecase) RotateSignedPreKey(ctx context.Context, accountID uuid.UUID, upload SignedPreKeyUpload) error {
	if len(upload.PublicKey) != 32 || len(upload.Signature) == 0 {
		return apierrors.ErrMissingFields
	}

	acc, err := uc.repo.GetByID(ctx, accountID)
	if err != nil {
		return apierrors.ErrAccountNotFound
	}

	if !utils.VerifySignature(acc.IdentityPublicKey, upload.PublicKey, upload.Signature) {
		return apierrors.ErrInvalidSPKSignature
	}

	spk := &model.SignedPreKey{
		AccountID: accountID,
		KeyID:     upload.KeyID,
		PublicKey: upload.PublicKey,
		Signature: upload.Signature,
	}
	if err := uc.repo.UpsertSignedPreKey(ctx, spk); err != nil {
		uc.logger.Error("signed prekey rotation failed", "err", err)
		return apierrors.ErrInternal(err)
	}
	return nil
}

func (uc *Usecase) GetRemainingOneTimePreKeysCount(ctx context.Context, accountID uuid.UUID) (int, error) {
	count, err := uc.repo.CountRemainingOneTimePreKeys(ctx, accountID)
	if err != nil {
		uc.logger.Error("prekey count failed", "err", err)
		return 0, apierrors.ErrInternal(err)
	}
	return count, nil
}

// Logout revokes exactly the token presented, per §9's resolved open
// question: revocation exists but only the product layer decides the
// trigger — here, an explicit client-initiated logout.
func (uc *Usecase) Logout(ctx context.Context, tokenID uuid.UUID, expiresAt time.Time) error {
	if err := uc.repo.RevokeToken(ctx, tokenID, expiresAt); err != nil {
		uc.logger.Error("logout revocation failed", "err", err)
		return apierrors.ErrInternal(err)
	}
	return nil
}

func (uc *Usecase) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if err := uc.repo.Delete(ctx, accountID); err != nil {
		if isNotFound(err) {
			return apierrors.ErrAccountNotFound
		}
		uc.logger.Error("account deletion failed", "err", err)
		return apierrors.ErrInternal(err)
	}
	return nil
}
