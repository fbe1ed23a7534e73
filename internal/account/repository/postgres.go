// Package repository is the Bun-backed Durable Store adapter for accounts,
// prekeys, and revocations (C1, §4.1), grounded on the teacher's
// internal/user/repository package: same query shapes, same
// FOR UPDATE SKIP LOCKED consumption idiom, same pkg/errors.Wrap style.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"hush/internal/account/model"
	"hush/pkg/logger"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrNoOneTimePreKey = errors.New("no one-time prekeys available")
)

type AccountRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewAccountRepository(db *bun.DB, log *logger.Logger) *AccountRepository {
	return &AccountRepository{db: db, logger: log}
}

func (r *AccountRepository) Register(ctx context.Context, account *model.Account, spk *model.SignedPreKey, otpks []model.OneTimePreKey) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(account).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, "accountRepo.Register.insertAccount")
		}

		spk.AccountID = account.ID
		if _, err := tx.NewInsert().Model(spk).Exec(ctx); err != nil {
			return errors.Wrap(err, "accountRepo.Register.insertSignedPreKey")
		}

		if len(otpks) > 0 {
			for i := range otpks {
				otpks[i].AccountID = account.ID
			}
			if _, err := tx.NewInsert().Model(&otpks).Exec(ctx); err != nil {
				return errors.Wrap(err, "accountRepo.Register.insertOneTimePreKeys")
			}
		}
		return nil
	})
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	acc := new(model.Account)
	err := r.db.NewSelect().Model(acc).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "accountRepo.GetByID.Scan")
	}
	return acc, nil
}

func (r *AccountRepository) GetByIdentityKey(ctx context.Context, identityKey []byte) (*model.Account, error) {
	acc := new(model.Account)
	err := r.db.NewSelect().Model(acc).Where("identity_public_key = ?", identityKey).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "accountRepo.GetByIdentityKey.Scan")
	}
	return acc, nil
}

func (r *AccountRepository) UpsertSignedPreKey(ctx context.Context, spk *model.SignedPreKey) error {
	_, err := r.db.NewInsert().
		Model(spk).
		On("CONFLICT (account_id) DO UPDATE").
		Set("key_id = EXCLUDED.key_id").
		Set("public_key = EXCLUDED.public_key").
		Set("signature = EXCLUDED.signature").
		Set("uploaded_at = EXCLUDED.uploaded_at").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "accountRepo.UpsertSignedPreKey.Exec")
	}
	return nil
}

func (r *AccountRepository) GetSignedPreKey(ctx context.Context, accountID uuid.UUID) (*model.SignedPreKey, error) {
	spk := new(model.SignedPreKey)
	err := r.db.NewSelect().Model(spk).Where("account_id = ?", accountID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "accountRepo.GetSignedPreKey.Scan")
	}
	return spk, nil
}

// UploadOneTimePreKeys upserts on the (account_id, key_id) unique
// constraint; a colliding key id is a silent no-op, giving the idempotence
// law of §8.
func (r *AccountRepository) UploadOneTimePreKeys(ctx context.Context, accountID uuid.UUID, keys []model.OneTimePreKey) (int, int, error) {
	for i := range keys {
		keys[i].AccountID = accountID
	}

	var uploaded int
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if len(keys) > 0 {
			res, err := tx.NewInsert().
				Model(&keys).
				On("CONFLICT (account_id, key_id) DO NOTHING").
				Exec(ctx)
			if err != nil {
				return errors.Wrap(err, "accountRepo.UploadOneTimePreKeys.Insert")
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return errors.Wrap(err, "accountRepo.UploadOneTimePreKeys.RowsAffected")
			}
			uploaded = int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	total, err := r.CountRemainingOneTimePreKeys(ctx, accountID)
	if err != nil {
		return 0, 0, err
	}
	return uploaded, total, nil
}

func (r *AccountRepository) CountRemainingOneTimePreKeys(ctx context.Context, accountID uuid.UUID) (int, error) {
	count, err := r.db.NewSelect().
		Model((*model.OneTimePreKey)(nil)).
		Where("account_id = ?", accountID).
		Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "accountRepo.CountRemainingOneTimePreKeys.Count")
	}
	return count, nil
}

// FetchBundle is the correctness pivot named in §4.4: it selects the oldest
// unused one-time prekey with FOR UPDATE SKIP LOCKED so concurrent fetches
// never observe the same row, then deletes it before returning. A pool
// exhaustion is not an error — the returned Bundle simply carries a nil
// OneTimePreKeyID (P2).
func (r *AccountRepository) FetchBundle(ctx context.Context, accountID uuid.UUID, refillThreshold int) (*model.Bundle, error) {
	var bundle model.Bundle

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		acc := new(model.Account)
		if err := tx.NewSelect().Model(acc).Where("id = ?", accountID).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return errors.Wrap(err, "accountRepo.FetchBundle.getAccount")
		}

		spk := new(model.SignedPreKey)
		if err := tx.NewSelect().Model(spk).Where("account_id = ?", accountID).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return errors.Wrap(err, "accountRepo.FetchBundle.getSignedPreKey")
		}

		otpk := new(model.OneTimePreKey)
		err := tx.NewSelect().
			Model(otpk).
			Where("account_id = ?", accountID).
			Order("id ASC").
			Limit(1).
			For("UPDATE SKIP LOCKED").
			Scan(ctx)

		switch {
		case err == nil:
			if _, delErr := tx.NewDelete().Model(otpk).WherePK().Exec(ctx); delErr != nil {
				return errors.Wrap(delErr, "accountRepo.FetchBundle.deleteOneTimePreKey")
			}
			bundle.OneTimePreKeyID = &otpk.KeyID
			bundle.OneTimePreKey = otpk.PublicKey
		case errors.Is(err, sql.ErrNoRows):
			// pool exhausted — documented degradation, not a failure.
		default:
			return errors.Wrap(err, "accountRepo.FetchBundle.claimOneTimePreKey")
		}

		remaining, err := tx.NewSelect().
			Model((*model.OneTimePreKey)(nil)).
			Where("account_id = ?", accountID).
			Count(ctx)
		if err != nil {
			return errors.Wrap(err, "accountRepo.FetchBundle.countRemaining")
		}

		bundle.AccountID = accountID
		bundle.IdentityKey = acc.IdentityPublicKey
		bundle.RegistrationID = acc.RegistrationID
		bundle.SignedPreKeyID = spk.KeyID
		bundle.SignedPreKey = spk.PublicKey
		bundle.SignedPreKeySig = spk.Signature
		bundle.RemainingCount = remaining
		bundle.NeedsRefresh = remaining < refillThreshold
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Foreign keys from signed_pre_keys, one_time_pre_keys, and the
	// message queue cascade on delete (§3), so a single row delete here
	// removes an account's entire footprint.
	res, err := r.db.NewDelete().Model((*model.Account)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "accountRepo.Delete.Exec")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "accountRepo.Delete.RowsAffected")
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AccountRepository) IsTokenRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*model.RevokedToken)(nil)).
		Where("token_id = ?", tokenID).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "accountRepo.IsTokenRevoked.Exists")
	}
	return exists, nil
}

func (r *AccountRepository) RevokeToken(ctx context.Context, tokenID uuid.UUID, expiresAt time.Time) error {
	rt := &model.RevokedToken{TokenID: tokenID, ExpiresAt: expiresAt}
	_, err := r.db.NewInsert().Model(rt).On("CONFLICT (token_id) DO NOTHING").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "accountRepo.RevokeToken.Exec")
	}
	return nil
}

// ReapRevokedTokens deletes every revoked-token record whose expiry is
// before now.
// Called by pkg/reaper alongside the message queue's own reap (§4.1, P6).
func (r *AccountRepository) ReapRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*model.RevokedToken)(nil)).
		Where("expires_at < ?", now).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "accountRepo.ReapRevokedTokens.Exec")
	}
	return res.RowsAffected()
}
