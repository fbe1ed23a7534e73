// Package repository is the Bun-backed Durable Store adapter for the
// sealed message queue (C1, §4.1/§4.5), in the same style as the account
// package's repository — pkg/errors.Wrap, bun query builder, no ORM magic
// beyond what the teacher already relies on.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"hush/internal/message/model"
)

type MessageRepository struct {
	db *bun.DB
}

func NewMessageRepository(db *bun.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Insert(ctx context.Context, msg *model.QueuedCiphertext) error {
	if _, err := r.db.NewInsert().Model(msg).Exec(ctx); err != nil {
		return errors.Wrap(err, "messageRepo.Insert.Exec")
	}
	return nil
}

func (r *MessageRepository) AccountExists(ctx context.Context, accountID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Table("accounts").
		Where("id = ?", accountID).
		Exists(ctx)
	if err != nil {
		return false, errors.Wrap(err, "messageRepo.AccountExists.Exists")
	}
	return exists, nil
}

func (r *MessageRepository) Drain(ctx context.Context, recipientID uuid.UUID, limit int) ([]model.QueuedCiphertext, error) {
	var rows []model.QueuedCiphertext
	err := r.db.NewSelect().
		Model(&rows).
		Where("recipient_id = ?", recipientID).
		OrderExpr("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.Drain.Scan")
	}
	return rows, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*model.QueuedCiphertext)(nil)).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Exec(ctx)
	if err != nil {
		return false, errors.Wrap(err, "messageRepo.Delete.Exec")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "messageRepo.Delete.RowsAffected")
	}
	return affected > 0, nil
}

func (r *MessageRepository) Reap(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*model.QueuedCiphertext)(nil)).
		Where("expires_at < ?", now).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "messageRepo.Reap.Exec")
	}
	return res.RowsAffected()
}
