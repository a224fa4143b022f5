package repository

import (
	"context"
	"time"

	"go-shop/internal/infra"
	"go-shop/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	const query = `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'processing', $5)
		ON CONFLICT (key, user_id) DO NOTHING`

	tag, err := tx.Exec(ctx, query, key, userID, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, orderID uuid.UUID) error {
	const query = `
		UPDATE idempotency_keys
		SET status = 'completed', response_body_hash = $3, result_order_id = $4, updated_at = now()
		WHERE key = $1 AND user_id = $2`

	tag, err := tx.Exec(ctx, query, key, userID, resultHash, orderID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// ClaimExpiredIdempotencyKey takes over a stale row so the retry can
// run as a fresh request.
func (r *IdempotencyRepository) ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	const query = `
		UPDATE idempotency_keys
		SET status = 'processing', request_hash = $3, expires_at = $4,
		    response_body_hash = NULL, result_order_id = NULL, updated_at = now()
		WHERE key = $1 AND user_id = $2 AND expires_at < now()`

	tag, err := tx.Exec(ctx, query, key, userID, requestHash, expiresAt)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}

func (r *IdempotencyRepository) DeleteCompletedForUser(ctx context.Context, tx db.DBTX, userID uuid.UUID, endpoint string) error {
	const query = `
		DELETE FROM idempotency_keys
		WHERE user_id = $1 AND endpoint = $2 AND status = 'completed'`

	if _, err := tx.Exec(ctx, query, userID, endpoint); err != nil {
		return infra.WrapRepoErr("failed to delete completed idempotency keys", err)
	}
	return nil
}
