package readstore

import (
	"context"
	"errors"
	"time"

	"go-shop/internal/infra"
	"go-shop/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

type IdempotencyRow struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

func (s *IdempotencyReadStore) Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRow, error) {
	const query = `
		SELECT key, user_id, status, request_hash, result_order_id, expires_at
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2`

	var row IdempotencyRow
	err := s.db.QueryRow(ctx, query, key, userID).Scan(
		&row.Key, &row.UserID, &row.Status, &row.RequestHash, &row.ResultOrderID, &row.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	return &row, nil
}
