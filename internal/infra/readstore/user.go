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

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

type UserSnapshotRow struct {
	ID            uuid.UUID
	Email         string
	Role          string
	ResetTokenExp *time.Time
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*UserSnapshotRow, error) {
	const query = `
		SELECT id, email, role, reset_token_expires_at
		FROM users
		WHERE email = $1`

	return s.findOne(ctx, query, email)
}

func (s *UserReadStore) FindByResetToken(ctx context.Context, token string) (*UserSnapshotRow, error) {
	const query = `
		SELECT id, email, role, reset_token_expires_at
		FROM users
		WHERE reset_token = $1`

	return s.findOne(ctx, query, token)
}

func (s *UserReadStore) findOne(ctx context.Context, query string, arg any) (*UserSnapshotRow, error) {
	var row UserSnapshotRow
	err := s.db.QueryRow(ctx, query, arg).Scan(&row.ID, &row.Email, &row.Role, &row.ResetTokenExp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &row, nil
}
