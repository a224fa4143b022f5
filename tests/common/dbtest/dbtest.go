//go:build e2e

package dbtest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "adminpass123"

	// A second admin with an own catalog, for ownership checks.
	OtherAdminEmail    = "admin2@example.com"
	OtherAdminPassword = "adminpass456"
)

// SeedReferenceData inserts the fixed accounts the e2e suites depend on.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	admins := []struct{ email, password string }{
		{AdminEmail, AdminPassword},
		{OtherAdminEmail, OtherAdminPassword},
	}
	for _, a := range admins {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, role)
			VALUES ($1, $2, $3, 'admin')
			ON CONFLICT (email) DO NOTHING`,
			uuid.New(), a.email, string(hash))
		if err != nil {
			return err
		}
	}
	return nil
}

// ResetDB truncates all mutable tables and reseeds the reference accounts.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE
			notification_jobs,
			idempotency_keys,
			order_items,
			orders,
			cart_items,
			products,
			users
		CASCADE`)
	if err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
