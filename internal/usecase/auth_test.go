//go:build unit

package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-shop/internal/domain/cart"
	"go-shop/internal/domain/user"
	"go-shop/internal/infra"
	"go-shop/internal/infra/db"
	"go-shop/internal/pkg/clock"
	"go-shop/internal/pkg/jwt"
	"go-shop/internal/pkg/password"
	"go-shop/internal/usecase/queries"
	"go-shop/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type savedToken struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

type authFixture struct {
	views       map[string]*queries.AuthorizedUserView
	hashes      map[string]string
	snapshots   map[string]*shared.UserSnapshot
	byToken     map[string]*shared.UserSnapshot
	duplicate   bool
	savedTokens []savedToken
	passwords   map[uuid.UUID]string
	jobs        [][]byte
}

func newAuthFixture() *authFixture {
	return &authFixture{
		views:     make(map[string]*queries.AuthorizedUserView),
		hashes:    make(map[string]string),
		snapshots: make(map[string]*shared.UserSnapshot),
		byToken:   make(map[string]*shared.UserSnapshot),
		passwords: make(map[uuid.UUID]string),
	}
}

func (f *authFixture) addUser(t *testing.T, email, plainPassword, role string) uuid.UUID {
	t.Helper()
	hash, err := password.HashPassword(plainPassword)
	require.NoError(t, err)

	id := uuid.New()
	f.views[email] = &queries.AuthorizedUserView{ID: id, Email: email, Role: role}
	f.hashes[email] = hash
	f.snapshots[email] = &shared.UserSnapshot{ID: id, Email: email, Role: role}
	return id
}

type fakeUserViews struct {
	f *authFixture
}

func (r *fakeUserViews) FindByEmail(_ context.Context, email user.Email) (*queries.AuthorizedUserView, string, error) {
	view, ok := r.f.views[email.Value()]
	if !ok {
		return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return view, r.f.hashes[email.Value()], nil
}

func (r *fakeUserViews) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	for _, v := range r.f.views {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

type fakeAuthUoW struct {
	f *authFixture
}

func (u *fakeAuthUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeAuthTx{f: u.f})
}

func (u *fakeAuthUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeAuthUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeAuthUoW) CommandReads() shared.CommandReads {
	return &fakeAuthReads{f: u.f}
}

type fakeAuthTx struct {
	f *authFixture
}

func (t *fakeAuthTx) Users() shared.UserRepository                 { return &fakeUserWrites{f: t.f} }
func (t *fakeAuthTx) Products() shared.ProductRepository           { return nil }
func (t *fakeAuthTx) Carts() shared.CartRepository                 { return nil }
func (t *fakeAuthTx) Orders() shared.OrderRepository               { return nil }
func (t *fakeAuthTx) Idempotency() shared.IdempotencyRepository    { return nil }
func (t *fakeAuthTx) Notifications() shared.NotificationRepository { return &fakeAuthJobs{f: t.f} }
func (t *fakeAuthTx) Reads() shared.CommandReads                   { return &fakeAuthReads{f: t.f} }
func (t *fakeAuthTx) DB() db.DBTX                                  { return nil }

type fakeAuthReads struct {
	f *authFixture
}

func (r *fakeAuthReads) UserByEmail(_ context.Context, email string) (*shared.UserSnapshot, error) {
	snap, ok := r.f.snapshots[email]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

func (r *fakeAuthReads) UserByResetToken(_ context.Context, token string) (*shared.UserSnapshot, error) {
	snap, ok := r.f.byToken[token]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

func (r *fakeAuthReads) ProductByID(_ context.Context, _ uuid.UUID) (*shared.ProductSnapshot, error) {
	return nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
}

func (r *fakeAuthReads) CartByUser(_ context.Context, userID uuid.UUID) (cart.Cart, error) {
	return cart.NewCart(userID), nil
}

func (r *fakeAuthReads) IdempotencyByKey(_ context.Context, _, _ uuid.UUID) (*shared.IdempotencyRecord, error) {
	return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
}

type fakeUserWrites struct {
	f *authFixture
}

func (r *fakeUserWrites) Create(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
	if r.f.duplicate {
		return uuid.Nil, infra.WrapRepoErr("email taken", nil, infra.KindDuplicateKey)
	}
	return u.ID(), nil
}

func (r *fakeUserWrites) SaveResetToken(_ context.Context, _ db.DBTX, userID uuid.UUID, token string, expiresAt time.Time) error {
	r.f.savedTokens = append(r.f.savedTokens, savedToken{UserID: userID, Token: token, ExpiresAt: expiresAt})
	return nil
}

func (r *fakeUserWrites) UpdatePassword(_ context.Context, _ db.DBTX, userID uuid.UUID, passwordHash string) error {
	r.f.passwords[userID] = passwordHash
	return nil
}

type fakeAuthJobs struct {
	f *authFixture
}

func (r *fakeAuthJobs) CreateJob(_ context.Context, _ db.DBTX, _, _ string, payload []byte, _ time.Time) error {
	r.f.jobs = append(r.f.jobs, payload)
	return nil
}

func newAuthUC(f *authFixture) (AuthUseCase, *clock.MockClock) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewAuthUseCase(&fakeUserViews{f: f}, &fakeAuthUoW{f: f}, jwtService, clk), clk
}

func mustCredentials(t *testing.T, email, pass string) user.Credentials {
	t.Helper()
	c, err := user.NewCredentials(email, pass)
	require.NoError(t, err)
	return c
}

func TestAuth_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer account", func(t *testing.T) {
		f := newAuthFixture()
		uc, _ := newAuthUC(f)

		id, err := uc.Signup(ctx, mustCredentials(t, "new@example.com", "password123"))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		f := newAuthFixture()
		f.duplicate = true
		uc, _ := newAuthUC(f)

		_, err := uc.Signup(ctx, mustCredentials(t, "taken@example.com", "password123"))
		require.ErrorIs(t, err, ErrEmailAlreadyExists)
	})
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return a usable token", func(t *testing.T) {
		f := newAuthFixture()
		id := f.addUser(t, "user@example.com", "password123", "customer")
		uc, _ := newAuthUC(f)

		token, view, err := uc.Login(ctx, mustCredentials(t, "user@example.com", "password123"))
		require.NoError(t, err)
		assert.Equal(t, id, view.ID)

		gotID, role, err := uc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, id, gotID)
		assert.Equal(t, user.RoleCustomer, role)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		f := newAuthFixture()
		f.addUser(t, "user@example.com", "password123", "customer")
		uc, _ := newAuthUC(f)

		_, _, err := uc.Login(ctx, mustCredentials(t, "user@example.com", "wrong-password"))
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		f := newAuthFixture()
		uc, _ := newAuthUC(f)

		_, _, err := uc.Login(ctx, mustCredentials(t, "nobody@example.com", "password123"))
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuth_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a token and enqueues the email", func(t *testing.T) {
		f := newAuthFixture()
		id := f.addUser(t, "user@example.com", "password123", "customer")
		uc, clk := newAuthUC(f)

		email, err := user.NewEmail("user@example.com")
		require.NoError(t, err)
		require.NoError(t, uc.RequestPasswordReset(ctx, email))

		require.Len(t, f.savedTokens, 1)
		saved := f.savedTokens[0]
		assert.Equal(t, id, saved.UserID)
		assert.Len(t, saved.Token, 64)
		assert.Equal(t, clk.Now().Add(time.Hour), saved.ExpiresAt)

		require.Len(t, f.jobs, 1)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(f.jobs[0], &payload))
		assert.Equal(t, saved.Token, payload["token"])
		assert.Equal(t, "password_reset", payload["type"])
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		f := newAuthFixture()
		uc, _ := newAuthUC(f)

		email, err := user.NewEmail("nobody@example.com")
		require.NoError(t, err)
		require.ErrorIs(t, uc.RequestPasswordReset(ctx, email), ErrUserNotFound)
	})
}

func TestAuth_ResetPassword(t *testing.T) {
	ctx := context.Background()

	newPassword := func(t *testing.T) user.Password {
		t.Helper()
		p, err := user.NewPassword("fresh-password-1")
		require.NoError(t, err)
		return p
	}

	t.Run("valid token updates the password", func(t *testing.T) {
		f := newAuthFixture()
		id := f.addUser(t, "user@example.com", "password123", "customer")
		uc, clk := newAuthUC(f)

		exp := clk.Now().Add(time.Hour)
		f.byToken["token-a"] = &shared.UserSnapshot{ID: id, Email: "user@example.com", ResetTokenExp: &exp}

		require.NoError(t, uc.ResetPassword(ctx, "token-a", newPassword(t)))

		hash, ok := f.passwords[id]
		require.True(t, ok)
		require.NoError(t, password.ComparePassword(hash, "fresh-password-1"))
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		f := newAuthFixture()
		id := f.addUser(t, "user@example.com", "password123", "customer")
		uc, clk := newAuthUC(f)

		exp := clk.Now().Add(-time.Minute)
		f.byToken["token-a"] = &shared.UserSnapshot{ID: id, ResetTokenExp: &exp}

		require.ErrorIs(t, uc.ResetPassword(ctx, "token-a", newPassword(t)), ErrInvalidResetToken)
		assert.Empty(t, f.passwords)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		f := newAuthFixture()
		uc, _ := newAuthUC(f)

		require.ErrorIs(t, uc.ResetPassword(ctx, "missing", newPassword(t)), ErrInvalidResetToken)
	})
}
