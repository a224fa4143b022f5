package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go-shop/internal/domain/user"
	"go-shop/internal/infra"
	"go-shop/internal/pkg/clock"
	"go-shop/internal/pkg/jwt"
	"go-shop/internal/pkg/password"
	"go-shop/internal/usecase/queries"
	"go-shop/internal/usecase/shared"

	"github.com/google/uuid"
)

const resetTokenTTL = time.Hour

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrEmailAlreadyExists   = errors.New("email already registered")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrTokenValidation      = errors.New("token validation failed")
	ErrInvalidResetToken    = errors.New("invalid or expired reset token")
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email user.Email) (*queries.AuthorizedUserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
}

type AuthUseCase interface {
	Signup(ctx context.Context, credentials user.Credentials) (uuid.UUID, error)
	Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
	RequestPasswordReset(ctx context.Context, email user.Email) error
	ResetPassword(ctx context.Context, token string, newPassword user.Password) error
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	uow        shared.UnitOfWork
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthUseCase(userRepo UserRepository, uow shared.UnitOfWork, jwtService *jwt.Service, clk clock.Clock) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		uow:        uow,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authUseCaseImpl) Signup(ctx context.Context, credentials user.Credentials) (uuid.UUID, error) {
	hash, err := password.HashPassword(credentials.Password().Value())
	if err != nil {
		return uuid.Nil, err
	}

	entity := user.NewUser(credentials.Email(), hash, user.RoleCustomer)

	var createdID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Users().Create(ctx, tx.DB(), entity)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrEmailAlreadyExists
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error) {
	userView, hashedPassword, err := a.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil || userView == nil {
		return "", nil, ErrUserNotFound
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(userView.Role)
	if err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := a.jwtService.GenerateToken(userView.ID, role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, userView, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	userView, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || userView == nil {
		return nil, ErrUserNotFound
	}
	return userView, nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", ErrTokenValidation
	}

	return claims.UserID, role, nil
}

// RequestPasswordReset stores a fresh token and enqueues the reset
// email in the same transaction.
func (a *authUseCaseImpl) RequestPasswordReset(ctx context.Context, email user.Email) error {
	token, err := generateResetToken()
	if err != nil {
		return err
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().UserByEmail(ctx, email.Value())
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return derr
		}

		now := a.clock.Now()
		if derr := tx.Users().SaveResetToken(ctx, tx.DB(), snap.ID, token, now.Add(resetTokenTTL)); derr != nil {
			return derr
		}

		payload, derr := json.Marshal(map[string]any{
			"user_id": snap.ID,
			"email":   snap.Email,
			"token":   token,
			"type":    "password_reset",
		})
		if derr != nil {
			return derr
		}

		return tx.Notifications().CreateJob(ctx, tx.DB(), "email", "password_reset", payload, now)
	})
}

func (a *authUseCaseImpl) ResetPassword(ctx context.Context, token string, newPassword user.Password) error {
	hash, err := password.HashPassword(newPassword.Value())
	if err != nil {
		return err
	}

	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().UserByResetToken(ctx, token)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrInvalidResetToken
			}
			return derr
		}

		if snap.ResetTokenExp == nil || !snap.ResetTokenExp.After(a.clock.Now()) {
			return ErrInvalidResetToken
		}

		return tx.Users().UpdatePassword(ctx, tx.DB(), snap.ID, hash)
	})
}

func generateResetToken() (string, error) {
	var buf [32]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf[:]), nil
}
