package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id            uuid.UUID
	email         Email
	passwordHash  string
	role          Role
	resetToken    *string
	resetTokenExp *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewUser(email Email, passwordHash string, role Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
	}
}

func (u *User) ID() uuid.UUID             { return u.id }
func (u *User) Email() Email              { return u.email }
func (u *User) PasswordHash() string      { return u.passwordHash }
func (u *User) Role() Role                { return u.role }
func (u *User) ResetToken() *string       { return u.resetToken }
func (u *User) ResetTokenExp() *time.Time { return u.resetTokenExp }
func (u *User) CreatedAt() time.Time      { return u.createdAt }
func (u *User) UpdatedAt() time.Time      { return u.updatedAt }

// IssueResetToken replaces any previously issued token.
func (u *User) IssueResetToken(token string, expiresAt time.Time) {
	u.resetToken = &token
	u.resetTokenExp = &expiresAt
}

func (u *User) CanResetPassword(token string, now time.Time) bool {
	if u.resetToken == nil || u.resetTokenExp == nil {
		return false
	}
	return *u.resetToken == token && u.resetTokenExp.After(now)
}

func (u *User) ChangePassword(passwordHash string) {
	u.passwordHash = passwordHash
	u.resetToken = nil
	u.resetTokenExp = nil
}
