package shared

import (
	"context"
	"time"

	"go-shop/internal/domain/cart"
	"go-shop/internal/domain/order"
	"go-shop/internal/domain/product"
	"go-shop/internal/domain/user"
	"go-shop/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Users() UserRepository
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	UserByResetToken(ctx context.Context, token string) (*UserSnapshot, error)
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	CartByUser(ctx context.Context, userID uuid.UUID) (cart.Cart, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

// Minimal snapshots for command read operations
type UserSnapshot struct {
	ID            uuid.UUID
	Email         string
	Role          string
	ResetTokenExp *time.Time
}

type ProductSnapshot struct {
	ID          uuid.UUID
	Title       string
	ImageURL    string
	Description string
	Price       decimal.Decimal
	CreatedBy   uuid.UUID
}

type IdempotencyRecord struct {
	Key           uuid.UUID
	UserID        uuid.UUID
	Status        string
	RequestHash   string
	ResultOrderID *uuid.UUID
	ExpiresAt     time.Time
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	SaveResetToken(ctx context.Context, tx db.DBTX, userID uuid.UUID, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, tx db.DBTX, userID uuid.UUID, passwordHash string) error
}

type ProductRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *product.Product) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, p *product.Product) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type CartRepository interface {
	// Save replaces all stored lines with the given cart's lines.
	Save(ctx context.Context, tx db.DBTX, c cart.Cart) error
	Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error)
}

type IdempotencyRepository interface {
	// TryInsert reports whether a fresh key row was inserted. False means
	// a row for the key already exists.
	TryInsert(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, resultHash string, orderID uuid.UUID) error
	ClaimExpiredIdempotencyKey(ctx context.Context, tx db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
	// DeleteCompletedForUser drops replay rows once the user's cart has
	// moved on, so rebuilding the same content places a new order.
	DeleteCompletedForUser(ctx context.Context, tx db.DBTX, userID uuid.UUID, endpoint string) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
