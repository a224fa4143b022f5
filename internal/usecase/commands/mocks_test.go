//go:build unit

package commands

import (
	"context"
	"time"

	"go-shop/internal/domain/cart"
	"go-shop/internal/domain/order"
	"go-shop/internal/domain/product"
	"go-shop/internal/domain/user"
	"go-shop/internal/infra"
	"go-shop/internal/infra/db"
	"go-shop/internal/usecase/shared"

	"github.com/google/uuid"
)

type fakeJob struct {
	Kind    string
	Topic   string
	Payload []byte
}

// fakeStore is shared in-memory state behind the fake unit of work.
type fakeStore struct {
	carts       map[uuid.UUID]cart.Cart
	products    map[uuid.UUID]*shared.ProductSnapshot
	idempotency map[string]*shared.IdempotencyRecord
	orders      map[uuid.UUID]*order.Order
	jobs        []fakeJob
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		carts:       make(map[uuid.UUID]cart.Cart),
		products:    make(map[uuid.UUID]*shared.ProductSnapshot),
		idempotency: make(map[string]*shared.IdempotencyRecord),
		orders:      make(map[uuid.UUID]*order.Order),
	}
}

func idemID(key, userID uuid.UUID) string {
	return key.String() + "|" + userID.String()
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Users() shared.UserRepository       { return &fakeUserRepo{} }
func (t *fakeTx) Products() shared.ProductRepository { return &fakeProductRepo{store: t.store} }
func (t *fakeTx) Carts() shared.CartRepository       { return &fakeCartRepo{store: t.store} }
func (t *fakeTx) Orders() shared.OrderRepository     { return &fakeOrderRepo{store: t.store} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository {
	return &fakeIdempotencyRepo{store: t.store}
}
func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{store: t.store}
}
func (t *fakeTx) Reads() shared.CommandReads { return &fakeReads{store: t.store} }
func (t *fakeTx) DB() db.DBTX                { return nil }

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) UserByEmail(_ context.Context, _ string) (*shared.UserSnapshot, error) {
	return nil, notFoundErr("user not found")
}

func (r *fakeReads) UserByResetToken(_ context.Context, _ string) (*shared.UserSnapshot, error) {
	return nil, notFoundErr("user not found")
}

func (r *fakeReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	snap, ok := r.store.products[id]
	if !ok {
		return nil, notFoundErr("product not found")
	}
	return snap, nil
}

func (r *fakeReads) CartByUser(_ context.Context, userID uuid.UUID) (cart.Cart, error) {
	if c, ok := r.store.carts[userID]; ok {
		return c, nil
	}
	return cart.NewCart(userID), nil
}

func (r *fakeReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.store.idempotency[idemID(key, userID)]
	if !ok {
		return nil, notFoundErr("idempotency key not found")
	}
	return rec, nil
}

type fakeUserRepo struct{}

func (r *fakeUserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) (uuid.UUID, error) {
	return u.ID(), nil
}

func (r *fakeUserRepo) SaveResetToken(_ context.Context, _ db.DBTX, _ uuid.UUID, _ string, _ time.Time) error {
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, _ db.DBTX, _ uuid.UUID, _ string) error {
	return nil
}

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(_ context.Context, _ db.DBTX, p *product.Product) (uuid.UUID, error) {
	r.store.products[p.ID()] = &shared.ProductSnapshot{
		ID:          p.ID(),
		Title:       p.Title().String(),
		ImageURL:    p.ImageURL(),
		Description: p.Description(),
		Price:       p.Price().Decimal(),
		CreatedBy:   p.CreatedBy(),
	}
	return p.ID(), nil
}

func (r *fakeProductRepo) Update(_ context.Context, _ db.DBTX, p *product.Product) error {
	if _, ok := r.store.products[p.ID()]; !ok {
		return notFoundErr("product not found")
	}
	r.store.products[p.ID()] = &shared.ProductSnapshot{
		ID:          p.ID(),
		Title:       p.Title().String(),
		ImageURL:    p.ImageURL(),
		Description: p.Description(),
		Price:       p.Price().Decimal(),
		CreatedBy:   p.CreatedBy(),
	}
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.store.products[id]; !ok {
		return notFoundErr("product not found")
	}
	delete(r.store.products, id)
	return nil
}

type fakeCartRepo struct {
	store *fakeStore
}

func (r *fakeCartRepo) Save(_ context.Context, _ db.DBTX, c cart.Cart) error {
	r.store.carts[c.UserID()] = c
	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, _ db.DBTX, userID uuid.UUID) error {
	delete(r.store.carts, userID)
	return nil
}

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) Create(_ context.Context, _ db.DBTX, o *order.Order) (uuid.UUID, error) {
	r.store.orders[o.ID()] = o
	return o.ID(), nil
}

type fakeIdempotencyRepo struct {
	store *fakeStore
}

func (r *fakeIdempotencyRepo) TryInsert(_ context.Context, _ db.DBTX, key, userID uuid.UUID, _, requestHash string, expiresAt time.Time) (bool, error) {
	id := idemID(key, userID)
	if _, ok := r.store.idempotency[id]; ok {
		return false, nil
	}
	r.store.idempotency[id] = &shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      idempotencyStatusProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *fakeIdempotencyRepo) UpdateStatusCompleted(_ context.Context, _ db.DBTX, key, userID uuid.UUID, _ string, orderID uuid.UUID) error {
	rec, ok := r.store.idempotency[idemID(key, userID)]
	if !ok {
		return notFoundErr("idempotency key not found")
	}
	rec.Status = idempotencyStatusCompleted
	rec.ResultOrderID = &orderID
	return nil
}

func (r *fakeIdempotencyRepo) DeleteCompletedForUser(_ context.Context, _ db.DBTX, userID uuid.UUID, _ string) error {
	for id, rec := range r.store.idempotency {
		if rec.UserID == userID && rec.Status == idempotencyStatusCompleted {
			delete(r.store.idempotency, id)
		}
	}
	return nil
}

func (r *fakeIdempotencyRepo) ClaimExpiredIdempotencyKey(_ context.Context, _ db.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	rec, ok := r.store.idempotency[idemID(key, userID)]
	if !ok || !rec.ExpiresAt.Before(time.Now()) {
		return 0, nil
	}
	rec.Status = idempotencyStatusProcessing
	rec.RequestHash = requestHash
	rec.ResultOrderID = nil
	rec.ExpiresAt = expiresAt
	return 1, nil
}

type fakeNotificationRepo struct {
	store *fakeStore
}

func (r *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, _ time.Time) error {
	r.store.jobs = append(r.store.jobs, fakeJob{Kind: kind, Topic: topic, Payload: payload})
	return nil
}

// fakeGateway captures the lines sent to the payment provider.
type fakeGateway struct {
	Session *PaymentSession
	Err     error
	Lines   []PaymentLine
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, lines []PaymentLine) (*PaymentSession, error) {
	g.Lines = lines
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Session, nil
}
