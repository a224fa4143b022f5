package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"go-shop/internal/domain/cart"
	"go-shop/internal/domain/order"
	"go-shop/internal/infra"
	"go-shop/internal/pkg/clock"
	"go-shop/internal/pkg/errs"
	"go-shop/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart              = errs.New("cart is empty")
	ErrCheckoutInProgress     = errs.New("checkout already in progress")
	ErrIdempotencyCheckFailed = errs.New("idempotency check failed")
	ErrPaymentSessionFailed   = errs.New("failed to create payment session")
)

const (
	checkoutEndpoint            = "POST /api/orders"
	idempotencyStatusCompleted  = "completed"
	idempotencyStatusProcessing = "processing"
)

type PlaceOrderResult struct {
	OrderID    uuid.UUID
	IsReplayed bool
}

type PaymentLine struct {
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}

type PaymentSession struct {
	ID  string
	URL string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, lines []PaymentLine) (*PaymentSession, error)
}

type CheckoutCommands interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID) (*PlaceOrderResult, error)
	CreatePaymentSession(ctx context.Context, userID uuid.UUID) (*PaymentSession, error)
}

type checkoutUseCaseImpl struct {
	uow     shared.UnitOfWork
	payment PaymentGateway
	clock   clock.Clock
}

func NewCheckoutUseCase(uow shared.UnitOfWork, payment PaymentGateway, clk clock.Clock) CheckoutCommands {
	return &checkoutUseCaseImpl{uow: uow, payment: payment, clock: clk}
}

// PlaceOrder snapshots the cart into an immutable order, clears the
// cart and records the idempotency key in one transaction. Retrying
// the same cart content replays the already placed order.
func (uc *checkoutUseCaseImpl) PlaceOrder(ctx context.Context, userID uuid.UUID) (*PlaceOrderResult, error) {
	var result *PlaceOrderResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reads().CartByUser(ctx, userID)
		if err != nil {
			return err
		}
		if current.IsEmpty() {
			return ErrEmptyCart
		}

		content := cartContent(userID, current)
		key := checkoutKey(content)
		requestHash := hashString(content)
		now := uc.clock.Now()

		fresh, err := uc.claimKey(ctx, tx, key, userID, requestHash, now)
		if err != nil {
			return err
		}
		if !fresh {
			record, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
			if err != nil {
				return errs.Mark(err, ErrIdempotencyCheckFailed)
			}

			switch record.Status {
			case idempotencyStatusCompleted:
				if record.ResultOrderID == nil {
					return errs.New("completed checkout missing result order id")
				}
				result = &PlaceOrderResult{OrderID: *record.ResultOrderID, IsReplayed: true}
				return nil
			case idempotencyStatusProcessing:
				return ErrCheckoutInProgress
			default:
				return errs.New("invalid idempotency key status")
			}
		}

		placed, err := uc.placeNewOrder(ctx, tx, userID, current, key, now)
		if err != nil {
			return err
		}
		result = &PlaceOrderResult{OrderID: placed, IsReplayed: false}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// claimKey reports whether this request now owns the key, either by a
// fresh insert or by taking over an expired row.
func (uc *checkoutUseCaseImpl) claimKey(ctx context.Context, tx shared.Tx, key, userID uuid.UUID, requestHash string, now time.Time) (bool, error) {
	expiresAt := now.Add(24 * time.Hour)

	inserted, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, checkoutEndpoint, requestHash, expiresAt)
	if err != nil {
		return false, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		return true, nil
	}

	claimed, err := tx.Idempotency().ClaimExpiredIdempotencyKey(ctx, tx.DB(), key, userID, requestHash, expiresAt)
	if err != nil {
		return false, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	return claimed > 0, nil
}

func (uc *checkoutUseCaseImpl) placeNewOrder(ctx context.Context, tx shared.Tx, userID uuid.UUID, current cart.Cart, key uuid.UUID, now time.Time) (uuid.UUID, error) {
	lines, err := uc.snapshotLines(ctx, tx, current)
	if err != nil {
		return uuid.Nil, err
	}

	newOrder, err := order.NewOrder(uuid.Nil, userID, lines, now)
	if err != nil {
		return uuid.Nil, err
	}

	orderID, err := tx.Orders().Create(ctx, tx.DB(), newOrder)
	if err != nil {
		return uuid.Nil, err
	}

	if err := tx.Carts().Clear(ctx, tx.DB(), userID); err != nil {
		return uuid.Nil, err
	}

	payload, err := json.Marshal(map[string]any{
		"order_id": orderID,
		"user_id":  userID,
		"total":    newOrder.Total().StringFixed(2),
		"type":     "order_placed",
	})
	if err != nil {
		return uuid.Nil, err
	}
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", "order_placed", payload, now); err != nil {
		return uuid.Nil, err
	}

	resultHash := hashString(orderID.String())
	if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), key, userID, resultHash, orderID); err != nil {
		return uuid.Nil, err
	}

	return orderID, nil
}

func (uc *checkoutUseCaseImpl) snapshotLines(ctx context.Context, tx shared.Tx, current cart.Cart) ([]order.Line, error) {
	items := current.Items()
	lines := make([]order.Line, 0, len(items))

	for _, item := range items {
		snap, err := tx.Reads().ProductByID(ctx, item.ProductID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}

		line, err := order.NewLine(snap.ID, snap.Title, snap.Description, snap.Price, item.Quantity())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (uc *checkoutUseCaseImpl) CreatePaymentSession(ctx context.Context, userID uuid.UUID) (*PaymentSession, error) {
	reads := uc.uow.CommandReads()

	current, err := reads.CartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := current.Items()
	lines := make([]PaymentLine, 0, len(items))
	for _, item := range items {
		snap, err := reads.ProductByID(ctx, item.ProductID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		lines = append(lines, PaymentLine{
			Title:     snap.Title,
			UnitPrice: snap.Price,
			Quantity:  item.Quantity(),
		})
	}

	session, err := uc.payment.CreateCheckoutSession(ctx, lines)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentSessionFailed)
	}
	return session, nil
}

// cartContent is a canonical encoding of the cart. Equal carts always
// produce the same string regardless of line order.
func cartContent(userID uuid.UUID, current cart.Cart) string {
	items := current.Items()
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.ProductID().String()+":"+strconv.Itoa(item.Quantity()))
	}
	sort.Strings(parts)
	return userID.String() + "|" + strings.Join(parts, ";")
}

func checkoutKey(content string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(content))
}

func hashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}
