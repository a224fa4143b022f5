//go:build unit

package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-shop/internal/domain/cart"
	"go-shop/internal/pkg/clock"
	"go-shop/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(store *fakeStore, title, price string) uuid.UUID {
	id := uuid.New()
	store.products[id] = &shared.ProductSnapshot{
		ID:          id,
		Title:       title,
		Description: "desc of " + title,
		Price:       decimal.RequireFromString(price),
	}
	return id
}

func seedCart(t *testing.T, store *fakeStore, userID uuid.UUID, items map[uuid.UUID]int) {
	t.Helper()
	c := cart.NewCart(userID)
	for id, qty := range items {
		var err error
		c, err = c.AddItem(id, qty)
		require.NoError(t, err)
	}
	store.carts[userID] = c
}

func newCheckout(store *fakeStore) (CheckoutCommands, *fakeGateway, *clock.MockClock) {
	gw := &fakeGateway{Session: &PaymentSession{ID: "cs_test_123", URL: "https://pay.example.com/cs_test_123"}}
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewCheckoutUseCase(&fakeUoW{store: store}, gw, clk), gw, clk
}

func TestCheckout_PlaceOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty cart is rejected", func(t *testing.T) {
		store := newFakeStore()
		uc, _, _ := newCheckout(store)

		_, err := uc.PlaceOrder(ctx, userID)
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("fresh checkout snapshots the cart and clears it", func(t *testing.T) {
		store := newFakeStore()
		bookID := seedProduct(store, "Book", "9.99")
		penID := seedProduct(store, "Pen", "2.25")
		seedCart(t, store, userID, map[uuid.UUID]int{bookID: 2, penID: 1})
		uc, _, _ := newCheckout(store)

		result, err := uc.PlaceOrder(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.IsReplayed)

		placed, ok := store.orders[result.OrderID]
		require.True(t, ok)
		assert.Equal(t, userID, placed.UserID())
		assert.Len(t, placed.Lines(), 2)
		assert.Equal(t, "22.23", placed.Total().StringFixed(2))

		_, hasCart := store.carts[userID]
		assert.False(t, hasCart, "cart should be cleared after checkout")

		require.Len(t, store.jobs, 1)
		assert.Equal(t, "order_placed", store.jobs[0].Topic)
	})

	t.Run("retrying an unchanged cart replays the placed order", func(t *testing.T) {
		store := newFakeStore()
		bookID := seedProduct(store, "Book", "9.99")
		seedCart(t, store, userID, map[uuid.UUID]int{bookID: 1})
		uc, _, _ := newCheckout(store)

		first, err := uc.PlaceOrder(ctx, userID)
		require.NoError(t, err)

		// A duplicate delivery still sees the old cart rows.
		seedCart(t, store, userID, map[uuid.UUID]int{bookID: 1})
		second, err := uc.PlaceOrder(ctx, userID)
		require.NoError(t, err)

		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.OrderID, second.OrderID)
		assert.Len(t, store.orders, 1, "no second order is created")
	})

	t.Run("rebuilding the cart places a new order", func(t *testing.T) {
		store := newFakeStore()
		bookID := seedProduct(store, "Book", "9.99")
		seedCart(t, store, userID, map[uuid.UUID]int{bookID: 1})
		uc, _, _ := newCheckout(store)
		cartUC := NewCartUseCase(&fakeUoW{store: store})

		first, err := uc.PlaceOrder(ctx, userID)
		require.NoError(t, err)

		// Re-adding the same content through the cart is a repeat purchase.
		require.NoError(t, cartUC.AddItem(ctx, userID, bookID, 1))

		second, err := uc.PlaceOrder(ctx, userID)
		require.NoError(t, err)

		assert.False(t, second.IsReplayed)
		assert.NotEqual(t, first.OrderID, second.OrderID)
		assert.Len(t, store.orders, 2)
	})

	t.Run("concurrent checkout of the same cart is rejected", func(t *testing.T) {
		store := newFakeStore()
		bookID := seedProduct(store, "Book", "9.99")
		c := cart.NewCart(userID)
		c, err := c.AddItem(bookID, 1)
		require.NoError(t, err)
		store.carts[userID] = c
		uc, _, clk := newCheckout(store)

		key := checkoutKey(cartContent(userID, c))
		store.idempotency[idemID(key, userID)] = &shared.IdempotencyRecord{
			Key:       key,
			UserID:    userID,
			Status:    idempotencyStatusProcessing,
			ExpiresAt: clk.Now().Add(time.Hour),
		}

		_, err = uc.PlaceOrder(ctx, userID)
		require.ErrorIs(t, err, ErrCheckoutInProgress)
	})

	t.Run("stale processing row is taken over", func(t *testing.T) {
		store := newFakeStore()
		bookID := seedProduct(store, "Book", "9.99")
		c := cart.NewCart(userID)
		c, err := c.AddItem(bookID, 1)
		require.NoError(t, err)
		store.carts[userID] = c
		uc, _, _ := newCheckout(store)

		key := checkoutKey(cartContent(userID, c))
		store.idempotency[idemID(key, userID)] = &shared.IdempotencyRecord{
			Key:       key,
			UserID:    userID,
			Status:    idempotencyStatusProcessing,
			ExpiresAt: time.Now().Add(-time.Hour),
		}

		result, err := uc.PlaceOrder(ctx, userID)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.Len(t, store.orders, 1)
	})

	t.Run("product deleted before checkout fails", func(t *testing.T) {
		store := newFakeStore()
		bookID := seedProduct(store, "Book", "9.99")
		seedCart(t, store, userID, map[uuid.UUID]int{bookID: 1})
		delete(store.products, bookID)
		uc, _, _ := newCheckout(store)

		_, err := uc.PlaceOrder(ctx, userID)
		require.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestCheckout_PlaceOrder_SnapshotSurvivesProductEdit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	store := newFakeStore()
	bookID := seedProduct(store, "Book", "9.99")
	seedCart(t, store, userID, map[uuid.UUID]int{bookID: 1})
	uc, _, _ := newCheckout(store)

	result, err := uc.PlaceOrder(ctx, userID)
	require.NoError(t, err)

	// Later price change must not affect the placed order.
	store.products[bookID].Price = decimal.RequireFromString("99.99")

	placed := store.orders[result.OrderID]
	assert.Equal(t, "9.99", placed.Total().StringFixed(2))
	assert.Equal(t, "Book", placed.Lines()[0].Title())
}

func TestCheckout_CreatePaymentSession(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty cart is rejected", func(t *testing.T) {
		store := newFakeStore()
		uc, _, _ := newCheckout(store)

		_, err := uc.CreatePaymentSession(ctx, userID)
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("session is created from cart lines", func(t *testing.T) {
		store := newFakeStore()
		bookID := seedProduct(store, "Book", "9.99")
		seedCart(t, store, userID, map[uuid.UUID]int{bookID: 3})
		uc, gw, _ := newCheckout(store)

		session, err := uc.CreatePaymentSession(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "cs_test_123", session.ID)

		require.Len(t, gw.Lines, 1)
		assert.Equal(t, "Book", gw.Lines[0].Title)
		assert.Equal(t, 3, gw.Lines[0].Quantity)
		assert.Equal(t, "9.99", gw.Lines[0].UnitPrice.StringFixed(2))
	})

	t.Run("gateway failure is marked", func(t *testing.T) {
		store := newFakeStore()
		bookID := seedProduct(store, "Book", "9.99")
		seedCart(t, store, userID, map[uuid.UUID]int{bookID: 1})
		uc, gw, _ := newCheckout(store)
		gw.Err = errors.New("stripe is down")

		_, err := uc.CreatePaymentSession(ctx, userID)
		require.ErrorIs(t, err, ErrPaymentSessionFailed)
	})
}
