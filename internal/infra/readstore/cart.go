package readstore

import (
	"context"

	"go-shop/internal/domain/cart"
	"go-shop/internal/infra"
	"go-shop/internal/infra/db"
	"go-shop/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(dbtx db.DBTX) *CartReadStore {
	return &CartReadStore{db: dbtx}
}

func (s *CartReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.CartItemView, error) {
	const query = `
		SELECT ci.product_id, p.title, p.image_url, p.price::text, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.position`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load cart", err)
	}
	defer rows.Close()

	items := make([]*queries.CartItemView, 0)
	for rows.Next() {
		var item queries.CartItemView
		var price string
		if err := rows.Scan(&item.ProductID, &item.Title, &item.ImageURL, &price, &item.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart row", err)
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, infra.WrapRepoErr("failed to parse cart item price", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart rows", err)
	}

	return items, nil
}

// FindDomainCart rebuilds the cart value type for command handling.
func (s *CartReadStore) FindDomainCart(ctx context.Context, userID uuid.UUID) (cart.Cart, error) {
	const query = `
		SELECT product_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY position`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return cart.Cart{}, infra.WrapRepoErr("failed to load cart", err)
	}
	defer rows.Close()

	items := make([]cart.Item, 0)
	for rows.Next() {
		var productID uuid.UUID
		var quantity int
		if err := rows.Scan(&productID, &quantity); err != nil {
			return cart.Cart{}, infra.WrapRepoErr("failed to scan cart row", err)
		}
		item, err := cart.NewItem(productID, quantity)
		if err != nil {
			return cart.Cart{}, infra.WrapRepoErr("invalid cart line in storage", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return cart.Cart{}, infra.WrapRepoErr("failed to read cart rows", err)
	}

	return cart.Reconstruct(userID, items), nil
}
