package repository

import (
	"context"

	"go-shop/internal/domain/cart"
	"go-shop/internal/infra"
	"go-shop/internal/infra/db"

	"github.com/google/uuid"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Save rewrites all lines for the cart's user. The position column
// preserves line insertion order across reloads.
func (r *CartRepository) Save(ctx context.Context, tx db.DBTX, c cart.Cart) error {
	const deleteQuery = `DELETE FROM cart_items WHERE user_id = $1`
	const insertQuery = `
		INSERT INTO cart_items (user_id, product_id, quantity, position)
		VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, deleteQuery, c.UserID()); err != nil {
		return infra.WrapRepoErr("failed to clear cart lines", err)
	}

	for i, item := range c.Items() {
		if _, err := tx.Exec(ctx, insertQuery, c.UserID(), item.ProductID(), item.Quantity(), i); err != nil {
			return wrapWriteErr("failed to insert cart line", err)
		}
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	const query = `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := tx.Exec(ctx, query, userID); err != nil {
		return infra.WrapRepoErr("failed to clear cart", err)
	}
	return nil
}
