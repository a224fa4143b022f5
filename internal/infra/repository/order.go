package repository

import (
	"context"

	"go-shop/internal/domain/order"
	"go-shop/internal/infra"
	"go-shop/internal/infra/db"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	const orderQuery = `
		INSERT INTO orders (id, user_id, total, created_at)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING id`
	const lineQuery = `
		INSERT INTO order_items (order_id, line_no, product_id, title, description, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7)`

	var id uuid.UUID
	err := tx.QueryRow(ctx, orderQuery, o.ID(), o.UserID(), o.Total().StringFixed(2), o.CreatedAt()).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create order", err)
	}

	for i, line := range o.Lines() {
		_, err := tx.Exec(ctx, lineQuery,
			id, i, line.ProductID(), line.Title(), line.Description(),
			line.UnitPrice().StringFixed(2), line.Quantity(),
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create order line", err)
		}
	}

	return id, nil
}
