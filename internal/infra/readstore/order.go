package readstore

import (
	"context"
	"errors"

	"go-shop/internal/infra"
	"go-shop/internal/infra/db"
	"go-shop/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (s *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const orderQuery = `
		SELECT id, user_id, total::text, created_at
		FROM orders
		WHERE id = $1`
	const linesQuery = `
		SELECT product_id, title, description, unit_price::text, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY line_no`

	var view queries.OrderView
	var total string
	err := s.db.QueryRow(ctx, orderQuery, id).Scan(&view.ID, &view.UserID, &total, &view.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	if view.Total, err = decimal.NewFromString(total); err != nil {
		return nil, infra.WrapRepoErr("failed to parse order total", err)
	}

	rows, err := s.db.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line queries.OrderLineView
		var unitPrice string
		if err := rows.Scan(&line.ProductID, &line.Title, &line.Description, &unitPrice, &line.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line", err)
		}
		if line.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, infra.WrapRepoErr("failed to parse line price", err)
		}
		line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity))
		view.Lines = append(view.Lines, &line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order lines", err)
	}

	return &view, nil
}

// FindByUserID returns orders in stable creation order, oldest first.
func (s *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.OrderListItem, error) {
	const query = `
		SELECT o.id, o.total::text, count(oi.order_id), o.created_at
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.user_id = $1
		GROUP BY o.id, o.total, o.created_at
		ORDER BY o.created_at, o.id`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	items := make([]*queries.OrderListItem, 0)
	for rows.Next() {
		var item queries.OrderListItem
		var total string
		if err := rows.Scan(&item.ID, &total, &item.LineCount, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		if item.Total, err = decimal.NewFromString(total); err != nil {
			return nil, infra.WrapRepoErr("failed to parse order total", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order rows", err)
	}

	return items, nil
}
