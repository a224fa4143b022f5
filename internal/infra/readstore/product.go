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

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (s *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	const query = `
		SELECT id, title, image_url, description, price::text, created_by, created_at, updated_at
		FROM products
		WHERE id = $1`

	var view queries.ProductView
	var price string
	err := s.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Title, &view.ImageURL, &view.Description, &price, &view.CreatedBy, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}

	view.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to parse product price", err)
	}

	return &view, nil
}

func (s *ProductReadStore) FindPage(ctx context.Context, limit, offset int32) ([]*queries.ProductListItem, error) {
	const query = `
		SELECT id, title, image_url, price::text
		FROM products
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	items := make([]*queries.ProductListItem, 0, limit)
	for rows.Next() {
		var item queries.ProductListItem
		var price string
		if err := rows.Scan(&item.ID, &item.Title, &item.ImageURL, &price); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		if item.Price, err = decimal.NewFromString(price); err != nil {
			return nil, infra.WrapRepoErr("failed to parse product price", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read product rows", err)
	}

	return items, nil
}

func (s *ProductReadStore) CountAll(ctx context.Context) (int64, error) {
	const query = `SELECT count(*) FROM products`

	var total int64
	if err := s.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to count products", err)
	}
	return total, nil
}
