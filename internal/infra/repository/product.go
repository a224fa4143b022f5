package repository

import (
	"context"

	"go-shop/internal/domain/product"
	"go-shop/internal/infra"
	"go-shop/internal/infra/db"

	"github.com/google/uuid"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) Create(ctx context.Context, tx db.DBTX, p *product.Product) (uuid.UUID, error) {
	const query = `
		INSERT INTO products (id, title, image_url, description, price, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)
		RETURNING id`

	var createdBy *uuid.UUID
	if p.CreatedBy() != uuid.Nil {
		id := p.CreatedBy()
		createdBy = &id
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		p.ID(), p.Title().String(), p.ImageURL(), p.Description(), p.Price().String(),
		createdBy, p.CreatedAt(), p.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create product", err)
	}

	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, tx db.DBTX, p *product.Product) error {
	const query = `
		UPDATE products
		SET title = $2, image_url = $3, description = $4, price = $5::numeric, updated_at = $6
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		p.ID(), p.Title().String(), p.ImageURL(), p.Description(), p.Price().String(), p.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	const query = `DELETE FROM products WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}
