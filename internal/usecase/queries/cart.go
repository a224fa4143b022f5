package queries

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	ImageURL  string          `json:"image_url"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int32           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartView struct {
	Items []*CartItemView `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type CartQueries interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*CartView, error)
}

type CartViewRepo interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*CartItemView, error)
}

type cartQueriesImpl struct {
	repo CartViewRepo
}

func NewCartQueries(repo CartViewRepo) CartQueries {
	return &cartQueriesImpl{repo: repo}
}

func (q *cartQueriesImpl) GetByUser(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	items, err := q.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, it := range items {
		it.Subtotal = it.UnitPrice.Mul(decimal.NewFromInt32(it.Quantity))
		total = total.Add(it.Subtotal)
	}

	return &CartView{Items: items, Total: total}, nil
}
