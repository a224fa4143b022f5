package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultPageSize = 20

// Read models (DTO for read side)
type ProductView struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	ImageURL    string          `json:"image_url"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ProductListItem struct {
	ID       uuid.UUID       `json:"id"`
	Title    string          `json:"title"`
	ImageURL string          `json:"image_url"`
	Price    decimal.Decimal `json:"price"`
}

type ProductPage struct {
	Items      []*ProductListItem `json:"items"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
	TotalItems int64              `json:"total_items"`
	HasNext    bool               `json:"has_next"`
	HasPrev    bool               `json:"has_prev"`
}

type ProductQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	List(ctx context.Context, page, pageSize int) (*ProductPage, error)
}

type ProductViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindPage(ctx context.Context, limit, offset int32) ([]*ProductListItem, error)
	CountAll(ctx context.Context) (int64, error)
}

type productQueriesImpl struct {
	repo ProductViewRepo
}

func NewProductQueries(repo ProductViewRepo) ProductQueries {
	return &productQueriesImpl{repo: repo}
}

func (q *productQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *productQueriesImpl) List(ctx context.Context, page, pageSize int) (*ProductPage, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total, err := q.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	items, err := q.repo.FindPage(ctx, int32(pageSize), int32(offset))
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ProductPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}, nil
}
