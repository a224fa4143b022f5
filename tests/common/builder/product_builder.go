//go:build unit || e2e

package builder

import (
	"time"

	"go-shop/internal/domain/product"
	reqdto "go-shop/internal/handler/dto/request"
	"go-shop/internal/usecase/queries"
	"go-shop/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID          uuid.UUID
	Title       string
	ImageURL    string
	Description string
	Price       string
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:          uuid.New(),
		Title:       "Test Book",
		ImageURL:    "https://img.example.com/book.png",
		Description: "A book used in tests",
		Price:       "9.99",
		CreatedBy:   uuid.New(),
		CreatedAt:   time.Now(),
	}
}

func (p *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(p)
	return p
}

// Build methods
func (p *ProductBuilder) BuildDomain() (*product.Product, error) {
	return product.NewProduct(p.ID, p.Title, p.ImageURL, p.Description, p.Price, p.CreatedBy, p.CreatedAt)
}

func (p *ProductBuilder) BuildView() *queries.ProductView {
	price, _ := decimal.NewFromString(p.Price)
	return &queries.ProductView{
		ID:          p.ID,
		Title:       p.Title,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Price:       price,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.CreatedAt,
	}
}

func (p *ProductBuilder) BuildListItem() *queries.ProductListItem {
	price, _ := decimal.NewFromString(p.Price)
	return &queries.ProductListItem{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    price,
	}
}

func (p *ProductBuilder) BuildSnapshot() *shared.ProductSnapshot {
	price, _ := decimal.NewFromString(p.Price)
	return &shared.ProductSnapshot{
		ID:          p.ID,
		Title:       p.Title,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Price:       price,
		CreatedBy:   p.CreatedBy,
	}
}

func (p *ProductBuilder) BuildCreateRequestDTO() reqdto.CreateProductRequest {
	return reqdto.CreateProductRequest{
		Title:       p.Title,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Price:       p.Price,
	}
}

func (p *ProductBuilder) BuildUpdateRequestDTO() reqdto.UpdateProductRequest {
	return reqdto.UpdateProductRequest{
		Title:       p.Title,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Price:       p.Price,
	}
}

// Fluent builder methods
func (p *ProductBuilder) WithID(id uuid.UUID) *ProductBuilder {
	p.ID = id
	return p
}

func (p *ProductBuilder) WithTitle(title string) *ProductBuilder {
	p.Title = title
	return p
}

func (p *ProductBuilder) WithPrice(price string) *ProductBuilder {
	p.Price = price
	return p
}

func (p *ProductBuilder) WithDescription(description string) *ProductBuilder {
	p.Description = description
	return p
}

func (p *ProductBuilder) WithCreatedAt(createdAt time.Time) *ProductBuilder {
	p.CreatedAt = createdAt
	return p
}
