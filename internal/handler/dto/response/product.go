package response

import (
	"go-shop/internal/usecase/queries"

	"github.com/google/uuid"
)

type ProductResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Price       string `json:"price"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

func FromProductView(v *queries.ProductView) ProductResponse {
	return ProductResponse{
		ID:          v.ID.String(),
		Title:       v.Title,
		ImageURL:    v.ImageURL,
		Description: v.Description,
		Price:       v.Price.StringFixed(2),
		CreatedAt:   v.CreatedAt.Unix(),
		UpdatedAt:   v.UpdatedAt.Unix(),
	}
}

type ProductListItemResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Price    string `json:"price"`
}

type ProductPageResponse struct {
	Items      []ProductListItemResponse `json:"items"`
	Page       int                       `json:"page"`
	TotalPages int                       `json:"total_pages"`
	TotalItems int64                     `json:"total_items"`
	HasNext    bool                      `json:"has_next"`
	HasPrev    bool                      `json:"has_prev"`
}

func FromProductPage(p *queries.ProductPage) ProductPageResponse {
	items := make([]ProductListItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, ProductListItemResponse{
			ID:       it.ID.String(),
			Title:    it.Title,
			ImageURL: it.ImageURL,
			Price:    it.Price.StringFixed(2),
		})
	}
	return ProductPageResponse{
		Items:      items,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		TotalItems: p.TotalItems,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

type CreateProductResponse struct {
	ID string `json:"id"`
}

func FromCreatedProduct(id uuid.UUID) CreateProductResponse {
	return CreateProductResponse{ID: id.String()}
}
