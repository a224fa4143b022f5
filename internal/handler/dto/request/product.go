package request

import (
	"go-shop/internal/usecase/commands"
)

type CreateProductRequest struct {
	Title       string `json:"title" binding:"required"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
}

func (r CreateProductRequest) ToCommand() commands.CreateProductRequest {
	return commands.CreateProductRequest{
		Title:       r.Title,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Price:       r.Price,
	}
}

type UpdateProductRequest struct {
	Title       string `json:"title" binding:"required"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
}

func (r UpdateProductRequest) ToCommand() commands.UpdateProductRequest {
	return commands.UpdateProductRequest{
		Title:       r.Title,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Price:       r.Price,
	}
}
