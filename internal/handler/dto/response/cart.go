package response

import (
	"go-shop/internal/usecase/queries"
)

type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	UnitPrice string `json:"unit_price"`
	Quantity  int32  `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total string             `json:"total"`
}

func FromCartView(v *queries.CartView) CartResponse {
	items := make([]CartItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, CartItemResponse{
			ProductID: it.ProductID.String(),
			Title:     it.Title,
			ImageURL:  it.ImageURL,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal.StringFixed(2),
		})
	}
	return CartResponse{
		Items: items,
		Total: v.Total.StringFixed(2),
	}
}
