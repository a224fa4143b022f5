package response

import (
	"go-shop/internal/usecase/commands"
	"go-shop/internal/usecase/queries"
)

type PlaceOrderResponse struct {
	OrderID  string `json:"order_id"`
	Replayed bool   `json:"replayed"`
}

func FromPlaceOrderResult(r *commands.PlaceOrderResult) PlaceOrderResponse {
	return PlaceOrderResponse{
		OrderID:  r.OrderID.String(),
		Replayed: r.IsReplayed,
	}
}

type OrderLineResponse struct {
	ProductID   string `json:"product_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int32  `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Total     string              `json:"total"`
	CreatedAt int64               `json:"created_at"`
	Lines     []OrderLineResponse `json:"lines"`
}

func FromOrderView(v *queries.OrderView) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID:   l.ProductID.String(),
			Title:       l.Title,
			Description: l.Description,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal.StringFixed(2),
		})
	}
	return OrderResponse{
		ID:        v.ID.String(),
		Total:     v.Total.StringFixed(2),
		CreatedAt: v.CreatedAt.Unix(),
		Lines:     lines,
	}
}

type OrderListItemResponse struct {
	ID        string `json:"id"`
	Total     string `json:"total"`
	LineCount int32  `json:"line_count"`
	CreatedAt int64  `json:"created_at"`
}

func FromOrderList(items []*queries.OrderListItem) []OrderListItemResponse {
	out := make([]OrderListItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, OrderListItemResponse{
			ID:        it.ID.String(),
			Total:     it.Total.StringFixed(2),
			LineCount: it.LineCount,
			CreatedAt: it.CreatedAt.Unix(),
		})
	}
	return out
}

type PaymentSessionResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

func FromPaymentSession(s *commands.PaymentSession) PaymentSessionResponse {
	return PaymentSessionResponse{
		SessionID: s.ID,
		URL:       s.URL,
	}
}
