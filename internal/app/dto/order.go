package dto

import (
	"time"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/shopspring/decimal"
)

type OrderItemResponse struct {
	ID         uint            `json:"id"`
	Product    ProductSummary  `json:"product"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderResponse struct {
	ID            uint                `json:"id"`
	PlacedAt      time.Time           `json:"placed_at"`
	PaymentStatus model.PaymentStatus `json:"payment_status"`
	Items         []OrderItemResponse `json:"items"`
	TotalPrice    decimal.Decimal     `json:"total_price"`
}

// NewOrderResponse prices lines with the snapshotted unit price, not the current product price.
func NewOrderResponse(order model.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.OrderItems))
	total := decimal.Zero
	for _, item := range order.OrderItems {
		line := LineTotal(item.Quantity, item.UnitPrice)
		total = total.Add(line)
		items = append(items, OrderItemResponse{
			ID:         item.ID,
			Product:    NewProductSummary(item.Product),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: line,
		})
	}
	return OrderResponse{
		ID:            order.ID,
		PlacedAt:      order.PlacedAt,
		PaymentStatus: order.PaymentStatus,
		Items:         items,
		TotalPrice:    total,
	}
}
