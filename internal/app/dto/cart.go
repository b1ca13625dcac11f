package dto

import (
	"github.com/google/uuid"
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/shopspring/decimal"
)

// ProductSummary is the product shape nested in cart and order lines.
type ProductSummary struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

func NewProductSummary(p model.Product) ProductSummary {
	return ProductSummary{ID: p.ID, Title: p.Title, UnitPrice: p.UnitPrice}
}

type CartItemResponse struct {
	ID         uint            `json:"id"`
	Product    ProductSummary  `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// LineTotal is quantity times unit price.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func NewCartItemResponse(item model.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:         item.ID,
		Product:    NewProductSummary(item.Product),
		Quantity:   item.Quantity,
		TotalPrice: LineTotal(item.Quantity, item.Product.UnitPrice),
	}
}

func NewCartItemResponses(items []model.CartItem) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewCartItemResponse(item))
	}
	return out
}

type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []CartItemResponse `json:"items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
}

// CartTotal sums the line totals of items.
func CartTotal(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item.Quantity, item.Product.UnitPrice))
	}
	return total
}

func NewCartResponse(cart model.Cart) CartResponse {
	return CartResponse{
		ID:         cart.ID,
		Items:      NewCartItemResponses(cart.Items),
		TotalPrice: CartTotal(cart.Items),
	}
}

// AddedCartItemResponse echoes the line after an add.
type AddedCartItemResponse struct {
	ID        uint `json:"id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func NewAddedCartItemResponse(item model.CartItem) AddedCartItemResponse {
	return AddedCartItemResponse{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity}
}

type UpdatedCartItemResponse struct {
	Quantity int `json:"quantity"`
}
