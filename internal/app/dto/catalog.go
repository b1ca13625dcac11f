// Package dto maps stored models to response bodies and computes the derived
// money values shown to clients.
package dto

import (
	"time"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/shopspring/decimal"
)

// TaxRate is applied to unit_price to produce price_with_tax.
var TaxRate = decimal.RequireFromString("1.1")

type CollectionResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	ProductsCount int64  `json:"products_count"`
}

func NewCollectionResponse(c model.Collection) CollectionResponse {
	return CollectionResponse{
		ID:            c.ID,
		Title:         c.Title,
		ProductsCount: c.ProductsCount,
	}
}

func NewCollectionResponses(collections []model.Collection) []CollectionResponse {
	out := make([]CollectionResponse, 0, len(collections))
	for _, c := range collections {
		out = append(out, NewCollectionResponse(c))
	}
	return out
}

type ProductResponse struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Slug         string          `json:"slug"`
	Inventory    int             `json:"inventory"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PriceWithTax decimal.Decimal `json:"price_with_tax"`
	Collection   uint            `json:"collection"`
	LastUpdate   time.Time       `json:"last_update"`
}

// PriceWithTax is unit price times TaxRate, exact and unrounded.
func PriceWithTax(unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(TaxRate)
}

func NewProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Slug:         p.Slug,
		Inventory:    p.Inventory,
		UnitPrice:    p.UnitPrice,
		PriceWithTax: PriceWithTax(p.UnitPrice),
		Collection:   p.CollectionID,
		LastUpdate:   p.UpdatedAt,
	}
}

func NewProductResponses(products []model.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

type ReviewResponse struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

func NewReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{
		ID:          r.ID,
		Date:        r.Date,
		Name:        r.Name,
		Description: r.Description,
	}
}

func NewReviewResponses(reviews []model.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, NewReviewResponse(r))
	}
	return out
}
