package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Title        string          `gorm:"type:varchar(255);not null" json:"title"`
	Slug         string          `gorm:"type:varchar(255);not null;index" json:"slug"`
	Description  string          `gorm:"type:text" json:"description"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Inventory    int             `gorm:"not null;default:0" json:"inventory"`
	CollectionID uint            `gorm:"not null;index" json:"collection_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:last_update" json:"last_update"`

	// Relationships
	Collection Collection `gorm:"foreignKey:CollectionID;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
