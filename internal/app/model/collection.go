package model

import "time"

type Collection struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ProductsCount is filled by list/detail queries that select the product count subquery.
	ProductsCount int64 `gorm:"->;-:migration" json:"products_count"`
}

func (Collection) TableName() string {
	return "collections"
}
