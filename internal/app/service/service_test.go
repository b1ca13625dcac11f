package service

import (
	"testing"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func seedCollection(t *testing.T, testDB *gorm.DB, title string) *model.Collection {
	t.Helper()
	collection := &model.Collection{Title: title}
	require.NoError(t, testDB.Create(collection).Error)
	return collection
}

func seedProduct(t *testing.T, testDB *gorm.DB, collection *model.Collection, title, price string) *model.Product {
	t.Helper()
	product := &model.Product{
		Title:        title,
		Slug:         title,
		UnitPrice:    decimal.RequireFromString(price),
		Inventory:    5,
		CollectionID: collection.ID,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func uintPtr(u uint) *uint { return &u }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
