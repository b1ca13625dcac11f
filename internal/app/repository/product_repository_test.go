package repository

import (
	"testing"
	"time"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository, *model.Collection) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	collection := &model.Collection{Title: "Baking"}
	require.NoError(t, testDB.Create(collection).Error)

	return testDB, NewProductRepository(testDB), collection
}

func productTitles(products []model.Product) []string {
	titles := make([]string, 0, len(products))
	for _, p := range products {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestProductRepository_Create(t *testing.T) {
	_, repo, collection := setupProductTest(t)

	product := &model.Product{
		Title:        "Flour",
		Slug:         "flour",
		Description:  "All purpose flour",
		UnitPrice:    decimal.RequireFromString("4.25"),
		Inventory:    30,
		CollectionID: collection.ID,
	}

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.False(t, product.UpdatedAt.IsZero())

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.25").Equal(found.UnitPrice))
}

func TestProductRepository_SearchWildcardsAndWords(t *testing.T) {
	testDB, repo, collection := setupProductTest(t)

	for _, p := range []struct{ title, description string }{
		{"Sugar 100%", "Pure cane"},
		{"Sugar free gum", "Minty"},
		{"Brown_rice", "Whole grain"},
		{"Flour", "Plain"},
	} {
		require.NoError(t, testDB.Create(&model.Product{
			Title:        p.title,
			Slug:         p.title,
			Description:  p.description,
			UnitPrice:    decimal.RequireFromString("1.00"),
			CollectionID: collection.ID,
		}).Error)
	}

	tests := []struct {
		search   string
		expected []string
	}{
		{search: "%", expected: []string{"Sugar 100%"}},
		{search: "_", expected: []string{"Brown_rice"}},
		{search: `\`, expected: []string{}},
		{search: "sugar gum", expected: []string{"Sugar free gum"}},
		{search: "SUGAR pure", expected: []string{"Sugar 100%"}},
		{search: "sugar rice", expected: []string{}},
		{search: "   ", expected: []string{"Sugar 100%", "Sugar free gum", "Brown_rice", "Flour"}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			products, total, err := repo.FindWithFilter(ProductFilter{Search: tt.search})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, productTitles(products))
			assert.Equal(t, int64(len(tt.expected)), total)
		})
	}
}

func TestProductRepository_FindWithFilter(t *testing.T) {
	testDB, repo, baking := setupProductTest(t)

	dairy := &model.Collection{Title: "Dairy"}
	require.NoError(t, testDB.Create(dairy).Error)

	createTestProduct(t, testDB, baking, "Sugar", "3.00")
	createTestProduct(t, testDB, baking, "Yeast", "1.50")
	createTestProduct(t, testDB, dairy, "Butter", "6.40")
	cream := createTestProduct(t, testDB, dairy, "Cream", "4.10")
	require.NoError(t, testDB.Model(cream).Update("description", "Whipping CREAM for cakes").Error)

	t.Run("No filter orders by id", func(t *testing.T) {
		products, total, err := repo.FindWithFilter(ProductFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Equal(t, []string{"Sugar", "Yeast", "Butter", "Cream"}, productTitles(products))
	})

	t.Run("Filter by collection", func(t *testing.T) {
		products, total, err := repo.FindWithFilter(ProductFilter{CollectionID: &dairy.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, []string{"Butter", "Cream"}, productTitles(products))
	})

	t.Run("Exclusive price bounds", func(t *testing.T) {
		gt := decimal.RequireFromString("1.50")
		lt := decimal.RequireFromString("6.40")
		products, total, err := repo.FindWithFilter(ProductFilter{PriceGreater: &gt, PriceLess: &lt})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, []string{"Sugar", "Cream"}, productTitles(products))
	})

	t.Run("Search is case insensitive over title and description", func(t *testing.T) {
		products, _, err := repo.FindWithFilter(ProductFilter{Search: "cake"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Cream"}, productTitles(products))

		products, _, err = repo.FindWithFilter(ProductFilter{Search: "BUTTER"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Butter"}, productTitles(products))
	})

	t.Run("Order by unit price", func(t *testing.T) {
		products, _, err := repo.FindWithFilter(ProductFilter{SortBy: ProductSortUnitPrice, SortAscending: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"Yeast", "Sugar", "Cream", "Butter"}, productTitles(products))

		products, _, err = repo.FindWithFilter(ProductFilter{SortBy: ProductSortUnitPrice})
		require.NoError(t, err)
		assert.Equal(t, []string{"Butter", "Cream", "Sugar", "Yeast"}, productTitles(products))
	})

	t.Run("Limit and offset keep the total", func(t *testing.T) {
		products, total, err := repo.FindWithFilter(ProductFilter{Limit: 3, Offset: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Equal(t, []string{"Cream"}, productTitles(products))
	})
}

func TestProductRepository_OrderByLastUpdate(t *testing.T) {
	testDB, repo, collection := setupProductTest(t)

	first := createTestProduct(t, testDB, collection, "First", "1.00")
	second := createTestProduct(t, testDB, collection, "Second", "1.00")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, testDB.Model(&model.Product{}).Where("id = ?", first.ID).UpdateColumn("last_update", base.Add(time.Hour)).Error)
	require.NoError(t, testDB.Model(&model.Product{}).Where("id = ?", second.ID).UpdateColumn("last_update", base).Error)

	products, _, err := repo.FindWithFilter(ProductFilter{SortBy: ProductSortLastUpdate, SortAscending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Second", "First"}, productTitles(products))

	products, _, err = repo.FindWithFilter(ProductFilter{SortBy: ProductSortLastUpdate})
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second"}, productTitles(products))
}

func TestProductRepository_Update(t *testing.T) {
	testDB, repo, collection := setupProductTest(t)

	product := createTestProduct(t, testDB, collection, "Salt", "0.80")

	product.Title = "Sea Salt"
	product.UnitPrice = decimal.RequireFromString("1.20")
	product.Inventory = 0
	require.NoError(t, repo.Update(product))

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sea Salt", found.Title)
	assert.True(t, decimal.RequireFromString("1.20").Equal(found.UnitPrice))
	assert.Equal(t, 0, found.Inventory)
}

func TestProductRepository_DeleteAndExists(t *testing.T) {
	testDB, repo, collection := setupProductTest(t)

	product := createTestProduct(t, testDB, collection, "Honey", "7.00")

	exists, err := repo.Exists(product.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(product.ID))

	_, err = repo.FindByID(product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_CountOrderItems(t *testing.T) {
	testDB, repo, collection := setupProductTest(t)

	product := createTestProduct(t, testDB, collection, "Vanilla", "9.99")

	count, err := repo.CountOrderItems(product.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	order := &model.Order{
		OrderItems: []model.OrderItem{{ProductID: product.ID, Quantity: 1, UnitPrice: product.UnitPrice}},
	}
	require.NoError(t, testDB.Create(order).Error)

	count, err = repo.CountOrderItems(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
