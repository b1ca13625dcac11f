package repository

import (
	"strings"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortDefault    ProductSort = ""
	ProductSortUnitPrice  ProductSort = "unit_price"
	ProductSortLastUpdate ProductSort = "last_update"
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductFilter narrows a product listing. Price bounds are exclusive and
// Search matches each whitespace-separated word case-insensitively.
type ProductFilter struct {
	CollectionID  *uint
	PriceGreater  *decimal.Decimal
	PriceLess     *decimal.Decimal
	Search        string
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, int64, error)
	FindByID(id uint) (*model.Product, error)
	Exists(id uint) (bool, error)
	Update(product *model.Product) error
	Delete(id uint) error
	CountOrderItems(id uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"title":         product.Title,
		"collection_id": product.CollectionID,
		"unit_price":    product.UnitPrice.String(),
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"title":         product.Title,
			"collection_id": product.CollectionID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})
	return nil
}

func (r *productRepository) applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.CollectionID != nil {
		query = query.Where("products.collection_id = ?", *filter.CollectionID)
	}
	if filter.PriceGreater != nil {
		query = query.Where("products.unit_price > ?", *filter.PriceGreater)
	}
	if filter.PriceLess != nil {
		query = query.Where("products.unit_price < ?", *filter.PriceLess)
	}
	// every word must appear in the title or the description
	for _, term := range strings.Fields(filter.Search) {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		query = query.Where(
			`(LOWER(products.title) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\')`,
			like, like,
		)
	}
	return query
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"collection_id": filter.CollectionID,
		"price_gt":      filter.PriceGreater,
		"price_lt":      filter.PriceLess,
		"search":        filter.Search,
		"sort_by":       filter.SortBy,
		"ascending":     filter.SortAscending,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})

	var total int64
	if err := r.applyFilter(r.db.Model(&model.Product{}), filter).Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err)
		return nil, 0, err
	}

	query := r.applyFilter(r.db.Model(&model.Product{}), filter)

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortUnitPrice:
		query = query.Order("products.unit_price " + direction)
	case ProductSortLastUpdate:
		query = query.Order("products.last_update " + direction)
	}
	// id keeps pages stable when the sort key ties
	query = query.Order("products.id ASC")

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err)
		return nil, 0, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		logger.Debug("Product not loaded from database", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"title":      product.Title,
	})

	err := r.db.Model(product).
		Select("title", "slug", "description", "unit_price", "inventory", "collection_id", "last_update").
		Updates(product).Error
	if err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Debug("Product updated in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

// Delete removes the product with its reviews and cart lines. Callers run it
// inside a transaction.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Where("product_id = ?", id).Delete(&model.Review{}).Error; err != nil {
		logger.Error("Failed to delete product reviews", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	if err := r.db.Where("product_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete product cart items", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

// CountOrderItems reports how many order lines reference the product
func (r *productRepository) CountOrderItems(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.OrderItem{}).Where("product_id = ?", id).Count(&count).Error
	return count, err
}
