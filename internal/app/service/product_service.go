package service

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const cacheTimeout = 500 * time.Millisecond

// ProductCache is a best-effort read-through cache for product detail.
type ProductCache interface {
	Get(ctx context.Context, id uint) (*model.Product, bool, error)
	Set(ctx context.Context, product *model.Product) error
	Invalidate(ctx context.Context, id uint) error
}

// ProductInput carries product fields; nil fields are left unchanged on update.
type ProductInput struct {
	Title        *string
	Slug         *string
	Description  *string
	UnitPrice    *decimal.Decimal
	Inventory    *int
	CollectionID *uint
}

type ProductService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error)
	GetProduct(id uint) (*model.Product, error)
	CreateProduct(input ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error
}

type productService struct {
	db             *gorm.DB
	productRepo    repository.ProductRepository
	collectionRepo repository.CollectionRepository
	cache          ProductCache
}

// NewProductService wires the product service. cache may be nil.
func NewProductService(
	db *gorm.DB,
	productRepo repository.ProductRepository,
	collectionRepo repository.CollectionRepository,
	cache ProductCache,
) ProductService {
	return &productService{
		db:             db,
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
		cache:          cache,
	}
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error) {
	products, total, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, 0, err
	}
	return products, total, nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	if product, ok := s.cachedProduct(id); ok {
		return product, nil
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	s.storeProduct(product)
	return product, nil
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	product := &model.Product{}
	applyProductInput(product, input)

	if err := s.ensureCollection(product.CollectionID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"title": product.Title,
		})
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id":    product.ID,
		"collection_id": product.CollectionID,
		"unit_price":    product.UnitPrice.String(),
	})
	return product, nil
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.CollectionID != nil && *input.CollectionID != product.CollectionID {
		if err := s.ensureCollection(*input.CollectionID); err != nil {
			return nil, err
		}
	}

	applyProductInput(product, input)
	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	s.invalidateProduct(id)

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return product, nil
}

// DeleteProduct removes a product that no order line references; otherwise
// the product is left untouched and ErrProductInUse is returned.
func (s *productService) DeleteProduct(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		productRepo := repository.NewProductRepository(tx)

		exists, err := productRepo.Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}

		count, err := productRepo.CountOrderItems(id)
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Warn("Cannot delete product: referenced by order items", map[string]interface{}{
				"product_id":  id,
				"order_items": count,
			})
			return ErrProductInUse
		}

		return productRepo.Delete(id)
	})
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) && !errors.Is(err, ErrProductInUse) {
			logger.Error("Failed to delete product", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return err
	}

	s.invalidateProduct(id)
	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) ensureCollection(id uint) error {
	exists, err := s.collectionRepo.Exists(id)
	if err != nil {
		logger.Error("Failed to check collection", err, map[string]interface{}{
			"collection_id": id,
		})
		return err
	}
	if !exists {
		logger.Warn("Product references unknown collection", map[string]interface{}{
			"collection_id": id,
		})
		return ErrCollectionNotFound
	}
	return nil
}

func applyProductInput(product *model.Product, input ProductInput) {
	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Slug != nil {
		product.Slug = *input.Slug
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.UnitPrice != nil {
		product.UnitPrice = *input.UnitPrice
	}
	if input.Inventory != nil {
		product.Inventory = *input.Inventory
	}
	if input.CollectionID != nil {
		product.CollectionID = *input.CollectionID
	}
}

// Cache failures are logged and otherwise ignored.

func (s *productService) cachedProduct(id uint) (*model.Product, bool) {
	if s.cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	product, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		logger.Warn("Product cache read failed", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, false
	}
	return product, ok
}

func (s *productService) storeProduct(product *model.Product) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := s.cache.Set(ctx, product); err != nil {
		logger.Warn("Product cache write failed", map[string]interface{}{
			"product_id": product.ID,
			"error":      err.Error(),
		})
	}
}

func (s *productService) invalidateProduct(id uint) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	if err := s.cache.Invalidate(ctx, id); err != nil {
		logger.Warn("Product cache invalidation failed", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
	}
}
