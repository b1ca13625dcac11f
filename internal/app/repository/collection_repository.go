package repository

import (
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

const productsCountSelect = "collections.*, " +
	"(SELECT COUNT(*) FROM products WHERE products.collection_id = collections.id) AS products_count"

type CollectionRepository interface {
	Create(collection *model.Collection) error
	FindAll() ([]model.Collection, error)
	FindByID(id uint) (*model.Collection, error)
	Exists(id uint) (bool, error)
	Update(collection *model.Collection) error
	Delete(id uint) error
	CountProducts(id uint) (int64, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) withProductsCount() *gorm.DB {
	return r.db.Model(&model.Collection{}).Select(productsCountSelect)
}

func (r *collectionRepository) Create(collection *model.Collection) error {
	logger.Debug("Creating collection in database", map[string]interface{}{
		"title": collection.Title,
	})

	if err := r.db.Create(collection).Error; err != nil {
		logger.Error("Failed to create collection in database", err, map[string]interface{}{
			"title": collection.Title,
		})
		return err
	}

	logger.Debug("Collection created in database", map[string]interface{}{
		"collection_id": collection.ID,
	})
	return nil
}

func (r *collectionRepository) FindAll() ([]model.Collection, error) {
	var collections []model.Collection
	if err := r.withProductsCount().Order("collections.id ASC").Find(&collections).Error; err != nil {
		logger.Error("Failed to list collections from database", err)
		return nil, err
	}

	logger.Debug("Collections listed from database", map[string]interface{}{
		"count": len(collections),
	})
	return collections, nil
}

func (r *collectionRepository) FindByID(id uint) (*model.Collection, error) {
	var collection model.Collection
	if err := r.withProductsCount().Where("collections.id = ?", id).First(&collection).Error; err != nil {
		logger.Debug("Collection not loaded from database", map[string]interface{}{
			"collection_id": id,
			"error":         err.Error(),
		})
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Collection{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *collectionRepository) Update(collection *model.Collection) error {
	logger.Debug("Updating collection in database", map[string]interface{}{
		"collection_id": collection.ID,
		"title":         collection.Title,
	})

	if err := r.db.Model(collection).Select("title", "updated_at").Updates(collection).Error; err != nil {
		logger.Error("Failed to update collection in database", err, map[string]interface{}{
			"collection_id": collection.ID,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) Delete(id uint) error {
	logger.Debug("Deleting collection from database", map[string]interface{}{
		"collection_id": id,
	})

	if err := r.db.Delete(&model.Collection{}, id).Error; err != nil {
		logger.Error("Failed to delete collection from database", err, map[string]interface{}{
			"collection_id": id,
		})
		return err
	}
	return nil
}

func (r *collectionRepository) CountProducts(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("collection_id = ?", id).Count(&count).Error
	return count, err
}
