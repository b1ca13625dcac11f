package service

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

type CollectionService interface {
	ListCollections() ([]model.Collection, error)
	GetCollection(id uint) (*model.Collection, error)
	CreateCollection(title string) (*model.Collection, error)
	UpdateCollection(id uint, title *string) (*model.Collection, error)
	DeleteCollection(id uint) error
}

type collectionService struct {
	db             *gorm.DB
	collectionRepo repository.CollectionRepository
}

func NewCollectionService(db *gorm.DB, collectionRepo repository.CollectionRepository) CollectionService {
	return &collectionService{
		db:             db,
		collectionRepo: collectionRepo,
	}
}

func (s *collectionService) ListCollections() ([]model.Collection, error) {
	collections, err := s.collectionRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list collections", err)
		return nil, err
	}
	return collections, nil
}

func (s *collectionService) GetCollection(id uint) (*model.Collection, error) {
	collection, err := s.collectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		logger.Error("Failed to fetch collection", err, map[string]interface{}{
			"collection_id": id,
		})
		return nil, err
	}
	return collection, nil
}

func (s *collectionService) CreateCollection(title string) (*model.Collection, error) {
	collection := &model.Collection{Title: title}
	if err := s.collectionRepo.Create(collection); err != nil {
		logger.Error("Failed to create collection", err, map[string]interface{}{
			"title": title,
		})
		return nil, err
	}

	logger.Info("Collection created", map[string]interface{}{
		"collection_id": collection.ID,
		"title":         collection.Title,
	})
	return collection, nil
}

// UpdateCollection changes the title when one is given and returns the stored collection.
func (s *collectionService) UpdateCollection(id uint, title *string) (*model.Collection, error) {
	collection, err := s.GetCollection(id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		collection.Title = *title
		if err := s.collectionRepo.Update(collection); err != nil {
			logger.Error("Failed to update collection", err, map[string]interface{}{
				"collection_id": id,
			})
			return nil, err
		}
		logger.Info("Collection updated", map[string]interface{}{
			"collection_id": id,
			"title":         collection.Title,
		})
	}

	return collection, nil
}

// DeleteCollection removes an empty collection. A collection that still owns
// products is left untouched and ErrCollectionNotEmpty is returned.
func (s *collectionService) DeleteCollection(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		collectionRepo := repository.NewCollectionRepository(tx)

		exists, err := collectionRepo.Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCollectionNotFound
		}

		count, err := collectionRepo.CountProducts(id)
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Warn("Cannot delete collection: products still assigned", map[string]interface{}{
				"collection_id": id,
				"products":      count,
			})
			return ErrCollectionNotEmpty
		}

		return collectionRepo.Delete(id)
	})
	if err != nil {
		if !errors.Is(err, ErrCollectionNotFound) && !errors.Is(err, ErrCollectionNotEmpty) {
			logger.Error("Failed to delete collection", err, map[string]interface{}{
				"collection_id": id,
			})
		}
		return err
	}

	logger.Info("Collection deleted", map[string]interface{}{
		"collection_id": id,
	})
	return nil
}
