package service

import (
	"errors"

	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

type ReviewService interface {
	ListReviews(productID uint) ([]model.Review, error)
	GetReview(productID, id uint) (*model.Review, error)
	CreateReview(productID uint, name, description string) (*model.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

func (s *reviewService) ensureProduct(productID uint) error {
	exists, err := s.productRepo.Exists(productID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}
	return nil
}

func (s *reviewService) ListReviews(productID uint) ([]model.Review, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindByProductID(productID)
	if err != nil {
		logger.Error("Failed to list reviews", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return reviews, nil
}

func (s *reviewService) GetReview(productID, id uint) (*model.Review, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(productID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) CreateReview(productID uint, name, description string) (*model.Review, error) {
	if err := s.ensureProduct(productID); err != nil {
		return nil, err
	}

	review := &model.Review{
		ProductID:   productID,
		Name:        name,
		Description: description,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id":  review.ID,
		"product_id": productID,
	})
	return review, nil
}
