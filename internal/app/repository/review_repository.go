package repository

import (
	"github.com/ikkim/storefront/internal/app/model"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByProductID(productID uint) ([]model.Review, error)
	FindByID(productID, id uint) (*model.Review, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

// FindByProductID lists a product's reviews, newest first
func (r *reviewRepository) FindByProductID(productID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.Where("product_id = ?", productID).
		Order("date DESC").
		Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByID loads a review only when it belongs to productID
func (r *reviewRepository) FindByID(productID, id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Where("product_id = ?", productID).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}
