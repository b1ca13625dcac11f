package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront/internal/app/dto"
	"github.com/ikkim/storefront/internal/app/service"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

// ListReviews returns a product's reviews, newest first
// GET /api/v1/products/:id/reviews
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	reviews, err := ctrl.reviewService.ListReviews(productID)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewResponses(reviews))
}

// CreateReview
// POST /api/v1/products/:id/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := ctrl.reviewService.CreateReview(productID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}
	c.JSON(http.StatusCreated, dto.NewReviewResponse(*review))
}

// GetReview
// GET /api/v1/products/:id/reviews/:review_id
func (ctrl *ReviewController) GetReview(c *gin.Context) {
	productID, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	review, err := ctrl.reviewService.GetReview(productID, reviewID)
	if err != nil {
		respondServiceError(c, err, "review")
		return
	}
	c.JSON(http.StatusOK, dto.NewReviewResponse(*review))
}
