package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/service"
	apperrors "github.com/ikkim/storefront/internal/errors"
	"github.com/ikkim/storefront/internal/middleware"
	"github.com/ikkim/storefront/internal/validation"
)

const notFoundMessage = "Not found."

// parseID reads a numeric path parameter. A malformed id is answered like an unknown one.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.NotFound(c, apperrors.ResourceNotFound, notFoundMessage)
		return 0, false
	}
	return uint(id), true
}

// parseCartID reads the cart UUID from the path; malformed ids are answered with 404.
func parseCartID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.NotFound(c, apperrors.CartNotFound, notFoundMessage)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body into req and answers 400 with field messages on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, validation.FieldErrors(err))
		return false
	}
	return true
}

// trimmed returns s without surrounding whitespace; nil stays nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func fieldError(c *gin.Context, field, message string) {
	apperrors.RespondWithValidationError(c, map[string][]string{field: {message}})
}

// respondServiceError maps service errors to responses. Unknown errors
// are logged and answered by the storage error parser.
func respondServiceError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		apperrors.NotFound(c, apperrors.CollectionNotFound, notFoundMessage)
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, notFoundMessage)
	case errors.Is(err, service.ErrReviewNotFound):
		apperrors.NotFound(c, apperrors.ReviewNotFound, notFoundMessage)
	case errors.Is(err, service.ErrCartNotFound):
		apperrors.NotFound(c, apperrors.CartNotFound, notFoundMessage)
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, notFoundMessage)
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, notFoundMessage)
	case errors.Is(err, service.ErrCollectionNotEmpty):
		apperrors.Conflict(c, apperrors.CollectionNotEmpty,
			"Collection cannot be deleted because it includes one or more products.")
	case errors.Is(err, service.ErrProductInUse):
		apperrors.Conflict(c, apperrors.ProductInUse,
			"Product cannot be deleted because it is associated with an order item.")
	case errors.Is(err, service.ErrInvalidQuantity):
		fieldError(c, "quantity", "Ensure this value is greater than 0.")
	case errors.Is(err, service.ErrQuantityLimit):
		fieldError(c, "quantity", fmt.Sprintf("Ensure this value is less than or equal to %d.", model.MaxItemQuantity))
	default:
		middleware.GetLoggerFromContext(c).Error("Request failed", err, map[string]interface{}{
			"resource": resource,
		})
		apperrors.ParseAndRespond(c, err, resource)
	}
}
