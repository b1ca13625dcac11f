package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ikkim/storefront/internal/app/dto"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CheckoutRequest struct {
	CartID string `json:"cart_id" binding:"required,uuid"`
}

// Checkout converts a cart into an order
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	cartID, err := uuid.Parse(req.CartID)
	if err != nil {
		fieldError(c, "cart_id", "Must be a valid UUID.")
		return
	}

	order, err := ctrl.orderService.Checkout(cartID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartNotFound):
			fieldError(c, "cart_id", "No cart with the given ID was found.")
		case errors.Is(err, service.ErrEmptyCart):
			fieldError(c, "cart_id", "The cart is empty.")
		default:
			respondServiceError(c, err, "order")
		}
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
		"cart_id":  cartID.String(),
	})
	c.JSON(http.StatusCreated, dto.NewOrderResponse(*order))
}

// GetOrder
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(id)
	if err != nil {
		respondServiceError(c, err, "order")
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}
