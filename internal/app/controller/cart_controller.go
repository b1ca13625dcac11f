package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront/internal/app/dto"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" binding:"required,gt=0,max=32767"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gt=0,max=32767"`
}

// CreateCart starts a new empty cart
// POST /api/v1/carts
func (ctrl *CartController) CreateCart(c *gin.Context) {
	cart, err := ctrl.cartService.CreateCart()
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Cart created", map[string]interface{}{
		"cart_id": cart.ID.String(),
	})
	c.JSON(http.StatusCreated, dto.NewCartResponse(*cart))
}

// GetCart returns the cart with line totals and the cart total
// GET /api/v1/carts/:id
func (ctrl *CartController) GetCart(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	cart, err := ctrl.cartService.GetCart(cartID)
	if err != nil {
		respondServiceError(c, err, "cart")
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(*cart))
}

// DeleteCart removes the cart and its items
// DELETE /api/v1/carts/:id
func (ctrl *CartController) DeleteCart(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.DeleteCart(cartID); err != nil {
		respondServiceError(c, err, "cart")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListItems
// GET /api/v1/carts/:id/items
func (ctrl *CartController) ListItems(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	items, err := ctrl.cartService.ListItems(cartID)
	if err != nil {
		respondServiceError(c, err, "cart item")
		return
	}
	c.JSON(http.StatusOK, dto.NewCartItemResponses(items))
}

// AddItem adds a product to the cart, merging with an existing line for the same product
// POST /api/v1/carts/:id/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cartID, ok := parseCartID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.cartService.AddItem(cartID, req.ProductID, *req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Unknown product added to cart", map[string]interface{}{
				"cart_id":    cartID.String(),
				"product_id": req.ProductID,
			})
			fieldError(c, "product_id", "No product with the given ID was found.")
			return
		}
		respondServiceError(c, err, "cart item")
		return
	}

	log.Info("Cart item added", map[string]interface{}{
		"cart_id":      cartID.String(),
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	c.JSON(http.StatusCreated, dto.NewAddedCartItemResponse(*item))
}

// GetItem
// GET /api/v1/carts/:id/items/:item_id
func (ctrl *CartController) GetItem(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	item, err := ctrl.cartService.GetItem(cartID, itemID)
	if err != nil {
		respondServiceError(c, err, "cart item")
		return
	}
	c.JSON(http.StatusOK, dto.NewCartItemResponse(*item))
}

// UpdateItem sets the line quantity
// PATCH /api/v1/carts/:id/items/:item_id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	// an unknown item answers 404 whatever the body holds
	if _, err := ctrl.cartService.GetItem(cartID, itemID); err != nil {
		respondServiceError(c, err, "cart item")
		return
	}

	var req UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.cartService.UpdateItemQuantity(cartID, itemID, *req.Quantity)
	if err != nil {
		respondServiceError(c, err, "cart item")
		return
	}
	c.JSON(http.StatusOK, dto.UpdatedCartItemResponse{Quantity: item.Quantity})
}

// RemoveItem
// DELETE /api/v1/carts/:id/items/:item_id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	cartID, ok := parseCartID(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(cartID, itemID); err != nil {
		respondServiceError(c, err, "cart item")
		return
	}
	c.Status(http.StatusNoContent)
}
