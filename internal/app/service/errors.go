package service

import "errors"

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrCollectionNotEmpty = errors.New("collection includes one or more products")

	ErrProductNotFound = errors.New("product not found")
	ErrProductInUse    = errors.New("product is associated with an order item")

	ErrReviewNotFound = errors.New("review not found")

	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrQuantityLimit    = errors.New("cart item quantity limit exceeded")

	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
)
