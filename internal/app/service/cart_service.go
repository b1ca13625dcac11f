package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

type CartService interface {
	CreateCart() (*model.Cart, error)
	GetCart(id uuid.UUID) (*model.Cart, error)
	DeleteCart(id uuid.UUID) error

	ListItems(cartID uuid.UUID) ([]model.CartItem, error)
	GetItem(cartID uuid.UUID, itemID uint) (*model.CartItem, error)
	AddItem(cartID uuid.UUID, productID uint, quantity int) (*model.CartItem, error)
	UpdateItemQuantity(cartID uuid.UUID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(cartID uuid.UUID, itemID uint) error

	PurgeStaleCarts(ttl time.Duration) (int64, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) CreateCart() (*model.Cart, error) {
	cart := &model.Cart{}
	if err := s.cartRepo.Create(cart); err != nil {
		logger.Error("Failed to create cart", err)
		return nil, err
	}
	cart.Items = []model.CartItem{}

	logger.Info("Cart created", map[string]interface{}{
		"cart_id": cart.ID.String(),
	})
	return cart, nil
}

func (s *cartService) GetCart(id uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"cart_id": id.String(),
		})
		return nil, err
	}
	return cart, nil
}

func (s *cartService) DeleteCart(id uuid.UUID) error {
	deleted, err := s.cartRepo.Delete(id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrCartNotFound
	}

	logger.Info("Cart deleted", map[string]interface{}{
		"cart_id": id.String(),
	})
	return nil
}

func (s *cartService) ensureCart(id uuid.UUID) error {
	exists, err := s.cartRepo.Exists(id)
	if err != nil {
		logger.Error("Failed to check cart", err, map[string]interface{}{
			"cart_id": id.String(),
		})
		return err
	}
	if !exists {
		return ErrCartNotFound
	}
	return nil
}

func (s *cartService) ListItems(cartID uuid.UUID) ([]model.CartItem, error) {
	if err := s.ensureCart(cartID); err != nil {
		return nil, err
	}
	return s.cartRepo.FindItems(cartID)
}

func (s *cartService) GetItem(cartID uuid.UUID, itemID uint) (*model.CartItem, error) {
	if err := s.ensureCart(cartID); err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindItem(cartID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// AddItem puts quantity units of a product into the cart. Adding a product
// that is already in the cart increments its line instead of creating another.
func (s *cartService) AddItem(cartID uuid.UUID, productID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"cart_id":    cartID.String(),
		"product_id": productID,
		"quantity":   quantity,
	})

	if err := s.ensureCart(cartID); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.Exists(productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
			"cart_id":    cartID.String(),
			"product_id": productID,
		})
		return nil, ErrProductNotFound
	}

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity > model.MaxItemQuantity {
		return nil, ErrQuantityLimit
	}

	item, err := s.cartRepo.UpsertItem(cartID, productID, quantity)
	if errors.Is(err, repository.ErrQuantityLimit) {
		logger.Warn("Cannot add to cart: quantity limit reached", map[string]interface{}{
			"cart_id":    cartID.String(),
			"product_id": productID,
			"quantity":   quantity,
		})
		return nil, ErrQuantityLimit
	}
	if err != nil {
		logger.Error("Failed to add item to cart", err, map[string]interface{}{
			"cart_id":    cartID.String(),
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"cart_id":      cartID.String(),
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return item, nil
}

// UpdateItemQuantity sets the line to exactly quantity units. An unknown
// item is reported before an invalid quantity.
func (s *cartService) UpdateItemQuantity(cartID uuid.UUID, itemID uint, quantity int) (*model.CartItem, error) {
	item, err := s.GetItem(cartID, itemID)
	if err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity > model.MaxItemQuantity {
		return nil, ErrQuantityLimit
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItemQuantity(item); err != nil {
		return nil, err
	}

	logger.Info("Cart item updated", map[string]interface{}{
		"cart_id":      cartID.String(),
		"cart_item_id": itemID,
		"quantity":     quantity,
	})
	return item, nil
}

func (s *cartService) RemoveItem(cartID uuid.UUID, itemID uint) error {
	if err := s.ensureCart(cartID); err != nil {
		return err
	}

	deleted, err := s.cartRepo.DeleteItem(cartID, itemID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrCartItemNotFound
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_id":      cartID.String(),
		"cart_item_id": itemID,
	})
	return nil
}

// PurgeStaleCarts deletes carts with no activity for longer than ttl.
func (s *cartService) PurgeStaleCarts(ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	deleted, err := s.cartRepo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}

	logger.Info("Stale carts purged", map[string]interface{}{
		"cutoff":  cutoff.Format(time.RFC3339),
		"deleted": deleted,
	})
	return deleted, nil
}
