package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
)

type OrderService interface {
	Checkout(cartID uuid.UUID) (*model.Order, error)
	GetOrder(id uint) (*model.Order, error)
}

type orderService struct {
	db        *gorm.DB
	orderRepo repository.OrderRepository
}

func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository) OrderService {
	return &orderService{
		db:        db,
		orderRepo: orderRepo,
	}
}

// Checkout turns the cart into a pending order and deletes the cart. Each
// order line keeps the product's unit price at the moment of checkout.
func (s *orderService) Checkout(cartID uuid.UUID) (*model.Order, error) {
	logger.Info("Checking out cart", map[string]interface{}{
		"cart_id": cartID.String(),
	})

	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := repository.NewCartRepository(tx)
		orderRepo := repository.NewOrderRepository(tx)

		cart, err := cartRepo.FindByID(cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		order = &model.Order{PaymentStatus: model.PaymentStatusPending}
		for _, item := range cart.Items {
			order.OrderItems = append(order.OrderItems, model.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.UnitPrice,
			})
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		_, err = cartRepo.Delete(cartID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrCartNotFound) || errors.Is(err, ErrEmptyCart) {
			logger.Warn("Checkout rejected", map[string]interface{}{
				"cart_id": cartID.String(),
				"reason":  err.Error(),
			})
		} else {
			logger.Error("Failed to check out cart", err, map[string]interface{}{
				"cart_id": cartID.String(),
			})
		}
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id": order.ID,
		"cart_id":  cartID.String(),
		"items":    len(order.OrderItems),
	})
	return s.GetOrder(order.ID)
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("Failed to fetch order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return order, nil
}
