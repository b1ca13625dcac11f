package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrQuantityLimit is returned by UpsertItem when the merged quantity would
// exceed model.MaxItemQuantity. The stored line is left unchanged.
var ErrQuantityLimit = errors.New("cart item quantity limit exceeded")

type CartRepository interface {
	Create(cart *model.Cart) error
	FindByID(id uuid.UUID) (*model.Cart, error)
	Exists(id uuid.UUID) (bool, error)
	Delete(id uuid.UUID) (int64, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)

	UpsertItem(cartID uuid.UUID, productID uint, quantity int) (*model.CartItem, error)
	FindItems(cartID uuid.UUID) ([]model.CartItem, error)
	FindItem(cartID uuid.UUID, itemID uint) (*model.CartItem, error)
	UpdateItemQuantity(item *model.CartItem) error
	DeleteItem(cartID uuid.UUID, itemID uint) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err)
		return err
	}

	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id": cart.ID.String(),
	})
	return nil
}

func (r *cartRepository) FindByID(id uuid.UUID) (*model.Cart, error) {
	logger.Debug("Finding cart by ID in database", map[string]interface{}{
		"cart_id": id.String(),
	})

	var cart model.Cart
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Product").
		First(&cart, "id = ?", id).Error
	if err != nil {
		logger.Debug("Cart not loaded from database", map[string]interface{}{
			"cart_id": id.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Debug("Cart found by ID in database", map[string]interface{}{
		"cart_id": cart.ID.String(),
		"items":   len(cart.Items),
	})
	return &cart, nil
}

func (r *cartRepository) Exists(id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Cart{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the cart and its items in one transaction and returns the number of carts removed.
func (r *cartRepository) Delete(id uuid.UUID) (int64, error) {
	logger.Debug("Deleting cart from database", map[string]interface{}{
		"cart_id": id.String(),
	})

	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Cart{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to delete cart from database", err, map[string]interface{}{
			"cart_id": id.String(),
		})
		return 0, err
	}
	return deleted, nil
}

// DeleteOlderThan purges carts with no activity since cutoff together with their items.
func (r *cartRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&model.Cart{}).Select("id").Where("updated_at < ?", cutoff)
		if err := tx.Where("cart_id IN (?)", stale).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("updated_at < ?", cutoff).Delete(&model.Cart{})
		deleted = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to purge stale carts", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}

	logger.Debug("Stale carts purged from database", map[string]interface{}{
		"cutoff":  cutoff,
		"deleted": deleted,
	})
	return deleted, nil
}

// touchCart records activity on the cart so the purge job keeps it.
func touchCart(tx *gorm.DB, cartID uuid.UUID) error {
	return tx.Model(&model.Cart{}).Where("id = ?", cartID).UpdateColumn("updated_at", time.Now()).Error
}

// UpsertItem adds quantity to the (cart, product) line, creating it when absent.
// The increment happens in a single INSERT ... ON CONFLICT statement against the
// unique (cart_id, product_id) index, so concurrent adds neither lose updates nor
// create duplicate rows.
func (r *cartRepository) UpsertItem(cartID uuid.UUID, productID uint, quantity int) (*model.CartItem, error) {
	logger.Debug("Upserting cart item in database", map[string]interface{}{
		"cart_id":    cartID.String(),
		"product_id": productID,
		"quantity":   quantity,
	})

	var stored model.CartItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		item := &model.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("excluded.updated_at"),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("cart_items.quantity + excluded.quantity <= ?", model.MaxItemQuantity),
			}},
		}).Create(item)
		if result.Error != nil {
			return result.Error
		}
		// the conflict WHERE skipped the update
		if result.RowsAffected == 0 {
			return ErrQuantityLimit
		}
		if err := touchCart(tx, cartID); err != nil {
			return err
		}

		// Re-read by natural key; the returned primary key is unreliable after a conflict on some drivers.
		return tx.Preload("Product").
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&stored).Error
	})
	if errors.Is(err, ErrQuantityLimit) {
		logger.Debug("Cart item quantity limit reached", map[string]interface{}{
			"cart_id":    cartID.String(),
			"product_id": productID,
		})
		return nil, err
	}
	if err != nil {
		logger.Error("Failed to upsert cart item in database", err, map[string]interface{}{
			"cart_id":    cartID.String(),
			"product_id": productID,
		})
		return nil, err
	}

	logger.Debug("Cart item upserted in database", map[string]interface{}{
		"cart_item_id": stored.ID,
		"quantity":     stored.Quantity,
	})
	return &stored, nil
}

func (r *cartRepository) FindItems(cartID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Preload("Product").
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items in database", err, map[string]interface{}{
			"cart_id": cartID.String(),
		})
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindItem(cartID uuid.UUID, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Preload("Product").
		Where("cart_id = ?", cartID).
		First(&item, itemID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) UpdateItemQuantity(item *model.CartItem) error {
	logger.Debug("Updating cart item quantity in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.CartItem{}).
			Where("id = ? AND cart_id = ?", item.ID, item.CartID).
			Updates(map[string]interface{}{
				"quantity":   item.Quantity,
				"updated_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}
		return touchCart(tx, item.CartID)
	})
	if err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

// DeleteItem removes the item only when it belongs to cartID and returns the rows removed.
func (r *cartRepository) DeleteItem(cartID uuid.UUID, itemID uint) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&model.CartItem{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if deleted == 0 {
			return nil
		}
		return touchCart(tx, cartID)
	})
	if err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_id":      cartID.String(),
			"cart_item_id": itemID,
		})
		return 0, err
	}
	return deleted, nil
}
