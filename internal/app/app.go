// Package app assembles repositories, services and controllers into the HTTP router.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront/config"
	"github.com/ikkim/storefront/internal/app/controller"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/router"
	"gorm.io/gorm"
)

// Services exposes the services the scheduler and tools need outside HTTP.
type Services struct {
	Collection service.CollectionService
	Product    service.ProductService
	Review     service.ReviewService
	Cart       service.CartService
	Order      service.OrderService
}

// NewServices builds every service on db. cache may be nil.
func NewServices(db *gorm.DB, cache service.ProductCache) *Services {
	collectionRepo := repository.NewCollectionRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	return &Services{
		Collection: service.NewCollectionService(db, collectionRepo),
		Product:    service.NewProductService(db, productRepo, collectionRepo, cache),
		Review:     service.NewReviewService(reviewRepo, productRepo),
		Cart:       service.NewCartService(cartRepo, productRepo),
		Order:      service.NewOrderService(db, orderRepo),
	}
}

// NewEngine returns the configured gin engine serving the API.
func NewEngine(services *Services, cfg *config.Config) *gin.Engine {
	r := router.NewRouter(
		controller.NewCollectionController(services.Collection),
		controller.NewProductController(services.Product, cfg.Catalog.PageSize),
		controller.NewReviewController(services.Review),
		controller.NewCartController(services.Cart),
		controller.NewOrderController(services.Order),
		cfg,
	)
	return r.Setup()
}
