package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront/config"
	"github.com/ikkim/storefront/internal/app/controller"
	apperrors "github.com/ikkim/storefront/internal/errors"
	"github.com/ikkim/storefront/internal/middleware"
)

type Router struct {
	collectionController *controller.CollectionController
	productController    *controller.ProductController
	reviewController     *controller.ReviewController
	cartController       *controller.CartController
	orderController      *controller.OrderController
	config               *config.Config
}

func NewRouter(
	collectionController *controller.CollectionController,
	productController *controller.ProductController,
	reviewController *controller.ReviewController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	cfg *config.Config,
) *Router {
	return &Router{
		collectionController: collectionController,
		productController:    productController,
		reviewController:     reviewController,
		cartController:       cartController,
		orderController:      orderController,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware(r.config.CORS.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Not found.")
	})
	router.NoMethod(func(c *gin.Context) {
		apperrors.RespondWithError(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			`Method "`+c.Request.Method+`" not allowed.`)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Storefront API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		collections := v1.Group("/collections")
		{
			collections.GET("", r.collectionController.ListCollections)
			collections.POST("", r.collectionController.CreateCollection)
			collections.GET("/:id", r.collectionController.GetCollection)
			collections.PUT("/:id", r.collectionController.UpdateCollection)
			collections.PATCH("/:id", r.collectionController.PatchCollection)
			collections.DELETE("/:id", r.collectionController.DeleteCollection)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.POST("", r.productController.CreateProduct)
			products.GET("/:id", r.productController.GetProduct)
			products.PUT("/:id", r.productController.UpdateProduct)
			products.PATCH("/:id", r.productController.PatchProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)

			products.GET("/:id/reviews", r.reviewController.ListReviews)
			products.POST("/:id/reviews", r.reviewController.CreateReview)
			products.GET("/:id/reviews/:review_id", r.reviewController.GetReview)
		}

		carts := v1.Group("/carts")
		{
			carts.POST("", r.cartController.CreateCart)
			carts.GET("/:id", r.cartController.GetCart)
			carts.DELETE("/:id", r.cartController.DeleteCart)

			carts.GET("/:id/items", r.cartController.ListItems)
			carts.POST("/:id/items", r.cartController.AddItem)
			carts.GET("/:id/items/:item_id", r.cartController.GetItem)
			carts.PATCH("/:id/items/:item_id", r.cartController.UpdateItem)
			carts.DELETE("/:id/items/:item_id", r.cartController.RemoveItem)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("", r.orderController.Checkout)
			orders.GET("/:id", r.orderController.GetOrder)
		}
	}

	return router
}
