package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront/internal/app/model"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/internal/middleware"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPageSize = 2

func setupControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, validation.RegisterWithGin())

	collectionRepo := repository.NewCollectionRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	collections := NewCollectionController(service.NewCollectionService(testDB, collectionRepo))
	products := NewProductController(service.NewProductService(testDB, productRepo, collectionRepo, nil), testPageSize)
	reviews := NewReviewController(service.NewReviewService(reviewRepo, productRepo))
	carts := NewCartController(service.NewCartService(cartRepo, productRepo))
	orders := NewOrderController(service.NewOrderService(testDB, orderRepo))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.LoggingMiddleware())

	router.GET("/collections", collections.ListCollections)
	router.POST("/collections", collections.CreateCollection)
	router.GET("/collections/:id", collections.GetCollection)
	router.PUT("/collections/:id", collections.UpdateCollection)
	router.PATCH("/collections/:id", collections.PatchCollection)
	router.DELETE("/collections/:id", collections.DeleteCollection)

	router.GET("/products", products.ListProducts)
	router.POST("/products", products.CreateProduct)
	router.GET("/products/:id", products.GetProduct)
	router.PUT("/products/:id", products.UpdateProduct)
	router.PATCH("/products/:id", products.PatchProduct)
	router.DELETE("/products/:id", products.DeleteProduct)
	router.GET("/products/:id/reviews", reviews.ListReviews)
	router.POST("/products/:id/reviews", reviews.CreateReview)
	router.GET("/products/:id/reviews/:review_id", reviews.GetReview)

	router.POST("/carts", carts.CreateCart)
	router.GET("/carts/:id", carts.GetCart)
	router.DELETE("/carts/:id", carts.DeleteCart)
	router.GET("/carts/:id/items", carts.ListItems)
	router.POST("/carts/:id/items", carts.AddItem)
	router.GET("/carts/:id/items/:item_id", carts.GetItem)
	router.PATCH("/carts/:id/items/:item_id", carts.UpdateItem)
	router.DELETE("/carts/:id/items/:item_id", carts.RemoveItem)

	router.POST("/orders", orders.Checkout)
	router.GET("/orders/:id", orders.GetOrder)

	return router, testDB
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}

func seedCollection(t *testing.T, testDB *gorm.DB, title string) *model.Collection {
	t.Helper()
	collection := &model.Collection{Title: title}
	require.NoError(t, testDB.Create(collection).Error)
	return collection
}

func seedProduct(t *testing.T, testDB *gorm.DB, collection *model.Collection, title, price string) *model.Product {
	t.Helper()
	product := &model.Product{
		Title:        title,
		Slug:         title,
		Description:  title + " description",
		UnitPrice:    decimal.RequireFromString(price),
		Inventory:    3,
		CollectionID: collection.ID,
	}
	require.NoError(t, testDB.Create(product).Error)
	return product
}

type errorBody struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields"`
}

func TestParseID(t *testing.T) {
	router, _ := setupControllerTest(t)

	for _, path := range []string{"/collections/abc", "/collections/0", "/collections/-1"} {
		w := performRequest(router, http.MethodGet, path, nil)
		require.Equal(t, http.StatusNotFound, w.Code, path)
	}
}
