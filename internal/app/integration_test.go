package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront/config"
	"github.com/ikkim/storefront/internal/app/dto"
	"github.com/ikkim/storefront/internal/db"
	"github.com/ikkim/storefront/internal/pagination"
	"github.com/ikkim/storefront/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Router *gin.Engine
}

func setupIntegrationTest(t *testing.T) *TestServer {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, validation.RegisterWithGin())

	cfg := &config.Config{
		Server:  config.ServerConfig{GinMode: gin.TestMode},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Catalog: config.CatalogConfig{PageSize: 10},
	}

	return &TestServer{Router: NewEngine(NewServices(testDB, nil), cfg)}
}

func (s *TestServer) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestIntegration_ShoppingFlow(t *testing.T) {
	server := setupIntegrationTest(t)

	var collection dto.CollectionResponse
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/api/v1/collections",
		map[string]interface{}{"title": "Coffee"}, &collection))

	var beans dto.ProductResponse
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"title":       "Espresso beans",
		"slug":        "espresso-beans",
		"description": "Dark roast",
		"unit_price":  "14.90",
		"inventory":   40,
		"collection":  collection.ID,
	}, &beans))
	assert.True(t, decimal.RequireFromString("16.39").Equal(beans.PriceWithTax))

	var cart dto.CartResponse
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/api/v1/carts", nil, &cart))
	itemsPath := fmt.Sprintf("/api/v1/carts/%s/items", cart.ID)

	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, itemsPath,
		map[string]interface{}{"product_id": beans.ID, "quantity": 2}, nil))
	var merged dto.AddedCartItemResponse
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, itemsPath,
		map[string]interface{}{"product_id": beans.ID, "quantity": 3}, &merged))
	assert.Equal(t, 5, merged.Quantity)

	require.Equal(t, http.StatusOK, server.do(t, http.MethodGet, "/api/v1/carts/"+cart.ID.String(), nil, &cart))
	require.Len(t, cart.Items, 1)
	assert.True(t, decimal.RequireFromString("74.5").Equal(cart.TotalPrice))

	itemPath := fmt.Sprintf("%s/%d", itemsPath, merged.ID)
	assert.Equal(t, http.StatusBadRequest, server.do(t, http.MethodPatch, itemPath, map[string]interface{}{"quantity": 0}, nil))
	assert.Equal(t, http.StatusOK, server.do(t, http.MethodPatch, itemPath, map[string]interface{}{"quantity": 4}, nil))

	require.Equal(t, http.StatusOK, server.do(t, http.MethodGet, "/api/v1/carts/"+cart.ID.String(), nil, &cart))
	assert.True(t, decimal.RequireFromString("59.6").Equal(cart.TotalPrice))

	var order dto.OrderResponse
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/api/v1/orders",
		map[string]interface{}{"cart_id": cart.ID.String()}, &order))
	assert.True(t, decimal.RequireFromString("59.6").Equal(order.TotalPrice))

	assert.Equal(t, http.StatusConflict, server.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", beans.ID), nil, nil))
	assert.Equal(t, http.StatusConflict, server.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/collections/%d", collection.ID), nil, nil))

	var page pagination.Page[dto.ProductResponse]
	require.Equal(t, http.StatusOK, server.do(t, http.MethodGet, "/api/v1/products", nil, &page))
	assert.Equal(t, int64(1), page.Count)
}

func TestIntegration_ConcurrentAddsMerge(t *testing.T) {
	server := setupIntegrationTest(t)

	var collection dto.CollectionResponse
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/api/v1/collections",
		map[string]interface{}{"title": "Bulk"}, &collection))
	var product dto.ProductResponse
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"title": "Rice", "slug": "rice", "unit_price": "2.00", "inventory": 100, "collection": collection.ID,
	}, &product))

	var cart dto.CartResponse
	require.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, "/api/v1/carts", nil, &cart))
	itemsPath := fmt.Sprintf("/api/v1/carts/%s/items", cart.ID)

	const adds = 8
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, http.StatusCreated, server.do(t, http.MethodPost, itemsPath,
				map[string]interface{}{"product_id": product.ID, "quantity": 1}, nil))
		}()
	}
	wg.Wait()

	require.Equal(t, http.StatusOK, server.do(t, http.MethodGet, "/api/v1/carts/"+cart.ID.String(), nil, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, adds, cart.Items[0].Quantity)
}

func TestIntegration_RoutingBehaviour(t *testing.T) {
	server := setupIntegrationTest(t)

	assert.Equal(t, http.StatusOK, server.do(t, http.MethodGet, "/health", nil, nil))
	assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodGet, "/api/v1/unknown", nil, nil))
	assert.Equal(t, http.StatusMethodNotAllowed, server.do(t, http.MethodPut, "/api/v1/carts", nil, nil))
	assert.Equal(t, http.StatusMovedPermanently, server.do(t, http.MethodGet, "/api/v1/collections/", nil, nil))
}
