package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront/internal/app/dto"
	"github.com/ikkim/storefront/internal/app/repository"
	"github.com/ikkim/storefront/internal/app/service"
	apperrors "github.com/ikkim/storefront/internal/errors"
	"github.com/ikkim/storefront/internal/middleware"
	"github.com/ikkim/storefront/internal/pagination"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	productService service.ProductService
	pageSize       int
}

func NewProductController(productService service.ProductService, pageSize int) *ProductController {
	return &ProductController{
		productService: productService,
		pageSize:       pageSize,
	}
}

type ProductRequest struct {
	Title       string           `json:"title" binding:"required,notblank,max=255"`
	Slug        string           `json:"slug" binding:"required,notblank,max=255"`
	Description string           `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"required,dgt=0,dlte=9999.99,dplaces=2"`
	Inventory   *int             `json:"inventory" binding:"required,gte=0"`
	Collection  *uint            `json:"collection" binding:"required"`
}

type PatchProductRequest struct {
	Title       *string          `json:"title" binding:"omitempty,notblank,max=255"`
	Slug        *string          `json:"slug" binding:"omitempty,notblank,max=255"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"omitempty,dgt=0,dlte=9999.99,dplaces=2"`
	Inventory   *int             `json:"inventory" binding:"omitempty,gte=0"`
	Collection  *uint            `json:"collection"`
}

func (r ProductRequest) input() service.ProductInput {
	title := strings.TrimSpace(r.Title)
	slug := strings.TrimSpace(r.Slug)
	return service.ProductInput{
		Title:        &title,
		Slug:         &slug,
		Description:  &r.Description,
		UnitPrice:    r.UnitPrice,
		Inventory:    r.Inventory,
		CollectionID: r.Collection,
	}
}

func (r PatchProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Title:        trimmed(r.Title),
		Slug:         trimmed(r.Slug),
		Description:  r.Description,
		UnitPrice:    r.UnitPrice,
		Inventory:    r.Inventory,
		CollectionID: r.Collection,
	}
}

// parseProductFilter reads the list query. It returns the offending
// parameter and a message when a value is invalid.
func parseProductFilter(c *gin.Context) (repository.ProductFilter, string, string) {
	var filter repository.ProductFilter

	if raw := c.Query("collection_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return filter, "collection_id", "Enter a whole number."
		}
		collectionID := uint(id)
		filter.CollectionID = &collectionID
	}

	for param, target := range map[string]**decimal.Decimal{
		"unit_price__gt": &filter.PriceGreater,
		"unit_price__lt": &filter.PriceLess,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return filter, param, "Enter a number."
		}
		*target = &d
	}

	filter.Search = c.Query("search")

	if ordering := strings.TrimSpace(c.Query("ordering")); ordering != "" {
		filter.SortAscending = !strings.HasPrefix(ordering, "-")
		switch repository.ProductSort(strings.TrimPrefix(ordering, "-")) {
		case repository.ProductSortUnitPrice:
			filter.SortBy = repository.ProductSortUnitPrice
		case repository.ProductSortLastUpdate:
			filter.SortBy = repository.ProductSortLastUpdate
		default:
			return filter, "ordering", "Select a valid choice. " + ordering + " is not one of the available choices."
		}
	}

	return filter, "", ""
}

// ListProducts returns one page of products matching the query filters
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter, field, message := parseProductFilter(c)
	if field != "" {
		log.Warn("Invalid product filter", map[string]interface{}{
			"field": field,
			"query": c.Request.URL.RawQuery,
		})
		fieldError(c, field, message)
		return
	}

	page, err := pagination.ParseRequest(c.Query("page"), ctrl.pageSize)
	if err != nil {
		apperrors.NotFound(c, apperrors.PageInvalid, pagination.InvalidPageMessage)
		return
	}
	filter.Limit = page.Limit()
	filter.Offset = page.Offset()

	products, total, err := ctrl.productService.ListProducts(filter)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}
	if err := page.Validate(total); err != nil {
		apperrors.NotFound(c, apperrors.PageInvalid, pagination.InvalidPageMessage)
		return
	}

	log.Debug("Products listed", map[string]interface{}{
		"total": total,
		"page":  page.Number,
	})
	c.JSON(http.StatusOK, pagination.New(c.Request, page, total, dto.NewProductResponses(products)))
}

// CreateProduct
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.CreateProduct(req.input())
	if err != nil {
		ctrl.respondWriteError(c, err)
		return
	}

	middleware.GetLoggerFromContext(c).Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})
	c.JSON(http.StatusCreated, dto.NewProductResponse(*product))
}

// GetProduct
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(*product))
}

// UpdateProduct replaces every writable field
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req.input())
	if err != nil {
		ctrl.respondWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(*product))
}

// PatchProduct updates only the fields present in the body
// PATCH /api/v1/products/:id
func (ctrl *ProductController) PatchProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PatchProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := ctrl.productService.UpdateProduct(id, req.input())
	if err != nil {
		ctrl.respondWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(*product))
}

// DeleteProduct refuses to delete a product referenced by an order line
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondServiceError(c, err, "product")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	c.Status(http.StatusNoContent)
}

// respondWriteError reports an unknown collection as a field error on create and update.
func (ctrl *ProductController) respondWriteError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCollectionNotFound) {
		fieldError(c, "collection", "Invalid pk - object does not exist.")
		return
	}
	respondServiceError(c, err, "product")
}
