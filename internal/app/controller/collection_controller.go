package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/storefront/internal/app/dto"
	"github.com/ikkim/storefront/internal/app/service"
	"github.com/ikkim/storefront/internal/middleware"
)

type CollectionController struct {
	collectionService service.CollectionService
}

func NewCollectionController(collectionService service.CollectionService) *CollectionController {
	return &CollectionController{
		collectionService: collectionService,
	}
}

type CollectionRequest struct {
	Title string `json:"title" binding:"required,notblank,max=255"`
}

type PatchCollectionRequest struct {
	Title *string `json:"title" binding:"omitempty,notblank,max=255"`
}

// ListCollections returns every collection with its product count
// GET /api/v1/collections
func (ctrl *CollectionController) ListCollections(c *gin.Context) {
	collections, err := ctrl.collectionService.ListCollections()
	if err != nil {
		respondServiceError(c, err, "collection")
		return
	}
	c.JSON(http.StatusOK, dto.NewCollectionResponses(collections))
}

// CreateCollection
// POST /api/v1/collections
func (ctrl *CollectionController) CreateCollection(c *gin.Context) {
	var req CollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	collection, err := ctrl.collectionService.CreateCollection(strings.TrimSpace(req.Title))
	if err != nil {
		respondServiceError(c, err, "collection")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Collection created", map[string]interface{}{
		"collection_id": collection.ID,
	})
	c.JSON(http.StatusCreated, dto.NewCollectionResponse(*collection))
}

// GetCollection
// GET /api/v1/collections/:id
func (ctrl *CollectionController) GetCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	collection, err := ctrl.collectionService.GetCollection(id)
	if err != nil {
		respondServiceError(c, err, "collection")
		return
	}
	c.JSON(http.StatusOK, dto.NewCollectionResponse(*collection))
}

// UpdateCollection replaces the collection's fields
// PUT /api/v1/collections/:id
func (ctrl *CollectionController) UpdateCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req CollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	collection, err := ctrl.collectionService.UpdateCollection(id, trimmed(&req.Title))
	if err != nil {
		respondServiceError(c, err, "collection")
		return
	}
	c.JSON(http.StatusOK, dto.NewCollectionResponse(*collection))
}

// PatchCollection updates only the fields present in the body
// PATCH /api/v1/collections/:id
func (ctrl *CollectionController) PatchCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PatchCollectionRequest
	if !bindJSON(c, &req) {
		return
	}

	collection, err := ctrl.collectionService.UpdateCollection(id, trimmed(req.Title))
	if err != nil {
		respondServiceError(c, err, "collection")
		return
	}
	c.JSON(http.StatusOK, dto.NewCollectionResponse(*collection))
}

// DeleteCollection refuses to delete a collection that still owns products
// DELETE /api/v1/collections/:id
func (ctrl *CollectionController) DeleteCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.collectionService.DeleteCollection(id); err != nil {
		respondServiceError(c, err, "collection")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Collection deleted", map[string]interface{}{
		"collection_id": id,
	})
	c.Status(http.StatusNoContent)
}
