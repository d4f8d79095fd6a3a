package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/middleware"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

// ProductHandlers serves product CRUD for the admin back office and the
// owner portal
type ProductHandlers struct {
	products *services.ProductService
	logger   *logrus.Logger
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(products *services.ProductService, logger *logrus.Logger) *ProductHandlers {
	return &ProductHandlers{products: products, logger: logger}
}

// List handles GET /api/v1/{admin,umkm}/products
func (h *ProductHandlers) List(c *gin.Context) {
	filter := models.ProductFilter{Search: c.Query("search")}
	filter.Page, filter.Limit = parsePagination(c)

	if raw := c.Query("businessId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid businessId"})
			return
		}
		filter.BusinessID = &id
	}

	products, total, err := h.products.List(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, products, total, filter.Page, filter.Limit)
}

// Get handles GET /api/v1/{admin,umkm}/products/:id
func (h *ProductHandlers) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create handles POST /api/v1/{admin,umkm}/products
func (h *ProductHandlers) Create(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/v1/{admin,umkm}/products/:id
func (h *ProductHandlers) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// SetLinks handles PUT /api/v1/{admin,umkm}/products/:id/links
func (h *ProductHandlers) SetLinks(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var reqs []models.MarketplaceLinkRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.SetLinks(c.Request.Context(), middleware.GetActor(c), id, reqs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/v1/{admin,umkm}/products/:id
func (h *ProductHandlers) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
