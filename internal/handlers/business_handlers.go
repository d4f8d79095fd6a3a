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

// BusinessHandlers serves business management for the admin back office and
// the owner portal's own-business endpoints
type BusinessHandlers struct {
	businesses *services.BusinessService
	logger     *logrus.Logger
}

// NewBusinessHandlers creates new business handlers
func NewBusinessHandlers(businesses *services.BusinessService, logger *logrus.Logger) *BusinessHandlers {
	return &BusinessHandlers{businesses: businesses, logger: logger}
}

// List handles GET /api/v1/admin/businesses
func (h *BusinessHandlers) List(c *gin.Context) {
	filter := models.BusinessFilter{Search: c.Query("search")}
	filter.Page, filter.Limit = parsePagination(c)

	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := models.BusinessStatus(raw)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = &status
	}

	businesses, total, err := h.businesses.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, businesses, total, filter.Page, filter.Limit)
}

// Get handles GET /api/v1/admin/businesses/:id
func (h *BusinessHandlers) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	business, err := h.businesses.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

// Create handles POST /api/v1/admin/businesses
func (h *BusinessHandlers) Create(c *gin.Context) {
	var req models.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business, err := h.businesses.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, business)
}

// Update handles PUT /api/v1/admin/businesses/:id
func (h *BusinessHandlers) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business, err := h.businesses.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

// UpdateStatus handles PATCH /api/v1/admin/businesses/:id/status
func (h *BusinessHandlers) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateBusinessStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business, err := h.businesses.UpdateStatus(c.Request.Context(), middleware.GetActor(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

// Delete handles DELETE /api/v1/admin/businesses/:id
func (h *BusinessHandlers) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.businesses.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "business deleted"})
}

// GetOwn handles GET /api/v1/umkm/business: the owner's own profile
func (h *BusinessHandlers) GetOwn(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor.Business == nil {
		respondError(c, services.ErrBusinessNotLinked)
		return
	}
	c.JSON(http.StatusOK, actor.Business)
}

// UpdateOwn handles PUT /api/v1/umkm/business: owner edits their own profile
func (h *BusinessHandlers) UpdateOwn(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor.Business == nil {
		respondError(c, services.ErrBusinessNotLinked)
		return
	}

	var req models.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business, err := h.businesses.Update(c.Request.Context(), actor, actor.Business.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}
