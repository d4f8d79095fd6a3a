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

// ArticleHandlers serves article CRUD plus the moderation workflow. The same
// handlers back the admin routes and the owner portal; scoping and role
// checks live in the moderation service.
type ArticleHandlers struct {
	moderation *services.ModerationService
	logger     *logrus.Logger
}

// NewArticleHandlers creates new article handlers
func NewArticleHandlers(moderation *services.ModerationService, logger *logrus.Logger) *ArticleHandlers {
	return &ArticleHandlers{moderation: moderation, logger: logger}
}

// List handles GET /api/v1/{admin,umkm}/articles
func (h *ArticleHandlers) List(c *gin.Context) {
	filter := models.ArticleFilter{Search: c.Query("search")}
	filter.Page, filter.Limit = parsePagination(c)

	if raw := c.Query("status"); raw != "" {
		status := models.ArticleStatus(raw)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("businessId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid businessId"})
			return
		}
		filter.BusinessID = &id
	}

	articles, total, err := h.moderation.List(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, articles, total, filter.Page, filter.Limit)
}

// Get handles GET /api/v1/{admin,umkm}/articles/:id
func (h *ArticleHandlers) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	article, err := h.moderation.Get(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create handles POST /api/v1/{admin,umkm}/articles
func (h *ArticleHandlers) Create(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.moderation.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Update handles PUT /api/v1/{admin,umkm}/articles/:id
func (h *ArticleHandlers) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.moderation.Update(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/v1/{admin,umkm}/articles/:id
func (h *ArticleHandlers) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.moderation.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}

// Submit handles POST /api/v1/umkm/articles/:id/submit
func (h *ArticleHandlers) Submit(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	article, err := h.moderation.Submit(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Approve handles POST /api/v1/admin/articles/:id/approve
func (h *ArticleHandlers) Approve(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	article, err := h.moderation.Approve(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Reject handles POST /api/v1/admin/articles/:id/reject
func (h *ArticleHandlers) Reject(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.RejectArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article, err := h.moderation.Reject(c.Request.Context(), middleware.GetActor(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}
