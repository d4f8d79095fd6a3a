package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/middleware"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

// SettingsHandlers serves site settings: public read for the storefront,
// admin write for the back office
type SettingsHandlers struct {
	settings *services.SettingsService
	logger   *logrus.Logger
}

// NewSettingsHandlers creates new settings handlers
func NewSettingsHandlers(settings *services.SettingsService, logger *logrus.Logger) *SettingsHandlers {
	return &SettingsHandlers{settings: settings, logger: logger}
}

// List handles GET /api/v1/settings?group=branding
func (h *SettingsHandlers) List(c *gin.Context) {
	settings, err := h.settings.List(c.Request.Context(), c.Query("group"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

// Get handles GET /api/v1/settings/:key
func (h *SettingsHandlers) Get(c *gin.Context) {
	setting, err := h.settings.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// Upsert handles PUT /api/v1/admin/settings/:key
func (h *SettingsHandlers) Upsert(c *gin.Context) {
	var req models.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := h.settings.Upsert(c.Request.Context(), middleware.GetActor(c), c.Param("key"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

// Delete handles DELETE /api/v1/admin/settings/:key
func (h *SettingsHandlers) Delete(c *gin.Context) {
	if err := h.settings.Delete(c.Request.Context(), middleware.GetActor(c), c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "setting cleared"})
}
