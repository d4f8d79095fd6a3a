package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/middleware"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

// AnalyticsHandlers serves the admin traffic dashboard
type AnalyticsHandlers struct {
	analytics *services.AnalyticsService
	logger    *logrus.Logger
}

// NewAnalyticsHandlers creates new analytics handlers
func NewAnalyticsHandlers(analytics *services.AnalyticsService, logger *logrus.Logger) *AnalyticsHandlers {
	return &AnalyticsHandlers{analytics: analytics, logger: logger}
}

// Stats handles GET /api/v1/admin/analytics?from=2026-08-01&to=2026-08-29
func (h *AnalyticsHandlers) Stats(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		to = t
	}

	stats, err := h.analytics.Stats(c.Request.Context(), middleware.GetActor(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
