package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

// AuditHandlers serves the admin audit trail search endpoints
type AuditHandlers struct {
	audit  *services.AuditService
	logger *logrus.Logger
}

// NewAuditHandlers creates new audit handlers
func NewAuditHandlers(audit *services.AuditService, logger *logrus.Logger) *AuditHandlers {
	return &AuditHandlers{audit: audit, logger: logger}
}

// List handles GET /api/v1/admin/audit-logs
func (h *AuditHandlers) List(c *gin.Context) {
	filter := models.AuditLogFilter{
		Action:     models.AuditAction(c.Query("action")),
		Resource:   models.AuditResource(c.Query("resource")),
		ResourceID: c.Query("resourceId"),
		Limit:      queryInt(c, "limit", 50),
		Offset:     queryInt(c, "offset", 0),
	}

	if raw := c.Query("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		filter.UserID = &id
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from timestamp"})
			return
		}
		filter.FromDate = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to timestamp"})
			return
		}
		filter.ToDate = &t
	}

	entries, total, err := h.audit.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":   entries,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// ResourceHistory handles GET /api/v1/admin/audit-logs/:resource/:id
func (h *AuditHandlers) ResourceHistory(c *gin.Context) {
	resource := models.AuditResource(c.Param("resource"))
	entries, err := h.audit.ResourceHistory(c.Request.Context(), resource, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
