package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

// respondError maps the service error taxonomy onto HTTP statuses.
// Role/ownership failures and state-guard failures both land on 403; the
// body distinguishes them.
func respondError(c *gin.Context, err error) {
	switch err {
	case services.ErrUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case services.ErrAccountDisabled, services.ErrBusinessNotLinked, services.ErrBusinessNotActive:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case services.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if forbidden, ok := services.IsForbiddenError(err); ok {
		c.JSON(http.StatusForbidden, gin.H{"error": forbidden.Error()})
		return
	}
	if transition, ok := services.IsInvalidTransitionError(err); ok {
		c.JSON(http.StatusForbidden, gin.H{
			"error":  transition.Error(),
			"status": transition.From,
		})
		return
	}
	if validation, ok := services.IsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validation.Error(),
			"field": validation.Field,
		})
		return
	}
	if conflict, ok := err.(*services.ConflictError); ok {
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func respondList(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parsePagination(c *gin.Context) (page, limit int) {
	page = queryInt(c, "page", 1)
	limit = queryInt(c, "limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
