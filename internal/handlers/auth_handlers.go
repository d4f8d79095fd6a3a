package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/middleware"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/models"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

// AuthHandlers serves login, logout and the current-identity endpoint
type AuthHandlers struct {
	auth   *services.AuthService
	logger *logrus.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(auth *services.AuthService, logger *logrus.Logger) *AuthHandlers {
	return &AuthHandlers{auth: auth, logger: logger}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	actor := middleware.GetActor(c)
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), actor, claims.SessionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me handles GET /api/v1/auth/me: the resolved identity incl. linked business
func (h *AuthHandlers) Me(c *gin.Context) {
	actor := middleware.GetActor(c)
	c.JSON(http.StatusOK, gin.H{
		"user":     actor.User,
		"business": actor.Business,
	})
}
