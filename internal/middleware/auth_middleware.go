package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/auth"
	"github.com/GilangHap/UMKM-Kuwaru-sub001/internal/services"
)

const (
	// ActorKey is the gin context key holding the resolved actor
	ActorKey = "actor"
	// ClaimsKey is the gin context key holding the verified token claims
	ClaimsKey = "claims"
)

// AuthRequired verifies the bearer token, resolves the actor and runs the
// activation gate. Gate failures surface with their specific reason so the
// portal can tell a suspended business from a disabled account.
func AuthRequired(jwtService *auth.JWTService, authService *services.AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := jwtService.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		actor, err := authService.Authenticate(c.Request.Context(), claims)
		if err != nil {
			status := http.StatusUnauthorized
			if err == services.ErrBusinessNotLinked || err == services.ErrBusinessNotActive {
				status = http.StatusForbidden
			}
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ActorKey, actor)
		c.Next()
	}
}

// RequireAdmin allows only village admins past. Must run after AuthRequired.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "village admin role required"})
			return
		}
		c.Next()
	}
}

// GetActor returns the actor stored by AuthRequired
func GetActor(c *gin.Context) services.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(services.Actor); ok {
			return actor
		}
	}
	return services.Actor{}
}

// GetClaims returns the token claims stored by AuthRequired
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
