package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"galleria/api/internal/config"
	"galleria/api/internal/security"
)

const ownerIDKey = "owner_id"

// Auth verifies the Bearer token and stores the owner id in the context.
// Every failure mode returns the same unauthorized shape so nothing about
// existing accounts or resources leaks.
func Auth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseOwnerToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ownerIDKey, claims.OwnerID)
		c.Next()
	}
}

// OwnerID returns the authenticated owner id set by Auth.
func OwnerID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ownerIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
