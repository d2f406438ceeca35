package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"rotacare/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware authenticates coordinator requests. Revoked tokens are
// rejected by hash against the auth cache.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		accountID, role, err := utils.ExtractAccountFromToken(tokenString)
		if err != nil || accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		revoked, err := utils.GetAuthCacheClient().Exists(ctx, "revoked:"+utils.HashToken(tokenString)).Result()
		if err == nil && revoked > 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		c.Set("accountID", accountID)
		c.Set("role", role)
		c.Set("token", tokenString)
		c.Next()
	}
}
