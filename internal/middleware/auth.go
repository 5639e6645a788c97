package middleware

import (
	"net/http"
	"strings"

	"cuattro/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header and
// attaches the caller to the request context.
func AuthMiddleware(tokens auth.TokenConfig, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "AuthorizationError",
				"message": "missing authorization header",
			})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "AuthorizationError",
				"message": "invalid authorization format, use 'Bearer <token>'",
			})
			return
		}

		principal, err := auth.ValidateToken(tokens, parts[1])
		if err != nil {
			logger.Debug("token rejected", zap.Error(err), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "AuthorizationError",
				"message": "invalid token",
			})
			return
		}

		auth.SetPrincipal(c, principal)
		c.Next()
	}
}
