package middleware

import (
	"net/http"

	"cuattro/internal/auth"

	"github.com/gin-gonic/gin"
)

func RequireRole(allowedRoles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(auth.ContextUserRole); !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":   "AuthorizationError",
				"message": "role missing",
			})
			return
		}

		role := auth.PrincipalFrom(c).Role
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "AuthorizationError",
			"message": "forbidden",
		})
	}
}

// RequireStaff admits Funcionario and Admin.
func RequireStaff() gin.HandlerFunc {
	return RequireRole(auth.RoleFuncionario, auth.RoleAdmin)
}
