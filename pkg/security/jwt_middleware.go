package security

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/JungleeAadmi/component-storage/pkg/roles"

	"github.com/gin-gonic/gin"
)

// JWTMiddleware validates the bearer token and stores userID and role in the context.
func JWTMiddleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header missing")
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			abortUnauthorized(c, "Authorization header must use the Bearer scheme")
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set("userID", claims["userID"])
		c.Set("role", claims["role"])
		if userID := GetUserID(c); userID != 0 {
			c.Request = c.Request.WithContext(ContextWithUserID(c.Request.Context(), userID))
		}
		c.Next()
	}
}

// Authorize ensures the user has at least the required role.
func Authorize(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAllowed(c, requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error_kind": "forbidden",
				"message":    "insufficient permissions",
			})
			return
		}

		c.Next()
	}
}

func IsAllowed(c *gin.Context, requiredRole string) bool {
	role, exists := c.Get("role")
	if !exists {
		return false
	}
	userRole, ok := role.(string)
	if !ok {
		return false
	}

	return roles.Role(userRole).HasPermission(roles.Role(requiredRole))
}

// GetUserID returns the authenticated user's id, or 0 when there is none.
func GetUserID(c *gin.Context) int {
	value, ok := c.Get("userID")
	if !ok {
		return 0
	}
	raw, ok := value.(string)
	if !ok {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return id
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error_kind": "unauthorized",
		"message":    message,
	})
}
