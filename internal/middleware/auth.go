package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqsyria/backend/internal/config"
	"github.com/souqsyria/backend/internal/utils"
)

const (
	ctxUserIDKey  = "user_id"
	ctxEmailKey   = "email"
	ctxIsStaffKey = "is_staff"
	ctxIsAdminKey = "is_admin"
)

// AuthMiddleware verifies JWT tokens and adds user info to context
func AuthMiddleware(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "Authorization token required",
				"error_ar": "رمز التفويض مطلوب",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(cfg, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "Invalid or expired token",
				"error_ar": "رمز غير صالح أو منتهي الصلاحية",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxIsStaffKey, claims.IsStaff)
		c.Set(ctxIsAdminKey, claims.IsAdmin)

		c.Next()
	}
}

// AdminMiddleware ensures the caller is a staff user with admin privileges
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ctxIsAdminKey)
		if !exists || !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "Admin access required",
				"error_ar": "صلاحيات المشرف مطلوبة",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserIDFromContext returns the authenticated user's id
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// extractToken gets the token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	parts := strings.Split(bearerToken, " ")
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
