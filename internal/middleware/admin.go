package middleware

import (
	"net/http"

	"github.com/arafkarim/shopleaf-golang/internal/models"
	"github.com/arafkarim/shopleaf-golang/internal/repository"
	"github.com/gin-gonic/gin"
)

// AdminMiddleware runs after AuthMiddleware and rejects any principal whose
// stored role is not ADMIN.
func AdminMiddleware(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDRaw, exists := c.Get("userID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}
		userID := userIDRaw.(int64)

		role, err := users.Role(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking role"})
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: Admin role required"})
			c.Abort()
			return
		}

		c.Set("userRole", role)
		c.Next()
	}
}
