package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/models"
	"gorm.io/gorm"
)

// ApiKeyAuth authenticates the task JSON API. The key is read from X-API-Key
// or an Authorization bearer token, resolved to a user row, and the key's
// last-used timestamp is stamped.
func ApiKeyAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				key = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "API key required",
			})
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("api_key = ?", key).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid API key",
			})
			c.Abort()
			return
		}

		now := time.Now()
		db.Model(&user).UpdateColumn("api_key_last_used_at", now)

		c.Set("user", &user)
		c.Set("userID", user.ID)

		c.Next()
	}
}
