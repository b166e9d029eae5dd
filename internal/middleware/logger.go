package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/models"
)

// CustomLoggerMiddleware logs HTTP requests in simple text format
func CustomLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		userID := uint(0)
		if user, exists := c.Get("user"); exists {
			if u, ok := user.(*models.User); ok {
				userID = u.ID
			}
		}

		fmt.Printf("[API] %s | %s | %d | %s | %s | User: %d\n",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			latency.String(),
			c.ClientIP(),
			userID,
		)
	}
}
