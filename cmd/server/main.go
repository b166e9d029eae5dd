package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mediahaus/taskhaus/internal/db"
	"github.com/mediahaus/taskhaus/internal/logger"
	"github.com/mediahaus/taskhaus/internal/middleware"
	"github.com/mediahaus/taskhaus/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := "http://localhost:5173"
		if corsOrigin := os.Getenv("CORS_ORIGIN"); corsOrigin != "" {
			origin = corsOrigin
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-API-Key")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

func main() {
	// Initialize logger first
	logger.Initialize()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using environment variables", nil)
	}

	// Connect to database
	db.Connect()
	db.AutoMigrate()

	// Set Gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.Use(middleware.CustomLoggerMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		statusCode := http.StatusOK

		sqlDB, err := db.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":    dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"database": gin.H{"status": dbStatus},
			},
		})
	})

	// Setup routes
	if err := routes.SetupRoutes(r, db.DB); err != nil {
		logger.Fatal("Failed to set up routes", map[string]interface{}{
			"error": err.Error(),
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	logger.Info("Starting Taskhaus backend server", map[string]interface{}{
		"port":     port,
		"gin_mode": gin.Mode(),
	})

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.Info("Shutting down server gracefully...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		logger.Info("Server exited gracefully", nil)
	}
}
