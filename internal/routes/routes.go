package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/controllers"
	"github.com/mediahaus/taskhaus/internal/middleware"
	"github.com/mediahaus/taskhaus/internal/services"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine, db *gorm.DB) error {
	// Page templates
	tmpl, err := controllers.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Initialize services
	taskService := services.NewTaskService(db)
	incidentService := services.NewIncidentService(db)
	leaderboardService := services.NewLeaderboardService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController()
	taskController := controllers.NewTaskController(taskService)
	incidentController := controllers.NewIncidentController(incidentService)
	followUpController := controllers.NewFollowUpController(incidentService)
	gameScoreController := controllers.NewGameScoreController(leaderboardService)

	// Public leaderboard
	r.GET("/api/leaderboard/orbital-dodge", gameScoreController.Index)
	r.POST("/api/leaderboard/orbital-dodge", gameScoreController.Store)

	// Public incident dashboard (read only)
	r.GET("/incident-command", incidentController.Dashboard)

	// API token for the task API, session-authenticated
	r.GET("/api-token", middleware.AuthMiddleware(db), authController.ApiToken)

	// Incident mutations, session-authenticated
	incident := r.Group("/incident-command")
	incident.Use(middleware.AuthMiddleware(db))
	{
		incident.POST("/incidents", incidentController.Store)
		incident.PATCH("/incidents/:id", incidentController.Update)
		incident.POST("/incidents/:id/follow-ups", followUpController.Store)
		incident.PATCH("/follow-ups/:id", followUpController.Update)
	}

	// API routes
	api := r.Group("/api/v1")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/logout", middleware.AuthMiddleware(db), authController.Logout)
		}

		// Incident projection for API consumers
		api.GET("/incidents", incidentController.Index)

		// Users
		users := api.Group("/users")
		users.Use(middleware.AuthMiddleware(db))
		{
			users.GET("/me", userController.GetCurrentUser)
		}

		// Tasks, API-key authenticated
		tasks := api.Group("/tasks")
		tasks.Use(middleware.ApiKeyAuth(db))
		{
			tasks.GET("", taskController.Index)
			tasks.POST("", taskController.Store)
			tasks.PATCH("/:id", taskController.Update)
			tasks.POST("/:id/move", taskController.Move)
			tasks.POST("/:id/assign", taskController.Assign)
			tasks.DELETE("/:id", taskController.Destroy)
		}
	}

	return nil
}
