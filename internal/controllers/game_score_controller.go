package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/services"
)

const orbitalDodgeKey = "orbital_dodge"

type GameScoreController struct {
	leaderboard *services.LeaderboardService
}

func NewGameScoreController(leaderboard *services.LeaderboardService) *GameScoreController {
	return &GameScoreController{leaderboard: leaderboard}
}

type SubmitScoreRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Score int    `json:"score" binding:"required,min=1"`
}

func (gc *GameScoreController) Index(c *gin.Context) {
	scores, err := gc.leaderboard.Top(orbitalDodgeKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load scores"})
		return
	}

	c.JSON(http.StatusOK, scores)
}

func (gc *GameScoreController) Store(c *gin.Context) {
	var req SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	score, err := gc.leaderboard.Submit(orbitalDodgeKey, req.Name, req.Score)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save score"})
		return
	}

	c.JSON(http.StatusCreated, score)
}
