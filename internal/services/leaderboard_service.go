package services

import (
	"fmt"
	"time"

	"github.com/mediahaus/taskhaus/internal/models"
	"gorm.io/gorm"
)

const leaderboardLimit = 10

type LeaderboardService struct {
	db *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// ScoreView projects only the fields the leaderboard page needs.
type ScoreView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	CreatedAt string `json:"created_at"`
}

// Top returns the ten best scores for a game, highest score first; equal
// scores rank by earliest submission.
func (s *LeaderboardService) Top(gameKey string) ([]ScoreView, error) {
	var scores []models.GameScore
	err := s.db.
		Where("game_key = ?", gameKey).
		Order("score DESC").
		Order("created_at").
		Limit(leaderboardLimit).
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	views := make([]ScoreView, 0, len(scores))
	for _, score := range scores {
		views = append(views, ScoreView{
			ID:        score.ID,
			Name:      score.Name,
			Score:     score.Score,
			CreatedAt: score.CreatedAt.Format(time.RFC3339),
		})
	}
	return views, nil
}

// Submit appends a new score row unconditionally. No de-duplication, no
// per-player cap.
func (s *LeaderboardService) Submit(gameKey, name string, score int) (*models.GameScore, error) {
	record := models.GameScore{
		GameKey: gameKey,
		Name:    name,
		Score:   score,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("create score: %w", err)
	}
	return &record, nil
}
