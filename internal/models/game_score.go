package models

import "time"

// GameScore is append-only. Top-N reads order by score desc, then earliest
// created_at as tie-break.
type GameScore struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GameKey   string    `json:"game_key" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GameScore) TableName() string {
	return "game_scores"
}
