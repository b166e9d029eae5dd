package models

import "time"

type User struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name" gorm:"not null"`
	Email            string     `json:"email" gorm:"uniqueIndex;not null"`
	Password         string     `json:"-" gorm:"not null"`
	TeamID           *uint      `json:"team_id"`
	Team             *Team      `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
	CurrentTeamID    *uint      `json:"current_team_id"`
	APIKey           *string    `json:"-" gorm:"column:api_key;uniqueIndex"`
	APIKeyExpiresAt  *time.Time `json:"-" gorm:"column:api_key_expires_at"`
	APIKeyLastUsedAt *time.Time `json:"-" gorm:"column:api_key_last_used_at"`
	AvatarColor      *string    `json:"avatar_color"`
	IsOnline         bool       `json:"is_online" gorm:"default:false"`
	LastSeenAt       *time.Time `json:"last_seen_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
