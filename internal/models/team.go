package models

import "time"

type Team struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Color     string    `json:"color"`
	OwnerID   *uint     `json:"owner_id"`
	Tasks     []Task    `json:"-" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Members   []User    `json:"-" gorm:"foreignKey:TeamID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
