package models

import "time"

// TaskTag is owned exclusively by its task. Tag updates replace the whole set.
type TaskTag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TaskID    uint      `json:"task_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TaskTag) TableName() string {
	return "task_tags"
}
