package models

import "time"

type TaskStatus string
type TaskPriority string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Task is a kanban card. Position orders cards within a (team, status) column;
// ties are possible and break by undefined secondary order.
type Task struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	TeamID       uint         `json:"team_id" gorm:"not null;index"`
	Title        string       `json:"title" gorm:"not null"`
	Description  *string      `json:"description" gorm:"type:text"`
	Status       TaskStatus   `json:"status" gorm:"not null;default:'todo';index"`
	Priority     TaskPriority `json:"priority" gorm:"not null;default:'medium'"`
	AssignedTo   *uint        `json:"assigned_to"`
	AssignedUser *User        `json:"assigned_user" gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL"`
	CreatedBy    uint         `json:"created_by" gorm:"not null"`
	Creator      *User        `json:"creator" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
	Position     int          `json:"position" gorm:"not null;default:0"`
	CompletedAt  *time.Time   `json:"completed_at"`
	Tags         []TaskTag    `json:"tags" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
