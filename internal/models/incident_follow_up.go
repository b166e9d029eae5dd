package models

import "time"

type FollowUpStatus string

const (
	FollowUpStatusOpen       FollowUpStatus = "open"
	FollowUpStatusInProgress FollowUpStatus = "in_progress"
	FollowUpStatusDone       FollowUpStatus = "done"
)

type IncidentFollowUp struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	IncidentID uint           `json:"incident_id" gorm:"not null;index"`
	Incident   *Incident      `json:"-" gorm:"foreignKey:IncidentID"`
	Owner      string         `json:"owner"`
	Label      string         `json:"label" gorm:"not null"`
	Status     FollowUpStatus `json:"status" gorm:"not null;default:'open';index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (IncidentFollowUp) TableName() string {
	return "incident_follow_ups"
}
