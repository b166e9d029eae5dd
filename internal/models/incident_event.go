package models

import "time"

// IncidentEvent is an append-only timeline record. No updates, no deletes.
// Timelines render ordered by (occurred_at, id).
type IncidentEvent struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	IncidentID uint      `json:"incident_id" gorm:"not null;index"`
	OccurredAt time.Time `json:"occurred_at" gorm:"index"`
	Type       string    `json:"type" gorm:"not null;index"`
	Actor      string    `json:"actor"`
	Label      string    `json:"label" gorm:"not null"`
	Detail     string    `json:"detail" gorm:"type:text"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (IncidentEvent) TableName() string {
	return "incident_events"
}
