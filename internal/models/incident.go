package models

import "time"

type IncidentStatus string
type IncidentSeverity string

const (
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusMitigating    IncidentStatus = "mitigating"
	IncidentStatusMonitoring    IncidentStatus = "monitoring"
	IncidentStatusResolved      IncidentStatus = "resolved"
)

const (
	SeveritySev1 IncidentSeverity = "SEV1"
	SeveritySev2 IncidentSeverity = "SEV2"
	SeveritySev3 IncidentSeverity = "SEV3"
)

// Incident is never deleted in normal flow. LastUpdatedAt is refreshed on every
// status change and every child (event/follow-up) creation.
type Incident struct {
	ID              uint               `json:"id" gorm:"primaryKey"`
	Key             string             `json:"key" gorm:"uniqueIndex;not null"`
	Title           string             `json:"title" gorm:"not null"`
	Severity        IncidentSeverity   `json:"severity" gorm:"not null"`
	Status          IncidentStatus     `json:"status" gorm:"not null;default:'investigating';index"`
	System          string             `json:"system" gorm:"not null"`
	StartedAt       time.Time          `json:"started_at" gorm:"index"`
	LastUpdatedAt   time.Time          `json:"last_updated_at"`
	ImpactedRegions StringList         `json:"impacted_regions" gorm:"type:text"`
	ImpactedUsers   string             `json:"impacted_users"`
	Owner           string             `json:"owner"`
	Summary         string             `json:"summary" gorm:"type:text"`
	Tags            StringList         `json:"tags" gorm:"type:text"`
	Events          []IncidentEvent    `json:"events" gorm:"foreignKey:IncidentID;constraint:OnDelete:CASCADE"`
	FollowUps       []IncidentFollowUp `json:"follow_ups" gorm:"foreignKey:IncidentID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func (Incident) TableName() string {
	return "incidents"
}
