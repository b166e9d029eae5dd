package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mediahaus/taskhaus/internal/models"
	"gorm.io/gorm"
)

const dashboardLimit = 50

type IncidentService struct {
	db *gorm.DB
}

func NewIncidentService(db *gorm.DB) *IncidentService {
	return &IncidentService{db: db}
}

// IncidentView is the dashboard projection of an incident, camelCase for the
// page layer.
type IncidentView struct {
	ID              uint           `json:"id"`
	Key             string         `json:"key"`
	Title           string         `json:"title"`
	Severity        string         `json:"severity"`
	Status          string         `json:"status"`
	System          string         `json:"system"`
	StartedAt       string         `json:"startedAt"`
	LastUpdatedAt   string         `json:"lastUpdatedAt"`
	ImpactedRegions []string       `json:"impactedRegions"`
	ImpactedUsers   string         `json:"impactedUsers"`
	Owner           string         `json:"owner"`
	Summary         string         `json:"summary"`
	Tags            []string       `json:"tags"`
	Timeline        []TimelineView `json:"timeline"`
	FollowUps       []FollowUpView `json:"followUps"`
}

type TimelineView struct {
	ID     uint   `json:"id"`
	At     string `json:"at"`
	Type   string `json:"type"`
	Actor  string `json:"actor"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

type FollowUpView struct {
	ID     uint   `json:"id"`
	Owner  string `json:"owner"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

type CreateIncidentInput struct {
	Title           string
	System          string
	Severity        models.IncidentSeverity
	Summary         string
	ImpactedUsers   string
	ImpactedRegions []string
	Tags            []string
}

// Dashboard returns the 50 most recently started incidents with time-sorted
// timelines and follow-up lists.
func (s *IncidentService) Dashboard() ([]IncidentView, error) {
	var incidents []models.Incident
	err := s.db.
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("occurred_at, id")
		}).
		Preload("FollowUps").
		Order("started_at DESC").
		Limit(dashboardLimit).
		Find(&incidents).Error
	if err != nil {
		return nil, fmt.Errorf("load incidents: %w", err)
	}

	views := make([]IncidentView, 0, len(incidents))
	for i := range incidents {
		views = append(views, projectIncident(&incidents[i]))
	}
	return views, nil
}

// Create opens an incident. Status is always forced to investigating and an
// initial "detected" timeline event is appended.
func (s *IncidentService) Create(actor string, in CreateIncidentInput) (*models.Incident, error) {
	now := time.Now()

	incident := models.Incident{
		Key:             generateIncidentKey(now),
		Title:           in.Title,
		Severity:        in.Severity,
		Status:          models.IncidentStatusInvestigating,
		System:          in.System,
		StartedAt:       now,
		LastUpdatedAt:   now,
		ImpactedRegions: models.StringList(in.ImpactedRegions),
		ImpactedUsers:   in.ImpactedUsers,
		Owner:           actor,
		Summary:         in.Summary,
		Tags:            models.StringList(in.Tags),
	}

	if err := s.db.Create(&incident).Error; err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}

	event := models.IncidentEvent{
		IncidentID: incident.ID,
		OccurredAt: now,
		Type:       "detected",
		Actor:      actor,
		Label:      "Incident opened",
		Detail:     fmt.Sprintf("Incident created and set to investigating by %s.", actor),
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("create detected event: %w", err)
	}

	return &incident, nil
}

// UpdateStatus moves the incident to the given status, bumps last_updated_at
// and appends exactly one derived timeline event. Any status may move to any
// other status, including itself.
func (s *IncidentService) UpdateStatus(incidentID uint, status models.IncidentStatus, actor, note string) (*models.Incident, error) {
	incident, err := s.find(incidentID)
	if err != nil {
		return nil, err
	}

	oldStatus := incident.Status
	now := time.Now()

	err = s.db.Model(incident).Updates(map[string]interface{}{
		"status":          status,
		"last_updated_at": now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update incident status: %w", err)
	}

	detail := note
	if detail == "" {
		detail = fmt.Sprintf("Status changed from %s to %s by %s.", oldStatus, status, actor)
	}

	event := models.IncidentEvent{
		IncidentID: incident.ID,
		OccurredAt: now,
		Type:       statusToEventType(status),
		Actor:      actor,
		Label:      "Status changed to " + ucfirst(string(status)),
		Detail:     detail,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, fmt.Errorf("create status event: %w", err)
	}

	return incident, nil
}

// CreateFollowUp attaches a follow-up (status open) to the incident, bumps
// last_updated_at and appends a follow_up timeline event.
func (s *IncidentService) CreateFollowUp(incidentID uint, label, owner, actor string) (*models.IncidentFollowUp, error) {
	incident, err := s.find(incidentID)
	if err != nil {
		return nil, err
	}

	followUp := models.IncidentFollowUp{
		IncidentID: incident.ID,
		Label:      label,
		Owner:      owner,
		Status:     models.FollowUpStatusOpen,
	}
	if err := s.db.Create(&followUp).Error; err != nil {
		return nil, fmt.Errorf("create follow up: %w", err)
	}

	if err := s.touchIncident(incident, "follow_up", actor,
		"Follow up created: "+followUp.Label,
		fmt.Sprintf("New follow up created by %s.", actor)); err != nil {
		return nil, err
	}

	return &followUp, nil
}

// UpdateFollowUpStatus updates a follow-up's status. While the follow-up is
// still linked to an incident, that incident gets a follow_up timeline event
// and a fresh last_updated_at.
func (s *IncidentService) UpdateFollowUpStatus(followUpID uint, status models.FollowUpStatus, actor string) (*models.IncidentFollowUp, error) {
	var followUp models.IncidentFollowUp
	if err := s.db.First(&followUp, followUpID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find follow up: %w", err)
	}

	oldStatus := followUp.Status
	followUp.Status = status
	if err := s.db.Save(&followUp).Error; err != nil {
		return nil, fmt.Errorf("update follow up: %w", err)
	}

	var incident models.Incident
	err := s.db.First(&incident, followUp.IncidentID).Error
	if err == nil {
		err = s.touchIncident(&incident, "follow_up", actor,
			"Follow up updated: "+followUp.Label,
			fmt.Sprintf("Follow up status changed from %s to %s by %s.", oldStatus, status, actor))
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find incident: %w", err)
	}

	return &followUp, nil
}

// touchIncident bumps last_updated_at and appends one timeline event.
func (s *IncidentService) touchIncident(incident *models.Incident, eventType, actor, label, detail string) error {
	now := time.Now()

	err := s.db.Model(incident).UpdateColumn("last_updated_at", now).Error
	if err != nil {
		return fmt.Errorf("bump incident: %w", err)
	}

	event := models.IncidentEvent{
		IncidentID: incident.ID,
		OccurredAt: now,
		Type:       eventType,
		Actor:      actor,
		Label:      label,
		Detail:     detail,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return fmt.Errorf("create timeline event: %w", err)
	}
	return nil
}

func (s *IncidentService) find(incidentID uint) (*models.Incident, error) {
	var incident models.Incident
	if err := s.db.First(&incident, incidentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find incident: %w", err)
	}
	return &incident, nil
}

// statusToEventType maps an incident status to a timeline event type (used
// for colors on the dashboard).
func statusToEventType(status models.IncidentStatus) string {
	switch status {
	case models.IncidentStatusInvestigating:
		return "triage"
	case models.IncidentStatusMitigating:
		return "mitigation"
	case models.IncidentStatusMonitoring:
		return "monitoring"
	case models.IncidentStatusResolved:
		return "resolved"
	default:
		return "update"
	}
}

// generateIncidentKey builds a human-readable key from the timestamp plus a
// short random suffix to close the same-second collision window.
func generateIncidentKey(now time.Time) string {
	suffix := strings.Split(uuid.NewString(), "-")[0][:4]
	return fmt.Sprintf("INC-%s-%s", now.Format("20060102-150405"), suffix)
}

func projectIncident(incident *models.Incident) IncidentView {
	view := IncidentView{
		ID:              incident.ID,
		Key:             incident.Key,
		Title:           incident.Title,
		Severity:        string(incident.Severity),
		Status:          string(incident.Status),
		System:          incident.System,
		StartedAt:       incident.StartedAt.Format(time.RFC3339),
		LastUpdatedAt:   incident.LastUpdatedAt.Format(time.RFC3339),
		ImpactedRegions: incident.ImpactedRegions,
		ImpactedUsers:   incident.ImpactedUsers,
		Owner:           incident.Owner,
		Summary:         incident.Summary,
		Tags:            incident.Tags,
		Timeline:        make([]TimelineView, 0, len(incident.Events)),
		FollowUps:       make([]FollowUpView, 0, len(incident.FollowUps)),
	}
	if view.ImpactedRegions == nil {
		view.ImpactedRegions = []string{}
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}

	for _, event := range incident.Events {
		view.Timeline = append(view.Timeline, TimelineView{
			ID:     event.ID,
			At:     event.OccurredAt.Format(time.RFC3339),
			Type:   event.Type,
			Actor:  event.Actor,
			Label:  event.Label,
			Detail: event.Detail,
		})
	}
	for _, f := range incident.FollowUps {
		view.FollowUps = append(view.FollowUps, FollowUpView{
			ID:     f.ID,
			Owner:  f.Owner,
			Label:  f.Label,
			Status: string(f.Status),
		})
	}
	return view
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
