package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mediahaus/taskhaus/internal/logger"
	"github.com/mediahaus/taskhaus/internal/models"
	"gorm.io/gorm"
)

const defaultTagColor = "#0ea5e9"

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskFilter narrows List results. Search matches title or description,
// case-insensitive substring.
type TaskFilter struct {
	AssignedTo *uint
	Search     string
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssignedTo  *uint
	TeamID      *uint
}

type TagInput struct {
	Name  string
	Color string
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *models.TaskPriority
	Status      *models.TaskStatus
	AssignedTo  *uint
	Position    *int
	// Tags, when non-nil, replaces the full tag set for the task.
	Tags *[]TagInput
}

// List returns the acting user's team tasks ordered by position, with
// assignee, creator and tags attached.
func (s *TaskService) List(user *models.User, filter TaskFilter) ([]models.Task, error) {
	if user.TeamID == nil {
		return []models.Task{}, nil
	}

	query := s.db.
		Preload("AssignedUser").
		Preload("Creator").
		Preload("Tags").
		Where("team_id = ?", *user.TeamID).
		Order("position")

	if filter.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *filter.AssignedTo)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts a new task. The owning team resolves as: explicit TeamID,
// else the user's current team, else the user's primary team; with none,
// ErrNoTeam. New tasks always start at position 1.
func (s *TaskService) Create(user *models.User, in CreateTaskInput) (*models.Task, error) {
	teamID := in.TeamID
	if teamID == nil {
		switch {
		case user.CurrentTeamID != nil:
			teamID = user.CurrentTeamID
		case user.TeamID != nil:
			teamID = user.TeamID
		default:
			logger.WithUser(user.ID).Warn("task create: no team resolved")
			return nil, ErrNoTeam
		}
	}

	task := models.Task{
		TeamID:      *teamID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		AssignedTo:  in.AssignedTo,
		CreatedBy:   user.ID,
		Position:    1,
		CompletedAt: nil,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger.WithUser(user.ID).WithField("task_id", task.ID).Info("Task created")

	return s.reload(task.ID)
}

// Update applies a partial patch. Returns the new status when it changed,
// nil otherwise.
func (s *TaskService) Update(user *models.User, taskID uint, in UpdateTaskInput) (*models.Task, *models.TaskStatus, error) {
	task, err := s.find(taskID)
	if err != nil {
		return nil, nil, err
	}

	if !sameTeam(user, task) {
		return nil, nil, ErrForbidden
	}

	originalStatus := task.Status

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = in.Description
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		task.AssignedTo = in.AssignedTo
	}
	if in.Position != nil {
		task.Position = *in.Position
	}
	if in.Status != nil {
		task.Status = *in.Status
		applyCompletion(task)
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, nil, fmt.Errorf("update task: %w", err)
	}

	// A tag payload overwrites all tags for this task.
	if in.Tags != nil {
		if err := s.replaceTags(task.ID, *in.Tags); err != nil {
			return nil, nil, err
		}
	}

	reloaded, err := s.reload(task.ID)
	if err != nil {
		return nil, nil, err
	}

	var changedTo *models.TaskStatus
	if reloaded.Status != originalStatus {
		changedTo = &reloaded.Status
	}
	return reloaded, changedTo, nil
}

// Move repositions a task into (status, position). Every other task in the
// same team and target status at or past the requested slot shifts down one.
// The old column is not compacted, so gaps accumulate there.
func (s *TaskService) Move(user *models.User, taskID uint, status models.TaskStatus, position int) (*models.Task, *models.TaskStatus, error) {
	task, err := s.find(taskID)
	if err != nil {
		return nil, nil, err
	}

	if !sameTeam(user, task) {
		return nil, nil, softErrorf("You cannot move tasks from another team.")
	}

	oldStatus := task.Status
	task.Status = status

	// Open a gap in the target column.
	err = s.db.Model(&models.Task{}).
		Where("team_id = ? AND status = ? AND id <> ? AND position >= ?",
			task.TeamID, status, task.ID, position).
		UpdateColumn("position", gorm.Expr("position + 1")).Error
	if err != nil {
		return nil, nil, fmt.Errorf("shift positions: %w", err)
	}

	task.Position = position
	applyCompletion(task)

	if err := s.db.Save(task).Error; err != nil {
		return nil, nil, fmt.Errorf("move task: %w", err)
	}

	reloaded, err := s.reload(task.ID)
	if err != nil {
		return nil, nil, err
	}

	var changedTo *models.TaskStatus
	if reloaded.Status != oldStatus {
		changedTo = &reloaded.Status
	}
	return reloaded, changedTo, nil
}

// Assign sets or clears the task assignee. An assignee must belong to the
// task's team.
func (s *TaskService) Assign(user *models.User, taskID uint, assigneeID *uint) (*models.Task, error) {
	task, err := s.find(taskID)
	if err != nil {
		return nil, err
	}

	if !sameTeam(user, task) {
		return nil, softErrorf("You cannot assign tasks from another team.")
	}

	if assigneeID != nil {
		var assignee models.User
		err := s.db.Where("team_id = ? AND id = ?", task.TeamID, *assigneeID).First(&assignee).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, softErrorf("User must belong to the same team.")
			}
			return nil, fmt.Errorf("find assignee: %w", err)
		}
		task.AssignedTo = &assignee.ID
	} else {
		task.AssignedTo = nil
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, fmt.Errorf("assign task: %w", err)
	}

	return s.reload(task.ID)
}

// Delete hard-deletes the task and its tags.
func (s *TaskService) Delete(user *models.User, taskID uint) error {
	task, err := s.find(taskID)
	if err != nil {
		return err
	}

	if !sameTeam(user, task) {
		return softErrorf("You cannot delete tasks from another team.")
	}

	if err := s.db.Select("Tags").Delete(task).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *TaskService) find(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) reload(taskID uint) (*models.Task, error) {
	var task models.Task
	err := s.db.
		Preload("AssignedUser").
		Preload("Creator").
		Preload("Tags").
		First(&task, taskID).Error
	if err != nil {
		return nil, fmt.Errorf("reload task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) replaceTags(taskID uint, tags []TagInput) error {
	if err := s.db.Where("task_id = ?", taskID).Delete(&models.TaskTag{}).Error; err != nil {
		return fmt.Errorf("delete tags: %w", err)
	}
	for _, tag := range tags {
		if tag.Name == "" {
			continue
		}
		color := tag.Color
		if color == "" {
			color = defaultTagColor
		}
		record := models.TaskTag{TaskID: taskID, Name: tag.Name, Color: color}
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("create tag: %w", err)
		}
	}
	return nil
}

// applyCompletion keeps completed_at in sync with status: stamped once when a
// task lands on done, cleared whenever it leaves done.
func applyCompletion(task *models.Task) {
	if task.Status == models.TaskStatusDone {
		if task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}
}

func sameTeam(user *models.User, task *models.Task) bool {
	return user.TeamID != nil && *user.TeamID == task.TeamID
}
