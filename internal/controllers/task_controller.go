package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/models"
	"github.com/mediahaus/taskhaus/internal/services"
)

type TaskController struct {
	tasks *services.TaskService
}

func NewTaskController(tasks *services.TaskService) *TaskController {
	return &TaskController{tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description"`
	// Create still accepts the legacy "doing" vocabulary while update and
	// move take "in_progress". Kept as-is; clients depend on it.
	Status     string `json:"status" binding:"required,oneof=todo doing done"`
	Priority   string `json:"priority" binding:"required,oneof=low medium high"`
	AssignedTo *uint  `json:"assigned_to"`
	TeamID     *uint  `json:"team_id"`
}

type TagPayload struct {
	Name  string `json:"name" binding:"max=50"`
	Color string `json:"color" binding:"max=20"`
}

type UpdateTaskRequest struct {
	Title       *string       `json:"title" binding:"omitempty,max=255"`
	Description *string       `json:"description"`
	Priority    *string       `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      *string       `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	AssignedTo  *uint         `json:"assigned_to"`
	Position    *int          `json:"position"`
	Tags        *[]TagPayload `json:"tags"`
}

type MoveTaskRequest struct {
	Status   string `json:"status" binding:"required,oneof=todo in_progress done"`
	Position int    `json:"position" binding:"required,min=1"`
}

type AssignTaskRequest struct {
	UserID *uint `json:"user_id"`
}

func (tc *TaskController) Index(c *gin.Context) {
	user := currentUser(c)

	var filter services.TaskFilter
	if assigned := c.Query("assigned_to"); assigned != "" {
		id, err := strconv.ParseUint(assigned, 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "assigned_to must be an integer",
			})
			return
		}
		assignedID := uint(id)
		filter.AssignedTo = &assignedID
	}
	filter.Search = c.Query("search")

	tasks, err := tc.tasks.List(user, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
	})
}

func (tc *TaskController) Store(c *gin.Context) {
	user := currentUser(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	task, err := tc.tasks.Create(user, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		AssignedTo:  req.AssignedTo,
		TeamID:      req.TeamID,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoTeam) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "No team could be resolved for this user. Please create or select a team first.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"task":    task,
	})
}

func (tc *TaskController) Update(c *gin.Context) {
	user := currentUser(c)

	taskID, ok := taskParam(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Position:    req.Position,
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Tags != nil {
		tags := make([]services.TagInput, 0, len(*req.Tags))
		for _, tag := range *req.Tags {
			tags = append(tags, services.TagInput{Name: tag.Name, Color: tag.Color})
		}
		input.Tags = &tags
	}

	task, changedTo, err := tc.tasks.Update(user, taskID, input)
	if err != nil {
		tc.renderTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"task":              task,
		"status_changed_to": changedTo,
	})
}

func (tc *TaskController) Move(c *gin.Context) {
	user := currentUser(c)

	taskID, ok := taskParam(c)
	if !ok {
		return
	}

	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	task, changedTo, err := tc.tasks.Move(user, taskID, models.TaskStatus(req.Status), req.Position)
	if err != nil {
		tc.renderTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"message":           "Task moved successfully",
		"task":              task,
		"status_changed_to": changedTo,
	})
}

func (tc *TaskController) Assign(c *gin.Context) {
	user := currentUser(c)

	taskID, ok := taskParam(c)
	if !ok {
		return
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "message": err.Error()})
		return
	}

	task, err := tc.tasks.Assign(user, taskID, req.UserID)
	if err != nil {
		tc.renderTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task assignment updated.",
		"task":    task,
	})
}

func (tc *TaskController) Destroy(c *gin.Context) {
	user := currentUser(c)

	taskID, ok := taskParam(c)
	if !ok {
		return
	}

	if err := tc.tasks.Delete(user, taskID); err != nil {
		tc.renderTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted with a smooth goodbye.",
	})
}

// renderTaskError translates service failures into the two legacy wire
// conventions: soft errors as 200 bodies, hard errors as HTTP statuses.
func (tc *TaskController) renderTaskError(c *gin.Context, err error) {
	if soft, ok := services.AsSoftError(err); ok {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   soft.Message,
		})
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Something went wrong"})
	}
}

func taskParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
		return 0, false
	}
	return uint(id), true
}
