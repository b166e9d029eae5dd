package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mediahaus/taskhaus/internal/models"
)

func TestTaskAPI_RequiresAPIKey(t *testing.T) {
	db := testDB(t)
	r := newTaskRouter(db)

	w, body := doJSON(t, r, http.MethodGet, "/api/v1/tasks", "", nil)
	mustStatus(t, w, http.StatusUnauthorized)
	if body["success"] != false {
		t.Errorf("body = %v, want success=false", body)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/tasks", "wrong-key", nil)
	mustStatus(t, w, http.StatusUnauthorized)
}

func TestTaskAPI_CreateWithoutTeam(t *testing.T) {
	db := testDB(t)
	r := newTaskRouter(db)
	makeUser(t, db, "loner@example.com", "key-loner", nil)

	w, body := doJSON(t, r, http.MethodPost, "/api/v1/tasks", "key-loner", map[string]interface{}{
		"title":    "orphan",
		"status":   "todo",
		"priority": "low",
	})
	mustStatus(t, w, http.StatusUnprocessableEntity)
	if body["success"] != false {
		t.Errorf("body = %v, want success=false", body)
	}

	var count int64
	db.Model(&models.Task{}).Count(&count)
	if count != 0 {
		t.Errorf("task count = %d, want 0", count)
	}
}

func TestTaskAPI_CreateVocabulary(t *testing.T) {
	db := testDB(t)
	r := newTaskRouter(db)
	team := makeTeam(t, db, "squad")
	makeUser(t, db, "member@example.com", "key-member", &team.ID)

	// Create accepts the legacy "doing".
	w, body := doJSON(t, r, http.MethodPost, "/api/v1/tasks", "key-member", map[string]interface{}{
		"title":    "legacy status",
		"status":   "doing",
		"priority": "medium",
	})
	mustStatus(t, w, http.StatusCreated)
	task := body["task"].(map[string]interface{})
	if task["status"] != "doing" {
		t.Errorf("status = %v, want doing stored as sent", task["status"])
	}
	if task["position"].(float64) != 1 {
		t.Errorf("position = %v, want 1", task["position"])
	}

	// But "in_progress" is rejected on create.
	w, _ = doJSON(t, r, http.MethodPost, "/api/v1/tasks", "key-member", map[string]interface{}{
		"title":    "modern status",
		"status":   "in_progress",
		"priority": "medium",
	})
	mustStatus(t, w, http.StatusUnprocessableEntity)

	// Update takes "in_progress" and rejects "doing".
	id := uint(task["id"].(float64))
	w, _ = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", id), "key-member", map[string]interface{}{
		"status": "in_progress",
	})
	mustStatus(t, w, http.StatusOK)

	w, _ = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%d", id), "key-member", map[string]interface{}{
		"status": "doing",
	})
	mustStatus(t, w, http.StatusUnprocessableEntity)
}

func TestTaskAPI_MoveResponseShape(t *testing.T) {
	db := testDB(t)
	r := newTaskRouter(db)
	team := makeTeam(t, db, "squad")
	user := makeUser(t, db, "member@example.com", "key-member", &team.ID)

	occupant := models.Task{
		TeamID: team.ID, Title: "occupant", Status: models.TaskStatusDone,
		Priority: models.TaskPriorityLow, CreatedBy: user.ID, Position: 1,
	}
	if err := db.Create(&occupant).Error; err != nil {
		t.Fatal(err)
	}
	moving := models.Task{
		TeamID: team.ID, Title: "moving", Status: models.TaskStatusTodo,
		Priority: models.TaskPriorityLow, CreatedBy: user.ID, Position: 1,
	}
	if err := db.Create(&moving).Error; err != nil {
		t.Fatal(err)
	}

	w, body := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/tasks/%d/move", moving.ID), "key-member", map[string]interface{}{
		"status":   "done",
		"position": 1,
	})
	mustStatus(t, w, http.StatusOK)

	if body["message"] != "Task moved successfully" {
		t.Errorf("message = %v", body["message"])
	}
	if body["status_changed_to"] != "done" {
		t.Errorf("status_changed_to = %v, want done", body["status_changed_to"])
	}
	task := body["task"].(map[string]interface{})
	if task["completed_at"] == nil {
		t.Error("completed_at not stamped in response")
	}

	var shifted models.Task
	if err := db.First(&shifted, occupant.ID).Error; err != nil {
		t.Fatal(err)
	}
	if shifted.Position != 2 {
		t.Errorf("occupant position = %d, want 2", shifted.Position)
	}
}

func TestTaskAPI_CrossTeamDeleteSoftError(t *testing.T) {
	db := testDB(t)
	r := newTaskRouter(db)
	ours := makeTeam(t, db, "ours")
	theirs := makeTeam(t, db, "theirs")
	owner := makeUser(t, db, "owner@example.com", "key-owner", &theirs.ID)
	makeUser(t, db, "outsider@example.com", "key-outsider", &ours.ID)

	task := models.Task{
		TeamID: theirs.ID, Title: "protected", Status: models.TaskStatusTodo,
		Priority: models.TaskPriorityLow, CreatedBy: owner.ID, Position: 1,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatal(err)
	}

	// HTTP 200 with an error body, and the row survives.
	w, body := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%d", task.ID), "key-outsider", nil)
	mustStatus(t, w, http.StatusOK)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] != "You cannot delete tasks from another team." {
		t.Errorf("error = %v", body["error"])
	}

	var count int64
	db.Model(&models.Task{}).Count(&count)
	if count != 1 {
		t.Errorf("task count = %d, want 1 (row not removed)", count)
	}
}

func TestTaskAPI_ListScopedAndHydrated(t *testing.T) {
	db := testDB(t)
	r := newTaskRouter(db)
	team := makeTeam(t, db, "squad")
	user := makeUser(t, db, "member@example.com", "key-member", &team.ID)

	task := models.Task{
		TeamID: team.ID, Title: "tagged", Status: models.TaskStatusTodo,
		Priority: models.TaskPriorityLow, CreatedBy: user.ID, Position: 1,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatal(err)
	}
	db.Create(&models.TaskTag{TaskID: task.ID, Name: "infra", Color: "#22c55e"})

	w, body := doJSON(t, r, http.MethodGet, "/api/v1/tasks", "key-member", nil)
	mustStatus(t, w, http.StatusOK)

	tasks := body["tasks"].([]interface{})
	if len(tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(tasks))
	}
	first := tasks[0].(map[string]interface{})
	tags := first["tags"].([]interface{})
	if len(tags) != 1 {
		t.Fatalf("tags = %d, want hydrated tag list", len(tags))
	}
	creator := first["creator"].(map[string]interface{})
	if creator["email"] != "member@example.com" {
		t.Errorf("creator = %v", creator["email"])
	}
	if _, leaked := creator["password"]; leaked {
		t.Error("password leaked in creator relation")
	}
}
