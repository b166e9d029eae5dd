package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/middleware"
	"github.com/mediahaus/taskhaus/internal/models"
	"github.com/mediahaus/taskhaus/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB creates an in-memory SQLite database with all tables migrated.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Team{},
		&models.User{},
		&models.Task{},
		&models.TaskTag{},
		&models.Incident{},
		&models.IncidentEvent{},
		&models.IncidentFollowUp{},
		&models.GameScore{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// newTaskRouter registers the task API behind real API-key auth.
func newTaskRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	tc := NewTaskController(services.NewTaskService(db))

	tasks := r.Group("/api/v1/tasks")
	tasks.Use(middleware.ApiKeyAuth(db))
	{
		tasks.GET("", tc.Index)
		tasks.POST("", tc.Store)
		tasks.PATCH("/:id", tc.Update)
		tasks.POST("/:id/move", tc.Move)
		tasks.POST("/:id/assign", tc.Assign)
		tasks.DELETE("/:id", tc.Destroy)
	}
	return r
}

func makeTeam(t *testing.T, db *gorm.DB, slug string) *models.Team {
	t.Helper()
	team := models.Team{Name: slug, Slug: slug}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}
	return &team
}

func makeUser(t *testing.T, db *gorm.DB, email, apiKey string, teamID *uint) *models.User {
	t.Helper()
	user := models.User{
		Name:     email,
		Email:    email,
		Password: "hashed",
		TeamID:   teamID,
	}
	if apiKey != "" {
		user.APIKey = &apiKey
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

// doJSON performs a JSON request against the router and decodes the response
// body into a generic map.
func doJSON(t *testing.T, r *gin.Engine, method, path, apiKey string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	decoded := map[string]interface{}{}
	if w.Body.Len() > 0 && strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func doForm(t *testing.T, r *gin.Engine, method, path string, form map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
