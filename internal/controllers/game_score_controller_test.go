package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mediahaus/taskhaus/internal/models"
	"github.com/mediahaus/taskhaus/internal/services"
	"gorm.io/gorm"
)

func newLeaderboardRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gc := NewGameScoreController(services.NewLeaderboardService(db))
	r.GET("/api/leaderboard/orbital-dodge", gc.Index)
	r.POST("/api/leaderboard/orbital-dodge", gc.Store)
	return r
}

func TestSubmitScore(t *testing.T) {
	db := testDB(t)
	r := newLeaderboardRouter(db)

	w, body := doJSON(t, r, http.MethodPost, "/api/leaderboard/orbital-dodge", "", map[string]interface{}{
		"name":  "NOVA",
		"score": 4200,
	})
	mustStatus(t, w, http.StatusCreated)
	if body["name"] != "NOVA" {
		t.Errorf("name = %v", body["name"])
	}

	var stored models.GameScore
	if err := db.First(&stored).Error; err != nil {
		t.Fatal(err)
	}
	if stored.GameKey != "orbital_dodge" {
		t.Errorf("game_key = %q, want orbital_dodge", stored.GameKey)
	}
	if stored.Score != 4200 {
		t.Errorf("score = %d", stored.Score)
	}
}

func TestSubmitScore_Validation(t *testing.T) {
	db := testDB(t)
	r := newLeaderboardRouter(db)

	cases := []map[string]interface{}{
		{"score": 100},                 // missing name
		{"name": "NOVA"},               // missing score
		{"name": "NOVA", "score": 0},   // below minimum
		{"name": "NOVA", "score": -10}, // negative
	}
	for _, payload := range cases {
		w, _ := doJSON(t, r, http.MethodPost, "/api/leaderboard/orbital-dodge", "", payload)
		mustStatus(t, w, http.StatusUnprocessableEntity)
	}

	var count int64
	db.Model(&models.GameScore{}).Count(&count)
	if count != 0 {
		t.Errorf("score count = %d, want 0", count)
	}
}

func TestLeaderboardIndex(t *testing.T) {
	db := testDB(t)
	r := newLeaderboardRouter(db)

	svc := services.NewLeaderboardService(db)
	for _, s := range []struct {
		name  string
		score int
	}{{"NOVA", 900}, {"PIXEL", 1500}, {"DRIFT", 300}} {
		if _, err := svc.Submit("orbital_dodge", s.name, s.score); err != nil {
			t.Fatal(err)
		}
	}
	// A score for a different game must never leak into this board.
	if _, err := svc.Submit("asteroid_run", "GHOST", 99999); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/orbital-dodge", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	mustStatus(t, w, http.StatusOK)

	var scores []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &scores); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len = %d, want 3", len(scores))
	}
	if scores[0]["name"] != "PIXEL" || scores[1]["name"] != "NOVA" || scores[2]["name"] != "DRIFT" {
		t.Errorf("order = %v %v %v", scores[0]["name"], scores[1]["name"], scores[2]["name"])
	}
}
