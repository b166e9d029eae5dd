package services

import (
	"testing"
	"time"

	"github.com/mediahaus/taskhaus/internal/models"
)

func TestTop_EarlierSubmissionWinsTies(t *testing.T) {
	db := testDB(t)
	svc := NewLeaderboardService(db)

	now := time.Now()
	rows := []models.GameScore{
		{GameKey: "orbital_dodge", Name: "A", Score: 100, CreatedAt: now.Add(-2 * time.Minute)},
		{GameKey: "orbital_dodge", Name: "B", Score: 100, CreatedAt: now.Add(-1 * time.Minute)},
		{GameKey: "orbital_dodge", Name: "C", Score: 250, CreatedAt: now},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	scores, err := svc.Top("orbital_dodge")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 3 {
		t.Fatalf("len = %d, want 3", len(scores))
	}
	if scores[0].Name != "C" {
		t.Errorf("first = %q, want highest score", scores[0].Name)
	}
	if scores[1].Name != "A" || scores[2].Name != "B" {
		t.Errorf("tie order = %q,%q, want A before B (earlier wins)", scores[1].Name, scores[2].Name)
	}
}

func TestTop_LimitAndGameScope(t *testing.T) {
	db := testDB(t)
	svc := NewLeaderboardService(db)

	now := time.Now()
	for i := 0; i < 12; i++ {
		row := models.GameScore{
			GameKey:   "orbital_dodge",
			Name:      "P",
			Score:     100 + i,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatal(err)
		}
	}
	other := models.GameScore{GameKey: "other_game", Name: "X", Score: 9999, CreatedAt: now}
	if err := db.Create(&other).Error; err != nil {
		t.Fatal(err)
	}

	scores, err := svc.Top("orbital_dodge")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 10 {
		t.Fatalf("len = %d, want 10", len(scores))
	}
	if scores[0].Score != 111 {
		t.Errorf("top score = %d, want 111", scores[0].Score)
	}
	for _, score := range scores {
		if score.Name == "X" {
			t.Error("score from another game leaked into the leaderboard")
		}
	}
}

func TestSubmit_AppendsUnconditionally(t *testing.T) {
	db := testDB(t)
	svc := NewLeaderboardService(db)

	// Same name, same score: both rows kept. No de-duplication.
	if _, err := svc.Submit("orbital_dodge", "Nova", 500); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Submit("orbital_dodge", "Nova", 500); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&models.GameScore{}).Count(&count)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
