package services

import (
	"testing"

	"github.com/mediahaus/taskhaus/internal/models"
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

func makeTeam(t *testing.T, db *gorm.DB, slug string) *models.Team {
	t.Helper()
	team := models.Team{Name: slug, Slug: slug}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("create team: %v", err)
	}
	return &team
}

func makeUser(t *testing.T, db *gorm.DB, email string, teamID *uint) *models.User {
	t.Helper()
	user := models.User{
		Name:     email,
		Email:    email,
		Password: "hashed",
		TeamID:   teamID,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func makeTask(t *testing.T, db *gorm.DB, teamID uint, createdBy uint, status models.TaskStatus, position int) *models.Task {
	t.Helper()
	task := models.Task{
		TeamID:    teamID,
		Title:     "task",
		Status:    status,
		Priority:  models.TaskPriorityMedium,
		CreatedBy: createdBy,
		Position:  position,
	}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return &task
}
