package db

import (
	"fmt"
	"log"
	"os"

	"github.com/mediahaus/taskhaus/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect initializes the database connection. DB_DRIVER=sqlite opens a local
// file database (DB_PATH, default taskhaus.db); anything else uses postgres.
func Connect() {
	var dialector gorm.Dialector

	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "taskhaus.db"
		}
		dialector = sqlite.Open(path)
	} else {
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_SSLMODE"),
		)
		dialector = postgres.Open(dsn)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})

	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("✅ Database connected successfully")
}

// AllModels lists every table in migration order (parents before children).
func AllModels() []interface{} {
	return []interface{}{
		&models.Team{},
		&models.User{},
		&models.Task{},
		&models.TaskTag{},
		&models.Incident{},
		&models.IncidentEvent{},
		&models.IncidentFollowUp{},
		&models.GameScore{},
	}
}

// AutoMigrate runs database migrations
func AutoMigrate() {
	if err := DB.AutoMigrate(AllModels()...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✅ All database migrations completed successfully")
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
