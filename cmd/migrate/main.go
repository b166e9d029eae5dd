package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/mediahaus/taskhaus/internal/db"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db.Connect()

	log.Println("Running database migrations...")
	db.AutoMigrate()
	log.Println("✅ Migrations complete")
}
