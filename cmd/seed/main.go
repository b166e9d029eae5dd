package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/mediahaus/taskhaus/internal/db"
	"github.com/mediahaus/taskhaus/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db.Connect()

	log.Println("Running database migrations...")
	db.AutoMigrate()

	log.Println("Seeding database with sample data...")

	if err := seedTeams(); err != nil {
		log.Printf("Error seeding teams: %v", err)
	}
	if err := seedUsers(); err != nil {
		log.Printf("Error seeding users: %v", err)
	}
	if err := seedTasks(); err != nil {
		log.Printf("Error seeding tasks: %v", err)
	}
	if err := seedIncidents(); err != nil {
		log.Printf("Error seeding incidents: %v", err)
	}
	if err := seedGameScores(); err != nil {
		log.Printf("Error seeding game scores: %v", err)
	}

	log.Println("✅ Database seeding completed successfully!")
}

func seedTeams() error {
	teams := []models.Team{
		{Slug: "mediahaus-squad", Name: "MediaHaus Squad", Color: "#2563eb"},
		{Slug: "design-team", Name: "Design Team", Color: "#ec4899"},
		{Slug: "sre-guild", Name: "SRE Guild", Color: "#22c55e"},
		{Slug: "incident-command", Name: "Incident Command", Color: "#0ea5e9"},
	}

	for _, team := range teams {
		var existing models.Team
		if err := db.DB.Where("slug = ?", team.Slug).First(&existing).Error; err == nil {
			continue
		}
		if err := db.DB.Create(&team).Error; err != nil {
			log.Printf("Error creating team %s: %v", team.Slug, err)
		} else {
			log.Printf("✅ Created team: %s", team.Name)
		}
	}
	return nil
}

func seedUsers() error {
	var team models.Team
	if err := db.DB.Where("slug = ?", "mediahaus-squad").First(&team).Error; err != nil {
		return err
	}

	users := []struct {
		Name     string
		Email    string
		Password string
	}{
		{"Ada Fernsby", "ada@taskhaus.test", "password123"},
		{"Marco Voss", "marco@taskhaus.test", "password123"},
	}

	for _, data := range users {
		var existing models.User
		if err := db.DB.Where("email = ?", data.Email).First(&existing).Error; err == nil {
			log.Printf("⚠️  User already exists: %s", data.Email)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Error hashing password for %s: %v", data.Email, err)
			continue
		}

		user := models.User{
			Name:          data.Name,
			Email:         data.Email,
			Password:      string(hashed),
			TeamID:        &team.ID,
			CurrentTeamID: &team.ID,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Printf("Error creating user %s: %v", data.Email, err)
		} else {
			log.Printf("✅ Created user: %s", user.Email)
		}
	}
	return nil
}

func seedTasks() error {
	var team models.Team
	if err := db.DB.Where("slug = ?", "mediahaus-squad").First(&team).Error; err != nil {
		return err
	}
	var creator models.User
	if err := db.DB.Where("email = ?", "ada@taskhaus.test").First(&creator).Error; err != nil {
		return err
	}

	var count int64
	db.DB.Model(&models.Task{}).Where("team_id = ?", team.ID).Count(&count)
	if count > 0 {
		return nil
	}

	desc := "Walk through the new board with the squad."
	tasks := []models.Task{
		{
			TeamID: team.ID, Title: "Set up project board", Status: models.TaskStatusDone,
			Priority: models.TaskPriorityHigh, CreatedBy: creator.ID, Position: 1,
		},
		{
			TeamID: team.ID, Title: "Demo kanban to the team", Description: &desc,
			Status: models.TaskStatusInProgress, Priority: models.TaskPriorityMedium,
			CreatedBy: creator.ID, Position: 1, AssignedTo: &creator.ID,
		},
		{
			TeamID: team.ID, Title: "Write onboarding notes", Status: models.TaskStatusTodo,
			Priority: models.TaskPriorityLow, CreatedBy: creator.ID, Position: 1,
		},
	}

	for i := range tasks {
		if tasks[i].Status == models.TaskStatusDone {
			now := time.Now()
			tasks[i].CompletedAt = &now
		}
		if err := db.DB.Create(&tasks[i]).Error; err != nil {
			log.Printf("Error creating task %q: %v", tasks[i].Title, err)
			continue
		}
		log.Printf("✅ Created task: %s", tasks[i].Title)
	}

	tags := []models.TaskTag{
		{TaskID: tasks[0].ID, Name: "setup", Color: "#22c55e"},
		{TaskID: tasks[1].ID, Name: "demo", Color: "#0ea5e9"},
	}
	for _, tag := range tags {
		if err := db.DB.Create(&tag).Error; err != nil {
			log.Printf("Error creating tag %q: %v", tag.Name, err)
		}
	}
	return nil
}

func seedIncidents() error {
	var count int64
	db.DB.Model(&models.Incident{}).Count(&count)
	if count > 0 {
		return nil
	}

	now := time.Now()

	payments := models.Incident{
		Key:             "IC-2471",
		Title:           "Checkout failures for credit card payments",
		Severity:        models.SeveritySev1,
		Status:          models.IncidentStatusInvestigating,
		System:          "Payments",
		StartedAt:       now.Add(-45 * time.Minute),
		LastUpdatedAt:   now.Add(-5 * time.Minute),
		ImpactedRegions: models.StringList{"US-East", "US-West"},
		ImpactedUsers:   "~32 percent of active sessions",
		Owner:           "On call payments",
		Summary:         "Elevated failure rate on credit card charges. PayPal and ACH remain healthy.",
		Tags:            models.StringList{"payments", "checkout", "stripe-gateway", "revenue-impact"},
	}
	if err := db.DB.Create(&payments).Error; err != nil {
		return err
	}

	paymentsEvents := []models.IncidentEvent{
		{
			IncidentID: payments.ID, OccurredAt: now.Add(-45 * time.Minute), Type: "detected",
			Actor: "Alert: payments_error_rate",
			Label: "Alert fired for spike in 5xx from payment service",
			Detail: "Error rate went from 0.3 percent to 7.8 percent over 5 minutes.",
		},
		{
			IncidentID: payments.ID, OccurredAt: now.Add(-40 * time.Minute), Type: "triage",
			Actor: "On call payments",
			Label: "Initial triage and dashboard review",
			Detail: "Confirmed spike in credit card failures. Other payment methods look healthy.",
		},
		{
			IncidentID: payments.ID, OccurredAt: now.Add(-25 * time.Minute), Type: "mitigation",
			Actor: "Payments engineer",
			Label: "Traffic shifted away from degraded gateway",
			Detail: "Routing 80 percent of traffic to secondary processor while investigating primary.",
		},
	}
	for _, event := range paymentsEvents {
		if err := db.DB.Create(&event).Error; err != nil {
			return err
		}
	}

	paymentsFollowUps := []models.IncidentFollowUp{
		{IncidentID: payments.ID, Owner: "Payments team", Label: "Add synthetic monitoring for credit card only path", Status: models.FollowUpStatusOpen},
		{IncidentID: payments.ID, Owner: "Data team", Label: "Quantify revenue impact and add dashboard view", Status: models.FollowUpStatusOpen},
	}
	for _, followUp := range paymentsFollowUps {
		if err := db.DB.Create(&followUp).Error; err != nil {
			return err
		}
	}

	timeline := models.Incident{
		Key:             "IC-2472",
		Title:           "Delayed incident timeline updates",
		Severity:        models.SeveritySev3,
		Status:          models.IncidentStatusMonitoring,
		System:          "Incident Command Center",
		StartedAt:       now.Add(-3 * time.Hour),
		LastUpdatedAt:   now.Add(-1 * time.Hour),
		ImpactedRegions: models.StringList{"US-East"},
		ImpactedUsers:   "On call and commanders",
		Owner:           "Platform team",
		Summary:         "Incident event stream was lagging behind by 3 to 5 minutes for some users.",
		Tags:            models.StringList{"incidents", "realtime", "websockets"},
	}
	if err := db.DB.Create(&timeline).Error; err != nil {
		return err
	}

	timelineEvents := []models.IncidentEvent{
		{
			IncidentID: timeline.ID, OccurredAt: now.Add(-180 * time.Minute), Type: "detected",
			Actor: "Synthetic monitor",
			Label: "Timeline updates delayed by more than 3 minutes",
			Detail: "Websocket clients still connected but not receiving fresh events.",
		},
		{
			IncidentID: timeline.ID, OccurredAt: now.Add(-170 * time.Minute), Type: "triage",
			Actor: "Platform on call",
			Label: "Rolled logs for websocket fanout service",
			Detail: "Found backlog building on one node after deployment.",
		},
		{
			IncidentID: timeline.ID, OccurredAt: now.Add(-120 * time.Minute), Type: "monitoring",
			Actor: "Platform team",
			Label: "Backlog drained after node restart",
			Detail: "Watching event delivery latency before closing out.",
		},
	}
	for _, event := range timelineEvents {
		if err := db.DB.Create(&event).Error; err != nil {
			return err
		}
	}

	log.Println("✅ Created demo incidents")
	return nil
}

func seedGameScores() error {
	var count int64
	db.DB.Model(&models.GameScore{}).Count(&count)
	if count > 0 {
		return nil
	}

	scores := []models.GameScore{
		{GameKey: "orbital_dodge", Name: "Nova", Score: 4200},
		{GameKey: "orbital_dodge", Name: "Pulsar", Score: 3650},
		{GameKey: "orbital_dodge", Name: "Quark", Score: 2980},
		{GameKey: "orbital_dodge", Name: "Vega", Score: 2410},
		{GameKey: "orbital_dodge", Name: "Halo", Score: 1770},
	}
	for _, score := range scores {
		if err := db.DB.Create(&score).Error; err != nil {
			log.Printf("Error creating score for %s: %v", score.Name, err)
		}
	}

	log.Println("✅ Created demo game scores")
	return nil
}
