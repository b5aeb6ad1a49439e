package main

import (
	"log"
	"os"

	"gym-membership-be/internal/model"
	"gym-membership-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect (postgres or sqlite, by DSN)
	db, err := database.Open(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Printf("Running AutoMigrate for %d tables...", len(model.All()))
	if err := model.AutoMigrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 3. Post-Migration: indexes the sweep and statistics queries lean on
	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_members_status_end_date ON members (status, end_date);`,
		`CREATE INDEX IF NOT EXISTS idx_members_date_registered ON members (date_registered);`,
		`CREATE INDEX IF NOT EXISTS idx_membership_logs_action_date ON membership_logs (action_date);`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
