package main

import (
	"log"

	"github.com/souqsyria/backend/internal/config"
	"github.com/souqsyria/backend/internal/database"
	"github.com/souqsyria/backend/internal/database/migrations"
	"github.com/souqsyria/backend/internal/seed"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Seeding complete")
}
