package main

import (
	"log"

	"github.com/ducielo/rencontre-coeur-brise/internal/config"
	"github.com/ducielo/rencontre-coeur-brise/internal/database"
	"github.com/ducielo/rencontre-coeur-brise/internal/models"
	"github.com/ducielo/rencontre-coeur-brise/internal/seeds"
	"github.com/ducielo/rencontre-coeur-brise/pkg/logger"
)

func main() {
	config.LoadConfig()
	logger.Init("development")
	database.Connect()
	database.InitRedis()

	log.Println("Running migrations (just in case)...")
	err := database.DB.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Like{},
		&models.Match{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if err := seeds.Run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
