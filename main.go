package main

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"queijos-backend/models"
)

func main() {
	cfg := LoadConfig()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Order{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	verifier, err := newVerifier(cfg)
	if err != nil {
		log.Fatal("Failed to initialize credential verifier:", err)
	}

	r := SetupRouter(db, cfg, verifier)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
