package database

import (
	"log"

	"gigbud/internal/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskApplicant{},
		&models.TaskSave{},
		&models.Review{},
		&models.BlacklistedToken{},
		&models.Location{},
		&models.Notification{},
	)
	if err != nil {
		log.Printf("Error during migration: %v", err)
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}
