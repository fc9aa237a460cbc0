package main

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/theramiway/fintelify/models"
)

// initDB connects to Postgres and, unless disabled, runs schema migration.
func initDB(cfg Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set; this service requires a Postgres DSN in DB_DSN")
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if cfg.AutoMigrate {
		// Migrate models individually so a failure on one doesn't block others
		for _, model := range []any{
			&models.Transaction{},
			&models.Goal{},
			&models.Insight{},
			&models.User{},
			&models.RefreshToken{},
		} {
			if err := db.AutoMigrate(model); err != nil {
				logger.Warn().Err(err).Msgf("migration warning (%T)", model)
			}
		}
	}
	return db, nil
}

// seedDB creates the initial admin user when no user with that email exists.
func seedDB(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("email = ?", "admin@fintelify.local").Count(&count)
	if count > 0 {
		return
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to hash seed password")
		return
	}
	admin := models.User{
		Name:           "Administrator",
		Email:          "admin@fintelify.local",
		HashedPassword: hashedPassword,
	}
	if err := db.Create(&admin).Error; err != nil {
		logger.Warn().Err(err).Msg("failed to seed admin user")
		return
	}
	logger.Info().Str("email", admin.Email).Msg("seeded admin user, password=admin123")
}
