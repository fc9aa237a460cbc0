package main

import (
	"os"

	"github.com/theramiway/fintelify/services"
	"github.com/theramiway/fintelify/store"
)

func main() {
	cfg := loadConfig()

	db, err := initDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init failed")
	}
	seedDB(db)

	// Support a lightweight migrate command: `./fintelify migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		logger.Info().Msg("migration and seeding completed")
		return
	}

	recordStore := store.NewGormStore(db)
	srv := newServer(cfg, db,
		services.NewLedgerService(recordStore),
		services.NewGoalService(recordStore),
		services.NewInsightService(recordStore),
	)

	r := srv.routes()
	logger.Info().Str("port", cfg.Port).Msg("fintelify API listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
