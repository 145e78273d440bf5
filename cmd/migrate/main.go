package main

import (
	"hotel/config"
	"hotel/helper"
	"hotel/infras/sqlite"
	"hotel/internal/domains/booking/model"
	"hotel/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration direction (up/down) is required")
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	direction := os.Args[1]

	if cfg.DatabaseDriver() == config.DBDriverSQLite {
		if direction != helper.ActionUp {
			log.Fatal().Str("direction", direction).Msg("SQLite only supports 'up'")
		}

		if err := sqlite.Migrate(sqlite.New(cfg), &model.Booking{}); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate SQLite database")
		}

		return
	}

	if !helper.IsAction(direction) {
		log.Fatal().Str("direction", direction).Msg("Invalid direction. Use 'up', 'down', 'drop' or 'step-up'")
	}

	if err := helper.Runner(cfg, direction); err != nil {
		log.Fatal().Err(err).Str("direction", direction).Msg("Migration failed")
	}
}
