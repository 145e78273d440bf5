package di

import (
	"hotel/config"
	"hotel/helper"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/sqlite"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/repository"

	"github.com/rs/zerolog/log"
)

// provideBookingRepository opens only the store selected by DB_DRIVER.
func provideBookingRepository(cfg *config.Config, otel otel.Otel) repository.Booking {
	if cfg.DatabaseDriver() == config.DBDriverSQLite {
		db := sqlite.New(cfg)

		if cfg.DB.SQLite.AutoMigrate {
			if err := sqlite.Migrate(db, &model.Booking{}); err != nil {
				log.Fatal().Err(err).Msg("Failed to migrate SQLite database")
			}
		}

		return repository.NewGorm(db, otel)
	}

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate Postgres database")
		}
	}

	return repository.New(postgres.New(cfg), otel)
}
