package sqlite

import (
	"fmt"
	"hotel/config"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultPath = "./hotel.db"

// New opens the SQLite database through GORM. Driver errors are translated into
// gorm sentinel errors such as gorm.ErrDuplicatedKey.
func New(config *config.Config) *gorm.DB {
	path := config.DB.SQLite.Path
	if path == constant.Empty {
		path = defaultPath
	}

	db, err := Open(path, config.Server.Env == constant.ServerEnvDevelopment)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to open SQLite database")
	}

	log.Info().Str("path", path).Msg("Connected to SQLite database")

	return db
}

// Open opens the database at dsn; ":memory:" is accepted for tests.
func Open(dsn string, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return db, nil
}

// Migrate creates or alters the tables of models.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate sqlite schema: %w", err)
	}

	log.Info().Int("models", len(models)).Msg("SQLite schema migrated")

	return nil
}
