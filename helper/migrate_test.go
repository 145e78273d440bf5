package helper_test

import (
	"hotel/config"
	"hotel/helper"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAction(t *testing.T) {
	for _, action := range []string{helper.ActionUp, helper.ActionDown, helper.ActionStepUp, helper.ActionDrop} {
		assert.True(t, helper.IsAction(action), action)
	}

	assert.False(t, helper.IsAction("sideways"))
	assert.False(t, helper.IsAction(""))
}

func TestDatabaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "dev_"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Username = "hotel"
	cfg.DB.Postgres.Write.Password = "hotel"
	cfg.DB.Postgres.Write.Name = "hotel"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	assert.Equal(t, "postgres://hotel:hotel@db:5432/dev_hotel?sslmode=disable&x-migrations-table=schema_migrations", helper.DatabaseURL(cfg))

	cfg.DB.Postgres.MigrationTable = "booking_migrations"
	assert.Contains(t, helper.DatabaseURL(cfg), "x-migrations-table=booking_migrations")
}
