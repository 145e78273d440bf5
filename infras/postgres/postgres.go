package postgres

//nolint:revive
import (
	"fmt"
	"hotel/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName         = "postgres"
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads and writes so a replica can serve listings.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one side of the read/write pair.
type Endpoint struct {
	Role     string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  Connect(ReadEndpoint(cfg), pg.MaxRetry, pg.RetryWaitTime),
		Write: Connect(WriteEndpoint(cfg), pg.MaxRetry, pg.RetryWaitTime),
	}
}

func ReadEndpoint(cfg *config.Config) Endpoint {
	pg := cfg.DB.Postgres

	return Endpoint{
		Role: "read", Host: pg.Read.Host, Port: pg.Read.Port, Username: pg.Read.Username,
		Password: pg.Read.Password, Name: pg.Prefix + pg.Read.Name, SSLMode: pg.Read.SSLMode,
	}
}

func WriteEndpoint(cfg *config.Config) Endpoint {
	pg := cfg.DB.Postgres

	return Endpoint{
		Role: "write", Host: pg.Write.Host, Port: pg.Write.Port, Username: pg.Write.Username,
		Password: pg.Write.Password, Name: pg.Prefix + pg.Write.Name, SSLMode: pg.Write.SSLMode,
	}
}

// DSN renders the endpoint as a lib/pq connection URL.
func (e Endpoint) DSN() string {
	return e.DSNWith(nil)
}

// DSNWith renders the endpoint with extra query parameters appended.
func (e Endpoint) DSNWith(params url.Values) string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	for key, values := range params {
		query[key] = values
	}

	u := url.URL{
		Scheme: driverName,
		User:   url.UserPassword(e.Username, e.Password),
		Host:   net.JoinHostPort(e.Host, e.Port),
		Path:   "/" + e.Name,
	}

	u.RawQuery = query.Encode()

	return u.String()
}

// Connect retries up to maxRetry times, waiting waitSeconds between attempts.
// The process cannot serve bookings without storage, so exhausting retries is fatal.
func Connect(endpoint Endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().
		Str("name", endpoint.Role).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Name).
		Logger()

	var lastErr error

	for attempt := range max(maxRetry, 1) {
		db, err := sqlx.Connect(driverName, endpoint.DSN())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		lastErr = err

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")
		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Err(fmt.Errorf("giving up after %d attempts: %w", max(maxRetry, 1), lastErr)).Msg("Database unavailable")

	return nil
}
