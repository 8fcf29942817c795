package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"staysync/config"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	ctx := context.Background()

	write, err := Connect(ctx, config, "write", config.DB.Postgres.Write)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to the calendar database")
	}

	read, err := Connect(ctx, config, "read", config.DB.Postgres.Read)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to the calendar read replica")
	}

	return &Connection{Read: read, Write: write}
}

// Close releases both pools. The read and write pools may be the same database.
func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// Connect opens a pool for one endpoint, retrying with backoff while the server comes up.
func Connect(ctx context.Context, cfg *config.Config, name string, endpoint config.PostgresEndpoint) (*sqlx.DB, error) {
	pg := cfg.DB.Postgres
	wait := time.Duration(max(pg.RetryWaitTime, 1)) * time.Second

	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", pg.Prefix+endpoint.Name).
		Logger()

	db, err := backoff.Retry(ctx, func() (*sqlx.DB, error) {
		return sqlx.ConnectContext(ctx, driverName, endpoint.DSN(pg.Prefix, nil))
	},
		backoff.WithBackOff(&backoff.ExponentialBackOff{
			InitialInterval:     wait,
			RandomizationFactor: backoff.DefaultRandomizationFactor,
			Multiplier:          backoff.DefaultMultiplier,
			MaxInterval:         wait * 8,
		}),
		backoff.WithMaxTries(uint(max(pg.MaxRetry, 1))),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Error().Err(err).Dur("retry_in", next).Msg("Failed connecting to database, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", name, err)
	}

	db.SetMaxOpenConns(pg.MaxOpenConns)
	db.SetMaxIdleConns(pg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifeMin) * time.Minute)

	logger.Info().Msg("Connected to database")

	return db, nil
}
