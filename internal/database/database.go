package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// New connects the shared read pool and brings the schema up to date.
// Migrations run on a short-lived database/sql handle because goose speaks
// that interface; the pool itself is pure pgx.
func New(cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, error) {
	logger.Info().Msg("connecting to database")

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = constants.DBMaxConns
	poolCfg.MinConns = constants.DBMinConns
	poolCfg.MaxConnLifetime = constants.DBConnMaxLifetime
	poolCfg.MaxConnIdleTime = constants.DBMaxIdleTime

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create connection pool")
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error().Err(err).Msg("failed to ping database")
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(cfg, logger); err != nil {
		pool.Close()
		logger.Error().Err(err).Msg("failed to run migrations")
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info().Msg("database connection established")
	return pool, nil
}

func runMigrations(cfg *config.Config, logger zerolog.Logger) error {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}

	logger.Info().Msg("migrations completed successfully")
	return nil
}
