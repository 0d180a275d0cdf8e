package db

import (
	"context"
	"errors"
	"time"

	"salepoint/internal/pkg/config"
	"salepoint/internal/pkg/errs"
	"salepoint/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPoolCreation = errs.New("failed to create connection pool")
	ErrPingFailed   = errs.New("failed to ping database")
	ErrMigration    = errs.New("failed to run migrations")
)

func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, errs.Mark(err, ErrPoolCreation)
	}
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errs.Mark(err, ErrPoolCreation)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errs.Mark(err, ErrPingFailed)
	}

	return pool, nil
}

// RunMigrations applies the embedded migrations. Already being up to
// date is not an error.
func RunMigrations(cfg config.DBConfig) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return errs.Mark(err, ErrMigration)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.BuildDSN())
	if err != nil {
		return errs.Mark(err, ErrMigration)
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		_ = sourceErr
		_ = dbErr
	}()

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errs.Mark(err, ErrMigration)
	}
	return nil
}
