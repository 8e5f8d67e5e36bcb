// Package db opens the PostgreSQL pool shared by repositories, read stores
// and the outbox relay.
package db

import (
	"context"
	"time"

	"vehicle-rental/internal/pkg/config"
	"vehicle-rental/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "vehicle-rental"
	connectTimeout  = 10 * time.Second
)

// PoolConfig turns the environment settings into a pgx pool config.
func PoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, errs.Wrap(err, "parse database config")
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute
	pc.ConnConfig.ConnectTimeout = connectTimeout
	pc.ConnConfig.RuntimeParams["application_name"] = applicationName
	return pc, nil
}

// Connect returns a pool that has answered a ping.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	pc, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, errs.Wrapf(err, "open database %s", cfg.DBName)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errs.Wrapf(err, "ping database %s", cfg.DBName)
	}
	return pool, nil
}
