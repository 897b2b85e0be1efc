package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uprala/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema holds every uprala table. Connections default their search_path to
// it unless the URL sets one.
const Schema = "uprala"

const pingTimeout = 5 * time.Second

// PoolConfig parses the database URL and applies the pool settings from
// config. Unset settings keep the pgx defaults.
func PoolConfig(config *types.Config) (*pgxpool.Config, error) {
	if config.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	if _, ok := poolConfig.ConnConfig.RuntimeParams["search_path"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["search_path"] = Schema
	}

	if config.DBMaxConns > 0 {
		poolConfig.MaxConns = config.DBMaxConns
	}
	if config.DBMinConns > 0 && config.DBMinConns <= poolConfig.MaxConns {
		poolConfig.MinConns = config.DBMinConns
	}
	if config.DBConnLifetimeMin > 0 {
		poolConfig.MaxConnLifetime = time.Duration(config.DBConnLifetimeMin) * time.Minute
		poolConfig.MaxConnLifetimeJitter = poolConfig.MaxConnLifetime / 10
	}
	if config.DBConnIdleMin > 0 {
		poolConfig.MaxConnIdleTime = time.Duration(config.DBConnIdleMin) * time.Minute
	}

	return poolConfig, nil
}

// Connect opens the pool and fails fast when the database is unreachable.
func Connect(ctx context.Context, config *types.Config) (*pgxpool.Pool, error) {

	poolConfig, err := PoolConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return pool, nil
}
