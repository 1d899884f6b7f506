package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// PoolLimits bounds the connection pool.
type PoolLimits struct {
	MaxConns int32
	MinConns int32
}

// DB wraps the pgx connection pool shared by the repositories.
type DB struct {
	Pool *pgxpool.Pool
}

// New connects a pool to dbURL and pings it before returning.
func New(ctx context.Context, dbURL string, limits PoolLimits) (*DB, error) {
	poolConfig, err := poolConfig(dbURL, limits)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func poolConfig(dbURL string, limits PoolLimits) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	// zero keeps the pgxpool default
	if limits.MaxConns > 0 {
		cfg.MaxConns = limits.MaxConns
	}
	if limits.MinConns > 0 {
		cfg.MinConns = limits.MinConns
	}
	return cfg, nil
}

func (db *DB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
