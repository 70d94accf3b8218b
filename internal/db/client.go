package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"usermgmt/internal/config"
	"usermgmt/internal/logging"
)

type Client struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewClient opens a pgx connection pool and verifies connectivity.
func NewClient(ctx context.Context, cfg config.PostgresConfig, logger logging.Logger) (*Client, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.EffectiveDSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return &Client{
		pool:   pool,
		logger: logger.With("component", "db_client"),
	}, nil
}

// Pool returns the underlying pgx pool.
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

func (c *Client) Close() error {
	c.pool.Close()
	return nil
}

// Ping is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}
