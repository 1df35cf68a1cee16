package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-application-system/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "credit-application-system"

	fallbackMaxConns    int32 = 10
	fallbackPingTimeout       = 5 * time.Second
	idleConnLifetime          = 5 * time.Minute
	poolHealthInterval        = time.Minute
)

var errNoDatabaseURL = errors.New("database.url is not set")

type pinger interface {
	Ping(ctx context.Context) error
}

// NewConnectionPool opens a pgx pool for cfg and refuses to hand it out
// until the server has answered a ping.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, errNoDatabaseURL
	}

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.With(
		slog.String("host", poolConfig.ConnConfig.Host),
		slog.String("database", poolConfig.ConnConfig.Database),
	)
	log.Info("Opening PostgreSQL pool", slog.Int("max_conns", int(poolConfig.MaxConns)))

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	if err := verifyConnection(ctx, pool, pingTimeout(cfg), log); err != nil {
		pool.Close()
		return nil, err
	}

	log.Info("PostgreSQL pool ready")
	return pool, nil
}

func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database.url: %w", err)
	}

	poolConfig.MaxConns = fallbackMaxConns
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolConfig.MaxConns {
		poolConfig.MinConns = cfg.MinConns
	}
	poolConfig.MaxConnIdleTime = idleConnLifetime
	poolConfig.HealthCheckPeriod = poolHealthInterval

	// An application_name in the URL wins.
	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	return poolConfig, nil
}

func pingTimeout(cfg config.DatabaseConfig) time.Duration {
	if cfg.PingTimeout > 0 {
		return cfg.PingTimeout
	}
	return fallbackPingTimeout
}

func verifyConnection(ctx context.Context, db pinger, timeout time.Duration, logger *slog.Logger) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.Ping(pingCtx); err != nil {
		logger.Error("PostgreSQL did not answer ping", slog.Duration("timeout", timeout), slog.Any("error", err))
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}
