package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"careerarchitect/internal/shared/config"
	"careerarchitect/internal/shared/telemetry"
)

// ErrNoDatabaseURL is returned by Open when no connection string is configured.
var ErrNoDatabaseURL = errors.New("db: database url is empty")

// Pool sizes the *sql.DB connection pool for one kind of process.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var sqlOpen = sql.Open

// ServerPool suits the long-running API process.
func ServerPool() Pool {
	return Pool{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 2 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// MigratePool suits the one-shot migrate CLI, which holds a single connection.
func MigratePool() Pool {
	p := ServerPool()
	p.MaxOpenConns, p.MaxIdleConns = 1, 1
	return p
}

// With applies every non-zero setting from o on top of p.
func (p Pool) With(o config.DBPool) Pool {
	if o.MaxOpenConns > 0 {
		p.MaxOpenConns = o.MaxOpenConns
	}
	if o.MaxIdleConns > 0 {
		p.MaxIdleConns = o.MaxIdleConns
	}
	if o.ConnMaxLifetime > 0 {
		p.ConnMaxLifetime = o.ConnMaxLifetime
	}
	if o.ConnMaxIdleTime > 0 {
		p.ConnMaxIdleTime = o.ConnMaxIdleTime
	}
	if o.PingTimeout > 0 {
		p.PingTimeout = o.PingTimeout
	}
	return p
}

// Open connects with the pgx driver, sizes the pool and pings before returning.
// The caller owns the returned handle.
func Open(ctx context.Context, url string, pool Pool) (*sql.DB, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNoDatabaseURL
	}

	sqlDB, err := sqlOpen("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool.apply(sqlDB)

	timeout := pool.PingTimeout
	if timeout <= 0 {
		timeout = ServerPool().PingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	stats := sqlDB.Stats()
	telemetry.Info("db_connected", map[string]any{
		"max_open": stats.MaxOpenConnections,
		"open":     stats.OpenConnections,
		"idle":     stats.Idle,
	})
	return sqlDB, nil
}

func (p Pool) apply(sqlDB *sql.DB) {
	def := ServerPool()
	if p.MaxOpenConns <= 0 {
		p.MaxOpenConns = def.MaxOpenConns
	}
	if p.MaxIdleConns <= 0 {
		p.MaxIdleConns = def.MaxIdleConns
	}
	if p.ConnMaxLifetime <= 0 {
		p.ConnMaxLifetime = def.ConnMaxLifetime
	}
	sqlDB.SetMaxOpenConns(p.MaxOpenConns)
	sqlDB.SetMaxIdleConns(p.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(p.ConnMaxLifetime)
	if p.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(p.ConnMaxIdleTime)
	}
}
