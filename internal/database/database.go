// Package database opens the generated password store on PostgreSQL, MySQL or SQLite
// and carries the migration and transaction helpers shared by the repositories.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Config describes the connection pool for one of the supported drivers
// ("postgres", "mysql" or "sqlite").
// MySQL connection strings must enable parseTime so DATETIME columns scan into time.Time.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

type poolSettings struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// poolSettingsFor returns the pool limits applied to cfg.Driver. SQLite serializes
// writers, so its pool is pinned to one connection that is never recycled; closing
// it would drop a shared-cache memory database.
func poolSettingsFor(cfg Config) poolSettings {
	if cfg.Driver == "sqlite" {
		return poolSettings{maxOpen: 1, maxIdle: 1}
	}
	return poolSettings{
		maxOpen:     cfg.MaxOpenConnections,
		maxIdle:     cfg.MaxIdleConnections,
		maxLifetime: cfg.ConnMaxLifetime,
	}
}

// Connect opens the pool described by cfg and pings it.
func Connect(cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pool := poolSettingsFor(cfg)
	db.SetMaxOpenConns(pool.maxOpen)
	db.SetMaxIdleConns(pool.maxIdle)
	db.SetConnMaxLifetime(pool.maxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	return db, nil
}
