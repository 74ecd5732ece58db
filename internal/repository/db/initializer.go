package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// OpenConfig carries the connection settings for Open / Paramètres de connexion pour Open
type OpenConfig struct {
	Dialect      Dialect
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to the configured backend, applies the dialect session
// tuning and verifies the connection with a ping.
func Open(cfg OpenConfig) (*sql.DB, error) {
	var driverName string
	switch cfg.Dialect {
	case DialectMySQL:
		driverName = "mysql"
	case DialectPostgres:
		driverName = "postgres"
	case DialectSQLite:
		driverName = "sqlite"
	default:
		return nil, fmt.Errorf("unsupported database dialect: %s", cfg.Dialect)
	}

	conn, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", cfg.Dialect, err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		// Shared hosting caps concurrent MySQL connections per account.
		maxOpen = 10
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = 5
	}
	conn.SetMaxOpenConns(maxOpen)
	conn.SetMaxIdleConns(maxIdle)

	tuneSession(conn, cfg.Dialect)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Dialect, err)
	}

	slog.Info("database connected", "dialect", cfg.Dialect)
	return conn, nil
}

// tuneSession applies per-dialect session settings. Failures are logged and
// tolerated; a partially tuned session still serves requests.
func tuneSession(conn *sql.DB, dialect Dialect) {
	switch dialect {
	case DialectMySQL:
		// utf8mb4 keeps accented product and person names intact.
		if _, err := conn.Exec("SET NAMES utf8mb4 COLLATE utf8mb4_unicode_ci"); err != nil {
			slog.Warn("mysql session setup failed", "error", err)
		}
	case DialectPostgres:
		if _, err := conn.Exec("SET TIME ZONE 'UTC'"); err != nil {
			slog.Warn("postgres session setup failed", "error", err)
		}
	case DialectSQLite:
		// Foreign keys are off by default in SQLite; the produit and profile
		// tables depend on them.
		for _, pragma := range []string{
			"PRAGMA foreign_keys=ON",
			"PRAGMA journal_mode=WAL",
			"PRAGMA synchronous=NORMAL",
			"PRAGMA busy_timeout=5000",
		} {
			if _, err := conn.Exec(pragma); err != nil {
				slog.Warn("sqlite pragma failed", "pragma", pragma, "error", err)
			}
		}
	}
}
