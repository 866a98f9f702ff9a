package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/crucial707/user-api/internal/config"
)

// Open connects to the configured store, verifies it with a ping and makes
// sure the users table exists.
func Open(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)

	switch cfg.DBDriver {
	case "postgres":
		database, err = sql.Open("postgres", PostgresDSN(cfg))
		if err != nil {
			return nil, err
		}
		database.SetMaxOpenConns(cfg.DBMaxOpenConns)
		database.SetMaxIdleConns(cfg.DBMaxIdleConns)
	case "sqlite", "":
		database, err = sql.Open("sqlite", SQLiteDSN(cfg.DBPath))
		if err != nil {
			return nil, err
		}
		// SQLite serialises writers; one connection avoids SQLITE_BUSY under load.
		database.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.PingContext(pingCtx); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if err := EnsureSchema(ctx, database, cfg.DBDriver); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// PostgresDSN builds a lib/pq connection string from cfg.
func PostgresDSN(cfg config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
	)
}

// SQLiteDSN turns a file path (or ":memory:") into a modernc.org/sqlite DSN.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}
