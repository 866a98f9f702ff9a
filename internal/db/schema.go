package db

import (
	"context"
	"database/sql"
	"fmt"
)

const sqliteUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          VARCHAR(80)  NOT NULL UNIQUE,
	email         VARCHAR(120) NOT NULL UNIQUE,
	password_hash VARCHAR(120) NOT NULL
)`

const postgresUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	name          VARCHAR(80)  NOT NULL UNIQUE,
	email         VARCHAR(120) NOT NULL UNIQUE,
	password_hash VARCHAR(120) NOT NULL
)`

// EnsureSchema creates the users table when it does not exist yet.
func EnsureSchema(ctx context.Context, database *sql.DB, driver string) error {
	stmt := sqliteUsersTable
	if driver == "postgres" {
		stmt = postgresUsersTable
	}
	if _, err := database.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}
