// Package sqlstore keeps the catalog API products table in PostgreSQL, MySQL
// or SQLite.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the database and creates the products table.
func Open(ctx context.Context, driver, dsn string, log *zap.SugaredLogger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Infow("Database connected and migrated", "driver", driver)
	return db, nil
}

// Migrate creates the products table for the connection's dialect.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema(db.DriverName()))
	return err
}

func schema(driver string) string {
	switch driver {
	case "mysql":
		return `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(64) PRIMARY KEY,
			store_id VARCHAR(64) NOT NULL DEFAULT '',
			store_name VARCHAR(255) NOT NULL DEFAULT '',
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			price DECIMAL(12,2) NOT NULL DEFAULT 0,
			image_url VARCHAR(512) NOT NULL DEFAULT '',
			category VARCHAR(64) NOT NULL DEFAULT '',
			rating DOUBLE NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0
		)`
	case "sqlite3":
		return `
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL DEFAULT '',
			store_name TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL DEFAULT '0',
			image_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			rating REAL NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0
		)`
	default:
		return `
		CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL DEFAULT '',
			store_name TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(12,2) NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_count INT NOT NULL DEFAULT 0
		)`
	}
}
