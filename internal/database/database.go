package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and runs all pending migrations.
// With an empty databaseURL the store is a local SQLite file; otherwise the
// remote libsql database behind databaseURL is used.
func InitDB(dbPath string, databaseURL string, migrationsDir string) (*sql.DB, func(), error) {
	dsn := "file:" + dbPath
	if databaseURL != "" {
		dsn = databaseURL
		log.Info("Initializing remote database", "url", databaseURL)
	} else {
		log.Info("Initializing local SQLite database", "path", dbPath)
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Foreign key support is not enabled by default in SQLite.
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return db, teardown, nil
}

func runMigrations(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	goose.SetLogger(goose.NopLogger())
	if err := goose.Up(db, migrationsDir); err != nil {
		return err
	}
	log.Info("Database migrations applied", "dir", migrationsDir)
	return nil
}
