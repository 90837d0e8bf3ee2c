package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"libraryBackend/internal/config"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id SERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		is_borrowed BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		is_borrowed BOOLEAN NOT NULL DEFAULT FALSE
	)`,
}

// Init opens the configured database and creates the schema when it does
// not exist yet. Query placeholders throughout the project use the $N form,
// which both Postgres and SQLite understand, so the storages are driver
// agnostic.
func Init(cfg *config.Config, log *logrus.Logger) (*sql.DB, error) {
	var (
		db     *sql.DB
		schema []string
		err    error
	)

	switch cfg.Storage.Driver {
	case "postgres":
		log.Info(fmt.Sprintf("Connecting to host=%s port=%s user=%s dbname=%s",
			cfg.Storage.Host, cfg.Storage.Port, cfg.Storage.Username, cfg.Storage.Database))
		psqlconn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Storage.Host, cfg.Storage.Port, cfg.Storage.Username, cfg.Storage.Password, cfg.Storage.Database)
		db, err = sql.Open("postgres", psqlconn)
		schema = postgresSchema
	case "sqlite":
		log.Info(fmt.Sprintf("Opening sqlite database at %s", cfg.Storage.Path))
		db, err = sql.Open("sqlite", cfg.Storage.Path)
		schema = sqliteSchema
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.Storage.Driver == "sqlite" {
		// Single writer; also keeps an in-memory database on one connection.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		for _, pragma := range []string{
			"PRAGMA foreign_keys = ON;",
			"PRAGMA busy_timeout = 5000;",
		} {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("set pragma: %w", err)
			}
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}

	log.Info("Connected to database")
	return db, nil
}
