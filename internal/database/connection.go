package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Connect opens the database of the given type and makes sure the schema exists.
// For sqlite, dsn is a file path or ":memory:".
func Connect(dbType, dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch dbType {
	case TypeSQLite, "":
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err = sqlx.Connect("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		db.SetMaxOpenConns(1) // SQLite doesn't support multiple writers
		db.SetMaxIdleConns(1)
	case TypePostgres:
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []struct {
	name string
	stmt string
}{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			telegram_chat_id BIGINT,
			reminder_hour INTEGER NOT NULL DEFAULT 9,
			total_xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			total_points INTEGER NOT NULL DEFAULT 0,
			streak_count INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			facts_read INTEGER NOT NULL DEFAULT 0,
			facts_saved INTEGER NOT NULL DEFAULT 0,
			wiki_clicks INTEGER NOT NULL DEFAULT 0,
			badges TEXT NOT NULL DEFAULT '[]',
			last_active TIMESTAMPTZ,
			last_login TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL
		)`},
	{"facts", `
		CREATE TABLE IF NOT EXISTS facts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL UNIQUE,
			text TEXT NOT NULL,
			text_hash TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '[]',
			author_id TEXT REFERENCES users(id) ON DELETE SET NULL,
			is_published BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL
		)`},
	{"saved_facts", `
		CREATE TABLE IF NOT EXISTS saved_facts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			fact_id TEXT NOT NULL REFERENCES facts(id) ON DELETE CASCADE,
			interval_days INTEGER NOT NULL DEFAULT 1,
			ease_factor DOUBLE PRECISION NOT NULL DEFAULT 2.5,
			next_review_date TIMESTAMPTZ NOT NULL,
			times_reviewed INTEGER NOT NULL DEFAULT 0,
			times_remembered INTEGER NOT NULL DEFAULT 0,
			times_forgot INTEGER NOT NULL DEFAULT 0,
			last_reviewed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			UNIQUE(user_id, fact_id)
		)`},
	{"user_activities", `
		CREATE TABLE IF NOT EXISTS user_activities (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			activity_type TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			xp INTEGER NOT NULL DEFAULT 0,
			reference_id TEXT,
			metadata TEXT NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL
		)`},
	{"users telegram chat index", `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_telegram_chat ON users(telegram_chat_id)`},
	{"facts category index", `CREATE INDEX IF NOT EXISTS idx_facts_category ON facts(category)`},
	{"facts created_at index", `CREATE INDEX IF NOT EXISTS idx_facts_created_at ON facts(created_at)`},
	{"saved_facts due index", `CREATE INDEX IF NOT EXISTS idx_saved_facts_due ON saved_facts(user_id, next_review_date)`},
	{"user_activities lookup index", `CREATE INDEX IF NOT EXISTS idx_user_activities_lookup ON user_activities(user_id, activity_type, reference_id, created_at)`},
}

// InitSchema creates necessary tables if they don't exist
func InitSchema(db *sqlx.DB) error {
	for _, s := range schema {
		stmt := s.stmt
		if db.DriverName() == "sqlite3" {
			// go-sqlite3 only decodes TIMESTAMP, DATETIME and DATE columns into time.Time
			stmt = strings.ReplaceAll(stmt, "TIMESTAMPTZ", "TIMESTAMP")
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create %s: %w", s.name, err)
		}
	}
	return nil
}
