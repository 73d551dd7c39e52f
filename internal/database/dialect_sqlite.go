package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

func (d *SQLiteDialect) DSN(config DialectConfig) string {
	return config.Path
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	// SQLite uses ? placeholders, no rewrite needed
	return query
}

func (d *SQLiteDialect) SupportsLastInsertId() bool {
	return true
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return err
	}

	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) UpsertStatIncrement(column string) string {
	return fmt.Sprintf(`
		INSERT INTO trainer_stats (user_key, searches, catches, favorites)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_key) DO UPDATE SET
			%s = trainer_stats.%s + 1,
			updated_at = CURRENT_TIMESTAMP
	`, column, column)
}

func (d *SQLiteDialect) UpsertStatSet(column string) string {
	return fmt.Sprintf(`
		INSERT INTO trainer_stats (user_key, searches, catches, favorites)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_key) DO UPDATE SET
			%s = ?,
			updated_at = CURRENT_TIMESTAMP
	`, column)
}

func (d *SQLiteDialect) UpsertDocument() string {
	return `
		INSERT INTO documents (collection, doc_key, body)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, doc_key) DO UPDATE SET
			body = excluded.body,
			updated_at = CURRENT_TIMESTAMP
	`
}
