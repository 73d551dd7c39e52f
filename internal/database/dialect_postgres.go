package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	// PostgreSQL uses $1, $2, etc. instead of ?
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) SupportsLastInsertId() bool {
	// PostgreSQL needs a RETURNING clause instead
	return false
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT UNIQUE NOT NULL,
			executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *PostgresDialect) UpsertStatIncrement(column string) string {
	return fmt.Sprintf(`
		INSERT INTO trainer_stats (user_key, searches, catches, favorites)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_key) DO UPDATE SET
			%s = trainer_stats.%s + 1,
			updated_at = CURRENT_TIMESTAMP
	`, column, column)
}

func (d *PostgresDialect) UpsertStatSet(column string) string {
	return fmt.Sprintf(`
		INSERT INTO trainer_stats (user_key, searches, catches, favorites)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_key) DO UPDATE SET
			%s = ?,
			updated_at = CURRENT_TIMESTAMP
	`, column)
}

func (d *PostgresDialect) UpsertDocument() string {
	return `
		INSERT INTO documents (collection, doc_key, body)
		VALUES (?, ?, ?)
		ON CONFLICT (collection, doc_key) DO UPDATE SET
			body = excluded.body,
			updated_at = CURRENT_TIMESTAMP
	`
}
