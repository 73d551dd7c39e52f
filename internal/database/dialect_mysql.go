package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) SupportsLastInsertId() bool {
	return true
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)
	return nil
}

func (d *MySQLDialect) MigrationsSubdir() string {
	return "mysql"
}

func (d *MySQLDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			filename VARCHAR(255) UNIQUE NOT NULL,
			executed_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)
		);
	`
}

func (d *MySQLDialect) UpsertStatIncrement(column string) string {
	return fmt.Sprintf(`
		INSERT INTO trainer_stats (user_key, searches, catches, favorites)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			%s = %s + 1,
			updated_at = CURRENT_TIMESTAMP
	`, column, column)
}

func (d *MySQLDialect) UpsertStatSet(column string) string {
	return fmt.Sprintf(`
		INSERT INTO trainer_stats (user_key, searches, catches, favorites)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			%s = ?,
			updated_at = CURRENT_TIMESTAMP
	`, column)
}

func (d *MySQLDialect) UpsertDocument() string {
	return `
		INSERT INTO documents (collection, doc_key, body)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			body = VALUES(body),
			updated_at = CURRENT_TIMESTAMP
	`
}
