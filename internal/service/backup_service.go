package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"pokedex/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Users      []UserBackup     `json:"users"`
	Sessions   []SessionBackup  `json:"sessions"`
	Stats      []StatsBackup    `json:"stats"`
	Badges     []BadgeBackup    `json:"badges"`
	Documents  []DocumentBackup `json:"documents"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionBackup represents an active session for backup
type SessionBackup struct {
	TokenID   string    `json:"token_id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsBackup represents a trainer's counters for backup
type StatsBackup struct {
	UserKey   string `json:"user_key"`
	Searches  int    `json:"searches"`
	Catches   int    `json:"catches"`
	Favorites int    `json:"favorites"`
}

// BadgeBackup represents one awarded badge for backup
type BadgeBackup struct {
	UserKey   string    `json:"user_key"`
	BadgeID   string    `json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`
}

// DocumentBackup represents one document row for backup
type DocumentBackup struct {
	Collection string          `json:"collection"`
	DocKey     string          `json:"doc_key"`
	Body       json.RawMessage `json:"body"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportSessions(backup); err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	if err := s.exportStats(backup); err != nil {
		return fmt.Errorf("failed to export stats: %w", err)
	}
	if err := s.exportBadges(backup); err != nil {
		return fmt.Errorf("failed to export badges: %w", err)
	}
	if err := s.exportDocuments(backup); err != nil {
		return fmt.Errorf("failed to export documents: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d sessions, %d stats, %d badges, %d documents",
		len(backup.Users), len(backup.Sessions), len(backup.Stats),
		len(backup.Badges), len(backup.Documents))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importSessions(backup.Sessions); err != nil {
		return fmt.Errorf("failed to import sessions: %w", err)
	}
	if err := s.importStats(backup.Stats); err != nil {
		return fmt.Errorf("failed to import stats: %w", err)
	}
	if err := s.importBadges(backup.Badges); err != nil {
		return fmt.Errorf("failed to import badges: %w", err)
	}
	if err := s.importDocuments(backup.Documents); err != nil {
		return fmt.Errorf("failed to import documents: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportSessions(backup *BackupData) error {
	query := "SELECT token_id, user_id, expires_at, created_at FROM sessions ORDER BY created_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sess SessionBackup
		if err := rows.Scan(&sess.TokenID, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
			return err
		}
		backup.Sessions = append(backup.Sessions, sess)
	}
	return rows.Err()
}

func (s *BackupService) exportStats(backup *BackupData) error {
	query := "SELECT user_key, searches, catches, favorites FROM trainer_stats ORDER BY user_key"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var st StatsBackup
		if err := rows.Scan(&st.UserKey, &st.Searches, &st.Catches, &st.Favorites); err != nil {
			return err
		}
		backup.Stats = append(backup.Stats, st)
	}
	return rows.Err()
}

func (s *BackupService) exportBadges(backup *BackupData) error {
	query := "SELECT user_key, badge_id, awarded_at FROM awarded_badges ORDER BY user_key, awarded_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var b BadgeBackup
		if err := rows.Scan(&b.UserKey, &b.BadgeID, &b.AwardedAt); err != nil {
			return err
		}
		backup.Badges = append(backup.Badges, b)
	}
	return rows.Err()
}

func (s *BackupService) exportDocuments(backup *BackupData) error {
	query := "SELECT collection, doc_key, body FROM documents ORDER BY collection, doc_key"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d DocumentBackup
		var body []byte
		if err := rows.Scan(&d.Collection, &d.DocKey, &body); err != nil {
			return err
		}
		d.Body = json.RawMessage(body)
		backup.Documents = append(backup.Documents, d)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, u.CreatedAt, u.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importSessions(sessions []SessionBackup) error {
	log.Printf("Importing %d sessions...", len(sessions))
	for _, sess := range sessions {
		query := "INSERT INTO sessions (token_id, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)"
		if _, err := s.db.Exec(query, sess.TokenID, sess.UserID, sess.ExpiresAt, sess.CreatedAt); err != nil {
			return fmt.Errorf("failed to import session %s: %w", sess.TokenID, err)
		}
	}
	return nil
}

func (s *BackupService) importStats(stats []StatsBackup) error {
	log.Printf("Importing %d stats rows...", len(stats))
	for _, st := range stats {
		query := "INSERT INTO trainer_stats (user_key, searches, catches, favorites) VALUES (?, ?, ?, ?)"
		if _, err := s.db.Exec(query, st.UserKey, st.Searches, st.Catches, st.Favorites); err != nil {
			return fmt.Errorf("failed to import stats for %s: %w", st.UserKey, err)
		}
	}
	return nil
}

func (s *BackupService) importBadges(badges []BadgeBackup) error {
	log.Printf("Importing %d badge awards...", len(badges))
	for _, b := range badges {
		query := "INSERT INTO awarded_badges (user_key, badge_id, awarded_at) VALUES (?, ?, ?)"
		if _, err := s.db.Exec(query, b.UserKey, b.BadgeID, b.AwardedAt); err != nil {
			return fmt.Errorf("failed to import badge %s for %s: %w", b.BadgeID, b.UserKey, err)
		}
	}
	return nil
}

func (s *BackupService) importDocuments(documents []DocumentBackup) error {
	log.Printf("Importing %d documents...", len(documents))
	for _, d := range documents {
		query := "INSERT INTO documents (collection, doc_key, body) VALUES (?, ?, ?)"
		if _, err := s.db.Exec(query, d.Collection, d.DocKey, []byte(d.Body)); err != nil {
			return fmt.Errorf("failed to import document %s/%s: %w", d.Collection, d.DocKey, err)
		}
	}
	return nil
}
