package repository

import (
	"time"

	"pokedex/internal/database"
)

// BadgeRepository persists the set of badges each trainer has earned.
// The (user_key, badge_id) primary key keeps the set deduplicated at the
// storage level no matter how often a threshold is re-crossed.
type BadgeRepository struct {
	db *database.DB
}

// NewBadgeRepository creates a new badge repository
func NewBadgeRepository(db *database.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// EarnedIDs returns the ids of all badges the trainer has been awarded,
// oldest first
func (r *BadgeRepository) EarnedIDs(userKey string) ([]string, error) {
	query := `
		SELECT badge_id
		FROM awarded_badges
		WHERE user_key = ?
		ORDER BY awarded_at ASC
	`

	rows, err := r.db.Query(query, userKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Award records newly earned badges in one transaction
func (r *BadgeRepository) Award(userKey string, badgeIDs []string) error {
	if len(badgeIDs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	now := time.Now()
	for _, id := range badgeIDs {
		_, err := tx.Exec(
			"INSERT INTO awarded_badges (user_key, badge_id, awarded_at) VALUES (?, ?, ?)",
			userKey, id, now,
		)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// AllAwards returns every awarded badge id grouped by user key
func (r *BadgeRepository) AllAwards() (map[string][]string, error) {
	rows, err := r.db.Query("SELECT user_key, badge_id FROM awarded_badges ORDER BY awarded_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	awards := make(map[string][]string)
	for rows.Next() {
		var key, id string
		if err := rows.Scan(&key, &id); err != nil {
			return nil, err
		}
		awards[key] = append(awards[key], id)
	}

	return awards, rows.Err()
}
