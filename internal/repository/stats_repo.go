package repository

import (
	"database/sql"

	"pokedex/internal/database"
	"pokedex/internal/models"
)

// StatsRepository persists per-trainer activity counters.
//
// Counter updates use a single dialect-specific upsert so the increment
// happens on the database server. Two devices reporting activity for the
// same trainer at once therefore both land, instead of the second
// read-modify-write clobbering the first.
type StatsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *database.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get retrieves the counters for a trainer; zero counters if none recorded yet
func (r *StatsRepository) Get(userKey string) (models.TrainerStats, error) {
	query := `
		SELECT searches, catches, favorites
		FROM trainer_stats
		WHERE user_key = ?
	`

	var stats models.TrainerStats
	err := r.db.QueryRow(query, userKey).Scan(&stats.Searches, &stats.Catches, &stats.Favorites)
	if err == sql.ErrNoRows {
		return models.TrainerStats{}, nil
	}
	if err != nil {
		return models.TrainerStats{}, err
	}

	return stats, nil
}

// IncrementSearches bumps the search counter and returns the updated stats
func (r *StatsRepository) IncrementSearches(userKey string) (models.TrainerStats, error) {
	return r.increment(userKey, "searches")
}

// IncrementCatches bumps the catch counter and returns the updated stats
func (r *StatsRepository) IncrementCatches(userKey string) (models.TrainerStats, error) {
	return r.increment(userKey, "catches")
}

func (r *StatsRepository) increment(userKey, column string) (models.TrainerStats, error) {
	// Insert path seeds the incremented column with 1
	initial := models.TrainerStats{}
	switch column {
	case "searches":
		initial.Searches = 1
	case "catches":
		initial.Catches = 1
	}

	query := r.db.Dialect.UpsertStatIncrement(column)
	_, err := r.db.Exec(query, userKey, initial.Searches, initial.Catches, initial.Favorites)
	if err != nil {
		return models.TrainerStats{}, err
	}

	return r.Get(userKey)
}

// SetFavorites stores the absolute favorites total and returns the updated
// stats. The caller supplies the post-toggle total; this is a set, not an
// increment.
func (r *StatsRepository) SetFavorites(userKey string, total int) (models.TrainerStats, error) {
	query := r.db.Dialect.UpsertStatSet("favorites")
	_, err := r.db.Exec(query, userKey, 0, 0, total, total)
	if err != nil {
		return models.TrainerStats{}, err
	}

	return r.Get(userKey)
}

// All returns the counters for every trainer, keyed by user key
func (r *StatsRepository) All() (map[string]models.TrainerStats, error) {
	rows, err := r.db.Query("SELECT user_key, searches, catches, favorites FROM trainer_stats")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := make(map[string]models.TrainerStats)
	for rows.Next() {
		var key string
		var stats models.TrainerStats
		if err := rows.Scan(&key, &stats.Searches, &stats.Catches, &stats.Favorites); err != nil {
			return nil, err
		}
		all[key] = stats
	}

	return all, rows.Err()
}
