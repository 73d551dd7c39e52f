package achievements

import (
	"fmt"
	"log"

	"pokedex/internal/models"
)

// StatsStore persists activity counters. Searches and catches are bumped
// with server-side increments so concurrent reports for the same trainer
// don't lose updates.
type StatsStore interface {
	Get(userKey string) (models.TrainerStats, error)
	IncrementSearches(userKey string) (models.TrainerStats, error)
	IncrementCatches(userKey string) (models.TrainerStats, error)
	SetFavorites(userKey string, total int) (models.TrainerStats, error)
}

// BadgeStore persists the monotone set of earned badge ids per trainer
type BadgeStore interface {
	EarnedIDs(userKey string) ([]string, error)
	Award(userKey string, badgeIDs []string) error
}

// Engine maintains activity counters and awards each badge exactly once
// when its threshold is first crossed. Awarding supports the primary user
// action, so every method degrades to zero badges on persistence trouble;
// the returned error lets callers and tests tell "nothing new earned" from
// "evaluation failed", but is never a reason to fail a search or a catch.
type Engine struct {
	catalog *Catalog
	stats   StatsStore
	badges  BadgeStore
}

// NewEngine creates an achievement engine over the given stores
func NewEngine(catalog *Catalog, stats StatsStore, badges BadgeStore) *Engine {
	return &Engine{catalog: catalog, stats: stats, badges: badges}
}

// Catalog exposes the badge catalog for read-only lookups
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// ReportSearch records one search and returns badges newly earned by it.
// An empty user key skips the report entirely.
func (e *Engine) ReportSearch(userKey string) ([]models.Badge, error) {
	if userKey == "" {
		return nil, nil
	}

	stats, err := e.stats.IncrementSearches(userKey)
	if err != nil {
		log.Printf("achievements: failed to record search for %s: %v", userKey, err)
		return nil, fmt.Errorf("failed to record search: %w", err)
	}

	return e.EvaluateBadges(userKey, stats)
}

// ReportCatch records one catch and returns badges newly earned by it
func (e *Engine) ReportCatch(userKey string) ([]models.Badge, error) {
	if userKey == "" {
		return nil, nil
	}

	stats, err := e.stats.IncrementCatches(userKey)
	if err != nil {
		log.Printf("achievements: failed to record catch for %s: %v", userKey, err)
		return nil, fmt.Errorf("failed to record catch: %w", err)
	}

	return e.EvaluateBadges(userKey, stats)
}

// ReportFavoritesTotal stores the caller-computed absolute favorites total
// and returns badges newly earned by it. This is a set, not an increment:
// un-favoriting lowers the counter, but earned badges never revert.
func (e *Engine) ReportFavoritesTotal(userKey string, total int) ([]models.Badge, error) {
	if userKey == "" {
		return nil, nil
	}
	if total < 0 {
		total = 0
	}

	stats, err := e.stats.SetFavorites(userKey, total)
	if err != nil {
		log.Printf("achievements: failed to record favorites for %s: %v", userKey, err)
		return nil, fmt.Errorf("failed to record favorites: %w", err)
	}

	return e.EvaluateBadges(userKey, stats)
}

// EvaluateBadges awards every badge whose requirement the counters now meet
// and which the trainer does not already hold. All new awards persist in one
// update. Only the badges earned by this call are returned, in catalog
// declaration order.
func (e *Engine) EvaluateBadges(userKey string, stats models.TrainerStats) ([]models.Badge, error) {
	earnedIDs, err := e.badges.EarnedIDs(userKey)
	if err != nil {
		log.Printf("achievements: failed to load earned badges for %s: %v", userKey, err)
		return nil, fmt.Errorf("failed to load earned badges: %w", err)
	}

	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	var newBadges []models.Badge
	for _, badge := range e.catalog.badges {
		if earned[badge.ID] {
			continue
		}
		if stats.Value(badge.Requirement) >= badge.Threshold {
			newBadges = append(newBadges, badge)
		}
	}

	if len(newBadges) == 0 {
		return nil, nil
	}

	ids := make([]string, len(newBadges))
	for i, b := range newBadges {
		ids[i] = b.ID
	}
	if err := e.badges.Award(userKey, ids); err != nil {
		log.Printf("achievements: failed to persist awards for %s: %v", userKey, err)
		return nil, fmt.Errorf("failed to persist awards: %w", err)
	}

	return newBadges, nil
}

// Stats returns the current counters for a trainer
func (e *Engine) Stats(userKey string) (models.TrainerStats, error) {
	if userKey == "" {
		return models.TrainerStats{}, nil
	}
	return e.stats.Get(userKey)
}

// EarnedIDs returns the ids of every badge the trainer holds
func (e *Engine) EarnedIDs(userKey string) ([]string, error) {
	if userKey == "" {
		return nil, nil
	}
	return e.badges.EarnedIDs(userKey)
}

// Progress derives the read-only progress view for one badge
func Progress(badge models.Badge, stats models.TrainerStats) models.BadgeProgress {
	current := stats.Value(badge.Requirement)
	percentage := float64(current) / float64(badge.Threshold) * 100
	if percentage > 100 {
		percentage = 100
	}

	return models.BadgeProgress{
		Current:    current,
		Required:   badge.Threshold,
		Percentage: percentage,
		Earned:     current >= badge.Threshold,
	}
}
