package achievements

import (
	"errors"
	"testing"

	"pokedex/internal/models"
)

// memStats is an in-memory StatsStore for tests
type memStats struct {
	stats map[string]models.TrainerStats
	fail  bool
}

func newMemStats() *memStats {
	return &memStats{stats: make(map[string]models.TrainerStats)}
}

var errDown = errors.New("store down")

func (m *memStats) Get(userKey string) (models.TrainerStats, error) {
	if m.fail {
		return models.TrainerStats{}, errDown
	}
	return m.stats[userKey], nil
}

func (m *memStats) IncrementSearches(userKey string) (models.TrainerStats, error) {
	if m.fail {
		return models.TrainerStats{}, errDown
	}
	s := m.stats[userKey]
	s.Searches++
	m.stats[userKey] = s
	return s, nil
}

func (m *memStats) IncrementCatches(userKey string) (models.TrainerStats, error) {
	if m.fail {
		return models.TrainerStats{}, errDown
	}
	s := m.stats[userKey]
	s.Catches++
	m.stats[userKey] = s
	return s, nil
}

func (m *memStats) SetFavorites(userKey string, total int) (models.TrainerStats, error) {
	if m.fail {
		return models.TrainerStats{}, errDown
	}
	s := m.stats[userKey]
	s.Favorites = total
	m.stats[userKey] = s
	return s, nil
}

// memBadges is an in-memory BadgeStore for tests
type memBadges struct {
	earned map[string][]string
	fail   bool
}

func newMemBadges() *memBadges {
	return &memBadges{earned: make(map[string][]string)}
}

func (m *memBadges) EarnedIDs(userKey string) ([]string, error) {
	if m.fail {
		return nil, errDown
	}
	return m.earned[userKey], nil
}

func (m *memBadges) Award(userKey string, badgeIDs []string) error {
	if m.fail {
		return errDown
	}
	m.earned[userKey] = append(m.earned[userKey], badgeIDs...)
	return nil
}

func newTestEngine() (*Engine, *memStats, *memBadges) {
	stats := newMemStats()
	badges := newMemBadges()
	return NewEngine(DefaultCatalog(), stats, badges), stats, badges
}

func badgeIDs(badges []models.Badge) []string {
	ids := make([]string, len(badges))
	for i, b := range badges {
		ids[i] = b.ID
	}
	return ids
}

func TestThresholdCrossingIsExact(t *testing.T) {
	engine, stats, _ := newTestEngine()
	stats.stats["ash"] = models.TrainerStats{Searches: 8}

	// 9th search: below the boulder threshold of 10
	earned, err := engine.ReportSearch("ash")
	if err != nil {
		t.Fatalf("ReportSearch() error: %v", err)
	}
	if len(earned) != 0 {
		t.Errorf("no badge expected at 9 searches, got %v", badgeIDs(earned))
	}

	// 10th search: exactly at the threshold
	earned, err = engine.ReportSearch("ash")
	if err != nil {
		t.Fatalf("ReportSearch() error: %v", err)
	}
	if len(earned) != 1 || earned[0].ID != "boulder" {
		t.Errorf("expected boulder badge at 10 searches, got %v", badgeIDs(earned))
	}

	// 11th search: already awarded
	earned, _ = engine.ReportSearch("ash")
	if len(earned) != 0 {
		t.Errorf("badge must not be re-awarded, got %v", badgeIDs(earned))
	}
}

func TestCatchScenario(t *testing.T) {
	engine, stats, _ := newTestEngine()
	stats.stats["misty"] = models.TrainerStats{Catches: 4}

	earned, err := engine.ReportCatch("misty")
	if err != nil {
		t.Fatalf("ReportCatch() error: %v", err)
	}
	if len(earned) != 1 || earned[0].ID != "water" {
		t.Fatalf("expected water badge at 5 catches, got %v", badgeIDs(earned))
	}
	if stats.stats["misty"].Catches != 5 {
		t.Errorf("catches = %d, want 5", stats.stats["misty"].Catches)
	}

	earned, err = engine.ReportCatch("misty")
	if err != nil {
		t.Fatalf("ReportCatch() error: %v", err)
	}
	if len(earned) != 0 {
		t.Errorf("second report must return empty newly-earned list, got %v", badgeIDs(earned))
	}
}

func TestEvaluateBadgesIdempotent(t *testing.T) {
	engine, _, badges := newTestEngine()
	counts := models.TrainerStats{Searches: 100, Catches: 100, Favorites: 100}

	first, err := engine.EvaluateBadges("ash", counts)
	if err != nil {
		t.Fatalf("EvaluateBadges() error: %v", err)
	}
	if len(first) != 8 {
		t.Fatalf("expected all 8 badges earned, got %v", badgeIDs(first))
	}

	// Declaration order, not threshold order
	want := []string{"boulder", "water", "thunder", "rainbow", "soul", "marsh", "volcano", "earth"}
	for i, id := range badgeIDs(first) {
		if id != want[i] {
			t.Fatalf("award order = %v, want %v", badgeIDs(first), want)
		}
	}

	second, err := engine.EvaluateBadges("ash", counts)
	if err != nil {
		t.Fatalf("EvaluateBadges() error: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("repeated evaluation must earn nothing, got %v", badgeIDs(second))
	}
	if len(badges.earned["ash"]) != 8 {
		t.Errorf("awarded set grew to %d, want 8", len(badges.earned["ash"]))
	}
}

func TestFavoritesIsSetNotIncrement(t *testing.T) {
	engine, stats, _ := newTestEngine()

	earned, err := engine.ReportFavoritesTotal("brock", 3)
	if err != nil {
		t.Fatalf("ReportFavoritesTotal() error: %v", err)
	}
	if len(earned) != 1 || earned[0].ID != "thunder" {
		t.Fatalf("expected thunder badge at 3 favorites, got %v", badgeIDs(earned))
	}

	// Dropping the total must not revert the badge
	earned, err = engine.ReportFavoritesTotal("brock", 1)
	if err != nil {
		t.Fatalf("ReportFavoritesTotal() error: %v", err)
	}
	if len(earned) != 0 {
		t.Errorf("lowered total should earn nothing, got %v", badgeIDs(earned))
	}
	if stats.stats["brock"].Favorites != 1 {
		t.Errorf("favorites = %d, want absolute value 1", stats.stats["brock"].Favorites)
	}

	ids, _ := engine.EarnedIDs("brock")
	if len(ids) != 1 || ids[0] != "thunder" {
		t.Errorf("earned set should still hold thunder, got %v", ids)
	}
}

func TestMissingUserKeySkips(t *testing.T) {
	engine, stats, _ := newTestEngine()

	earned, err := engine.ReportSearch("")
	if err != nil || earned != nil {
		t.Errorf("missing user key should be a silent skip, got (%v, %v)", earned, err)
	}
	if len(stats.stats) != 0 {
		t.Error("nothing should have been recorded for a missing user key")
	}
}

func TestPersistenceFailureDegrades(t *testing.T) {
	engine, stats, _ := newTestEngine()
	stats.fail = true

	earned, err := engine.ReportSearch("ash")
	if len(earned) != 0 {
		t.Errorf("failed evaluation must yield zero badges, got %v", badgeIDs(earned))
	}
	if err == nil {
		t.Error("failure must be observable through the error return")
	}
}

func TestAwardFailureDegrades(t *testing.T) {
	engine, _, badges := newTestEngine()
	badges.fail = true

	earned, err := engine.EvaluateBadges("ash", models.TrainerStats{Searches: 10})
	if len(earned) != 0 {
		t.Errorf("failed award must yield zero badges, got %v", badgeIDs(earned))
	}
	if err == nil {
		t.Error("failed award must be observable through the error return")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name     string
		badge    models.Badge
		stats    models.TrainerStats
		expected models.BadgeProgress
	}{
		{
			name:     "partway there",
			badge:    models.Badge{Requirement: models.CounterSearches, Threshold: 25},
			stats:    models.TrainerStats{Searches: 10},
			expected: models.BadgeProgress{Current: 10, Required: 25, Percentage: 40, Earned: false},
		},
		{
			name:     "exactly at threshold",
			badge:    models.Badge{Requirement: models.CounterCatches, Threshold: 5},
			stats:    models.TrainerStats{Catches: 5},
			expected: models.BadgeProgress{Current: 5, Required: 5, Percentage: 100, Earned: true},
		},
		{
			name:     "percentage capped at 100",
			badge:    models.Badge{Requirement: models.CounterFavorites, Threshold: 3},
			stats:    models.TrainerStats{Favorites: 30},
			expected: models.BadgeProgress{Current: 30, Required: 3, Percentage: 100, Earned: true},
		},
		{
			name:     "nothing yet",
			badge:    models.Badge{Requirement: models.CounterSearches, Threshold: 10},
			stats:    models.TrainerStats{},
			expected: models.BadgeProgress{Current: 0, Required: 10, Percentage: 0, Earned: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.badge, tt.stats); got != tt.expected {
				t.Errorf("Progress() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	catalog := DefaultCatalog()

	if got := catalog.All(); len(got) != 8 {
		t.Errorf("expected 8 badges, got %d", len(got))
	}

	badge, ok := catalog.ByID("volcano")
	if !ok || badge.Threshold != 50 || badge.Requirement != models.CounterSearches {
		t.Errorf("ByID(volcano) = %+v, %v", badge, ok)
	}

	if _, ok := catalog.ByID("unknown"); ok {
		t.Error("unknown id should not resolve")
	}
}
