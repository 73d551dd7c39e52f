package models

// Counter names an activity counter a badge requirement reads
type Counter string

const (
	CounterSearches  Counter = "searches"
	CounterCatches   Counter = "catches"
	CounterFavorites Counter = "favorites"
)

// Badge is an immutable catalog entry describing a one-shot award
type Badge struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Emoji       string  `json:"emoji"`
	Description string  `json:"description"`
	Requirement Counter `json:"requirement"`
	Threshold   int     `json:"threshold"`
}

// TrainerStats holds the per-trainer activity counters. Searches and
// catches only ever grow; favorites is set to the current absolute total
// on each report.
type TrainerStats struct {
	Searches  int `json:"searches"`
	Catches   int `json:"catches"`
	Favorites int `json:"favorites"`
}

// Value returns the counter value a badge requirement reads
func (s TrainerStats) Value(c Counter) int {
	switch c {
	case CounterSearches:
		return s.Searches
	case CounterCatches:
		return s.Catches
	case CounterFavorites:
		return s.Favorites
	}
	return 0
}

// BadgeProgress is a read-only view for progress bars
type BadgeProgress struct {
	Current    int     `json:"current"`
	Required   int     `json:"required"`
	Percentage float64 `json:"percentage"`
	Earned     bool    `json:"earned"`
}

// BadgeWithStatus pairs a badge with the viewing trainer's progress
type BadgeWithStatus struct {
	Badge
	Progress BadgeProgress `json:"progress"`
}
