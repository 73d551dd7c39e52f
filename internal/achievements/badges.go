package achievements

import "pokedex/internal/models"

// Catalog holds the immutable badge definitions, loaded once at startup and
// shared read-only across all calls. Declaration order is the award order.
type Catalog struct {
	badges []models.Badge
	byID   map[string]models.Badge
}

// NewCatalog builds a catalog from badge definitions
func NewCatalog(badges []models.Badge) *Catalog {
	byID := make(map[string]models.Badge, len(badges))
	for _, b := range badges {
		byID[b.ID] = b
	}
	return &Catalog{badges: badges, byID: byID}
}

// DefaultCatalog returns the eight gym badges the mobile client shows
func DefaultCatalog() *Catalog {
	return NewCatalog([]models.Badge{
		{
			ID:          "boulder",
			Name:        "Boulder Badge",
			Emoji:       "🪨",
			Description: "Search 10 Pokémon",
			Requirement: models.CounterSearches,
			Threshold:   10,
		},
		{
			ID:          "water",
			Name:        "Water Badge",
			Emoji:       "💧",
			Description: "Catch 5 random Pokémon",
			Requirement: models.CounterCatches,
			Threshold:   5,
		},
		{
			ID:          "thunder",
			Name:        "Thunder Badge",
			Emoji:       "⚡",
			Description: "Add 3 Pokémon to favorites",
			Requirement: models.CounterFavorites,
			Threshold:   3,
		},
		{
			ID:          "rainbow",
			Name:        "Rainbow Badge",
			Emoji:       "🌈",
			Description: "Search 25 Pokémon",
			Requirement: models.CounterSearches,
			Threshold:   25,
		},
		{
			ID:          "soul",
			Name:        "Soul Badge",
			Emoji:       "👻",
			Description: "Catch 10 random Pokémon",
			Requirement: models.CounterCatches,
			Threshold:   10,
		},
		{
			ID:          "marsh",
			Name:        "Marsh Badge",
			Emoji:       "🌿",
			Description: "Add 10 Pokémon to favorites",
			Requirement: models.CounterFavorites,
			Threshold:   10,
		},
		{
			ID:          "volcano",
			Name:        "Volcano Badge",
			Emoji:       "🔥",
			Description: "Search 50 Pokémon",
			Requirement: models.CounterSearches,
			Threshold:   50,
		},
		{
			ID:          "earth",
			Name:        "Earth Badge",
			Emoji:       "🌍",
			Description: "Catch 25 random Pokémon",
			Requirement: models.CounterCatches,
			Threshold:   25,
		},
	})
}

// All returns every badge in declaration order
func (c *Catalog) All() []models.Badge {
	out := make([]models.Badge, len(c.badges))
	copy(out, c.badges)
	return out
}

// ByID looks up a badge, or ok=false if the id is unknown
func (c *Catalog) ByID(id string) (models.Badge, bool) {
	b, ok := c.byID[id]
	return b, ok
}
