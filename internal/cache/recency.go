package cache

import (
	"encoding/json"
	"log"

	"pokedex/internal/models"
	"pokedex/internal/repository"
)

// DefaultCapacity bounds a trainer's recency list when no capacity is configured
const DefaultCapacity = 10

// collection is the document collection recency lists live under, one
// document per owner key
const collection = "recentSearches"

// RecencyCache keeps a bounded, most-recent-first list of looked-up entries
// per owner. It is a convenience layer: persistence problems are logged and
// degrade to an empty list, never to a failure of the caller's primary flow.
type RecencyCache struct {
	store    repository.DocumentStore
	capacity int
}

// NewRecencyCache creates a recency cache over the given document store.
// A capacity below 1 falls back to DefaultCapacity.
func NewRecencyCache(store repository.DocumentStore, capacity int) *RecencyCache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &RecencyCache{store: store, capacity: capacity}
}

// Record inserts entry at the front of owner's list, removing any previous
// entry with the same id and truncating to capacity from the tail. The
// updated list is returned even when persisting it failed; the error lets
// callers observe the degradation without being obliged to act on it.
// An empty owner key is a logged no-op.
func (c *RecencyCache) Record(owner string, entry models.CacheEntry) ([]models.CacheEntry, error) {
	if owner == "" {
		log.Println("recency cache: skipping record, missing owner key")
		return nil, nil
	}

	entries := c.load(owner)

	// Re-recording moves an entry to the front instead of duplicating it
	kept := make([]models.CacheEntry, 0, len(entries)+1)
	kept = append(kept, entry)
	for _, e := range entries {
		if e.ID != entry.ID {
			kept = append(kept, e)
		}
	}

	if len(kept) > c.capacity {
		kept = kept[:c.capacity]
	}

	if err := c.store.Set(collection, owner, kept, false); err != nil {
		log.Printf("recency cache: failed to persist list for %s: %v", owner, err)
		return kept, err
	}

	return kept, nil
}

// List returns owner's list, most recent first. A missing owner, an empty
// store, or a failing read all yield an empty list.
func (c *RecencyCache) List(owner string) []models.CacheEntry {
	if owner == "" {
		return nil
	}
	return c.load(owner)
}

// Clear removes one owner's list
func (c *RecencyCache) Clear(owner string) error {
	if owner == "" {
		return nil
	}
	return c.store.Delete(collection, owner)
}

// ClearAll removes every owner's list
func (c *RecencyCache) ClearAll() error {
	return c.store.DeleteCollection(collection)
}

func (c *RecencyCache) load(owner string) []models.CacheEntry {
	doc, found, err := c.store.Get(collection, owner)
	if err != nil {
		log.Printf("recency cache: failed to load list for %s: %v", owner, err)
		return nil
	}
	if !found {
		return nil
	}

	var entries []models.CacheEntry
	if err := json.Unmarshal(doc, &entries); err != nil {
		log.Printf("recency cache: discarding malformed list for %s: %v", owner, err)
		return nil
	}
	return entries
}
