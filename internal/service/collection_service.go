package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"pokedex/internal/achievements"
	"pokedex/internal/models"
	"pokedex/internal/repository"
)

const favoritesCollection = "favorites"

// caughtCollection namespaces each trainer's storage documents
func caughtCollection(userKey string) string {
	return "caught/" + userKey
}

// CollectionService manages a trainer's favorites and caught storage
type CollectionService struct {
	store  repository.DocumentStore
	engine *achievements.Engine
}

// NewCollectionService creates a new collection service
func NewCollectionService(store repository.DocumentStore, engine *achievements.Engine) *CollectionService {
	return &CollectionService{
		store:  store,
		engine: engine,
	}
}

// Favorites returns the trainer's favorites list
func (s *CollectionService) Favorites(userKey string) ([]models.FavoriteEntry, error) {
	raw, found, err := s.store.Get(favoritesCollection, userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	if !found {
		return []models.FavoriteEntry{}, nil
	}

	var favorites []models.FavoriteEntry
	if err := json.Unmarshal(raw, &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	return favorites, nil
}

// ToggleFavorite adds the entry to the trainer's favorites, or removes it if
// already present. The favorites counter tracks the list's absolute size, so
// un-favoriting lowers the count without ever revoking an earned badge.
func (s *CollectionService) ToggleFavorite(userKey string, entry models.FavoriteEntry) ([]models.FavoriteEntry, []models.Badge, error) {
	favorites, err := s.Favorites(userKey)
	if err != nil {
		return nil, nil, err
	}

	removed := false
	kept := make([]models.FavoriteEntry, 0, len(favorites)+1)
	for _, f := range favorites {
		if f.ID == entry.ID {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		kept = append(kept, entry)
	}

	if err := s.store.Set(favoritesCollection, userKey, kept, false); err != nil {
		return nil, nil, fmt.Errorf("failed to save favorites: %w", err)
	}

	newBadges, err := s.engine.ReportFavoritesTotal(userKey, len(kept))
	if err != nil {
		log.Printf("Warning: badge evaluation failed for %s: %v", userKey, err)
	}

	return kept, newBadges, nil
}

// Catch adds a pokemon to the trainer's storage. Duplicates are allowed;
// each capture gets its own storage id.
func (s *CollectionService) Catch(userKey string, pokemon models.Pokemon) (*models.CaughtPokemon, []models.Badge, error) {
	caught := &models.CaughtPokemon{
		CaughtID: uuid.New().String(),
		ID:       pokemon.ID,
		Name:     pokemon.Name,
		Sprite:   pokemon.Sprite,
		Types:    pokemon.Types,
		CaughtAt: time.Now().UTC(),
	}

	if err := s.store.Set(caughtCollection(userKey), caught.CaughtID, caught, false); err != nil {
		return nil, nil, fmt.Errorf("failed to save capture: %w", err)
	}

	newBadges, err := s.engine.ReportCatch(userKey)
	if err != nil {
		log.Printf("Warning: badge evaluation failed for %s: %v", userKey, err)
	}

	return caught, newBadges, nil
}

// Storage returns everything the trainer has caught, newest first
func (s *CollectionService) Storage(userKey string) ([]models.CaughtPokemon, error) {
	collection := caughtCollection(userKey)
	keys, err := s.store.Keys(collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage: %w", err)
	}

	caught := make([]models.CaughtPokemon, 0, len(keys))
	for _, key := range keys {
		raw, found, err := s.store.Get(collection, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load capture %s: %w", key, err)
		}
		if !found {
			continue
		}
		var c models.CaughtPokemon
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("failed to decode capture %s: %w", key, err)
		}
		caught = append(caught, c)
	}

	sort.Slice(caught, func(i, j int) bool {
		return caught[i].CaughtAt.After(caught[j].CaughtAt)
	})
	return caught, nil
}

// Release removes one capture from the trainer's storage
func (s *CollectionService) Release(userKey, caughtID string) error {
	if err := s.store.Delete(caughtCollection(userKey), caughtID); err != nil {
		return fmt.Errorf("failed to release capture: %w", err)
	}
	return nil
}

// ReleaseAll wipes the trainer's storage
func (s *CollectionService) ReleaseAll(userKey string) error {
	if err := s.store.DeleteCollection(caughtCollection(userKey)); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}

// StorageStats summarizes the trainer's storage
func (s *CollectionService) StorageStats(userKey string) (*models.StorageStats, error) {
	caught, err := s.Storage(userKey)
	if err != nil {
		return nil, err
	}

	species := make(map[int]struct{}, len(caught))
	for _, c := range caught {
		species[c.ID] = struct{}{}
	}

	return &models.StorageStats{
		Total:         len(caught),
		UniqueSpecies: len(species),
	}, nil
}
