package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"pokedex/internal/achievements"
	"pokedex/internal/cache"
	"pokedex/internal/models"
	"pokedex/internal/pokeapi"
	"pokedex/internal/suggest"
	"pokedex/internal/validation"
)

var ErrPokemonNotFound = errors.New("pokemon not found")

// Catalog is the slice of the pokedex client the search service needs
type Catalog interface {
	GetByNameOrID(ctx context.Context, term string) (*models.Pokemon, error)
	GetRandom(ctx context.Context) (*models.Pokemon, error)
}

// SearchResult is the outcome of a pokedex lookup. On a miss Suggestions
// carries close name matches for the failed term.
type SearchResult struct {
	Pokemon     *models.Pokemon     `json:"pokemon,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
	Recents     []models.CacheEntry `json:"recents,omitempty"`
	NewBadges   []models.Badge      `json:"newBadges,omitempty"`
}

// SearchService handles pokedex lookups and the side effects that ride on
// them: recency tracking, search counting and badge evaluation
type SearchService struct {
	catalog         Catalog
	recents         *cache.RecencyCache
	engine          *achievements.Engine
	suggestionLimit int
}

// NewSearchService creates a new search service
func NewSearchService(catalog Catalog, recents *cache.RecencyCache, engine *achievements.Engine, suggestionLimit int) *SearchService {
	if suggestionLimit <= 0 {
		suggestionLimit = suggest.DefaultLimit
	}
	return &SearchService{
		catalog:         catalog,
		recents:         recents,
		engine:          engine,
		suggestionLimit: suggestionLimit,
	}
}

// Search looks up a pokemon by name or id. On success the hit is recorded in
// the caller's recent searches and counted toward badges. On a miss the
// result carries name suggestions instead, wrapped in ErrPokemonNotFound.
func (s *SearchService) Search(ctx context.Context, userKey, term string) (*SearchResult, error) {
	if err := validation.ValidateSearchTerm(term); err != nil {
		return nil, err
	}

	pokemon, err := s.catalog.GetByNameOrID(ctx, term)
	if errors.Is(err, pokeapi.ErrNotFound) {
		suggestions := suggest.Suggest(term, suggest.Names, s.suggestionLimit)
		return &SearchResult{Suggestions: suggestions}, ErrPokemonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	result := &SearchResult{Pokemon: pokemon}

	// Recency and badge updates degrade independently of the lookup
	recents, err := s.recents.Record(userKey, models.CacheEntry{
		ID:     pokemon.ID,
		Name:   pokemon.Name,
		Sprite: pokemon.Sprite,
	})
	if err != nil {
		log.Printf("Warning: failed to record recent search for %s: %v", userKey, err)
	}
	result.Recents = recents

	newBadges, err := s.engine.ReportSearch(userKey)
	if err != nil {
		log.Printf("Warning: badge evaluation failed for %s: %v", userKey, err)
	}
	result.NewBadges = newBadges

	return result, nil
}

// Random returns a random pokemon. Random discoveries count as searches too.
func (s *SearchService) Random(ctx context.Context, userKey string) (*SearchResult, error) {
	pokemon, err := s.catalog.GetRandom(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup failed: %w", err)
	}

	result := &SearchResult{Pokemon: pokemon}

	recents, err := s.recents.Record(userKey, models.CacheEntry{
		ID:     pokemon.ID,
		Name:   pokemon.Name,
		Sprite: pokemon.Sprite,
	})
	if err != nil {
		log.Printf("Warning: failed to record recent search for %s: %v", userKey, err)
	}
	result.Recents = recents

	newBadges, err := s.engine.ReportSearch(userKey)
	if err != nil {
		log.Printf("Warning: badge evaluation failed for %s: %v", userKey, err)
	}
	result.NewBadges = newBadges

	return result, nil
}

// Suggestions returns close name matches for a term without hitting the
// catalog
func (s *SearchService) Suggestions(term string) []string {
	return suggest.Suggest(term, suggest.Names, s.suggestionLimit)
}

// Recents returns the caller's recent searches, most recent first
func (s *SearchService) Recents(userKey string) []models.CacheEntry {
	return s.recents.List(userKey)
}

// ClearRecents wipes the caller's recent searches
func (s *SearchService) ClearRecents(userKey string) error {
	return s.recents.Clear(userKey)
}
