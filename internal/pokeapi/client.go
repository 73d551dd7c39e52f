package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pokedex/internal/models"
)

var (
	// ErrNotFound means the catalog knows no entry by that name or id;
	// callers should offer suggestions rather than a retry
	ErrNotFound = errors.New("pokemon not found")

	// ErrUnavailable means the catalog could not be reached; callers
	// should offer a retry rather than suggestions
	ErrUnavailable = errors.New("catalog service unavailable")
)

// maxSpeciesID caps the id range used for random catches
const maxSpeciesID = 1025

// Client talks to a PokeAPI-compatible catalog service. It does no
// client-side retrying; transport policy belongs to the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client for the given base URL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// apiPokemon mirrors the slice of the upstream payload we care about
type apiPokemon struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Height  int    `json:"height"`
	Weight  int    `json:"weight"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Types []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
}

// GetByNameOrID fetches one catalog entry by name or numeric id
func (c *Client) GetByNameOrID(ctx context.Context, term string) (*models.Pokemon, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil, ErrNotFound
	}

	endpoint := fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(term))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: catalog returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload apiPokemon
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: malformed catalog response: %v", ErrUnavailable, err)
	}

	return payload.toModel(), nil
}

// GetRandom fetches a random catalog entry, used by catch mode
func (c *Client) GetRandom(ctx context.Context) (*models.Pokemon, error) {
	id := rand.Intn(maxSpeciesID) + 1
	return c.GetByNameOrID(ctx, fmt.Sprintf("%d", id))
}

func (p *apiPokemon) toModel() *models.Pokemon {
	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}

	stats := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}

	return &models.Pokemon{
		ID:     p.ID,
		Name:   p.Name,
		Sprite: p.Sprites.FrontDefault,
		Types:  types,
		Height: p.Height,
		Weight: p.Weight,
		Stats:  stats,
	}
}
