package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pokedex/internal/achievements"
	"pokedex/internal/cache"
	"pokedex/internal/models"
	"pokedex/internal/pokeapi"
	"pokedex/internal/repository"
	"pokedex/internal/service"
)

type stubCatalog struct {
	pokemon map[string]*models.Pokemon
}

func (s *stubCatalog) GetByNameOrID(ctx context.Context, term string) (*models.Pokemon, error) {
	if p, ok := s.pokemon[term]; ok {
		return p, nil
	}
	return nil, pokeapi.ErrNotFound
}

func (s *stubCatalog) GetRandom(ctx context.Context) (*models.Pokemon, error) {
	for _, p := range s.pokemon {
		return p, nil
	}
	return nil, pokeapi.ErrNotFound
}

type stubStats struct {
	stats map[string]models.TrainerStats
}

func (m *stubStats) Get(userKey string) (models.TrainerStats, error) {
	return m.stats[userKey], nil
}

func (m *stubStats) IncrementSearches(userKey string) (models.TrainerStats, error) {
	s := m.stats[userKey]
	s.Searches++
	m.stats[userKey] = s
	return s, nil
}

func (m *stubStats) IncrementCatches(userKey string) (models.TrainerStats, error) {
	s := m.stats[userKey]
	s.Catches++
	m.stats[userKey] = s
	return s, nil
}

func (m *stubStats) SetFavorites(userKey string, total int) (models.TrainerStats, error) {
	s := m.stats[userKey]
	s.Favorites = total
	m.stats[userKey] = s
	return s, nil
}

type stubBadges struct {
	earned map[string][]string
}

func (m *stubBadges) EarnedIDs(userKey string) ([]string, error) {
	return m.earned[userKey], nil
}

func (m *stubBadges) Award(userKey string, badgeIDs []string) error {
	m.earned[userKey] = append(m.earned[userKey], badgeIDs...)
	return nil
}

func newTestEngine() *achievements.Engine {
	return achievements.NewEngine(
		achievements.DefaultCatalog(),
		&stubStats{stats: make(map[string]models.TrainerStats)},
		&stubBadges{earned: make(map[string][]string)},
	)
}

// authed wraps a handler so it sees a fixed user, bypassing token checks
func authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := &models.User{ID: 7, Email: "ash@pallet.town", Name: "Ash"}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	store := repository.NewMemoryDocumentStore()
	engine := newTestEngine()
	catalog := &stubCatalog{pokemon: map[string]*models.Pokemon{
		"pikachu": {ID: 25, Name: "pikachu", Sprite: "pikachu.png"},
	}}

	searchService := service.NewSearchService(catalog, cache.NewRecencyCache(store, 10), engine, 5)
	collectionService := service.NewCollectionService(store, engine)
	trainerService := service.NewTrainerService(store)

	pokemonHandler := NewPokemonHandler(searchService, nil)
	collectionHandler := NewCollectionHandler(collectionService, nil)
	trainerHandler := NewTrainerHandler(trainerService, engine)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pokemon/{term}", authed(pokemonHandler.Search))
	mux.HandleFunc("GET /api/suggest", pokemonHandler.Suggest)
	mux.HandleFunc("GET /api/recents", authed(pokemonHandler.Recents))
	mux.HandleFunc("POST /api/catch", authed(collectionHandler.Catch))
	mux.HandleFunc("GET /api/storage", authed(collectionHandler.Storage))
	mux.HandleFunc("POST /api/favorites/toggle", authed(collectionHandler.ToggleFavorite))
	mux.HandleFunc("GET /api/trainer/badges", authed(trainerHandler.Badges))
	return mux
}

func TestSearchEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/pokemon/pikachu", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var result service.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if result.Pokemon == nil || result.Pokemon.ID != 25 {
		t.Errorf("unexpected pokemon: %+v", result.Pokemon)
	}
	if len(result.Recents) != 1 {
		t.Errorf("recents = %+v, want one entry", result.Recents)
	}
}

func TestSearchEndpointMiss(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/pokemon/pikachuu", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var result service.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(result.Suggestions) == 0 || result.Suggestions[0] != "pikachu" {
		t.Errorf("suggestions = %+v, want pikachu first", result.Suggestions)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/suggest?q=pikachuu", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
}

func TestSuggestEndpointRejectsEmptyTerm(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/suggest", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCatchAndStorageEndpoints(t *testing.T) {
	mux := newTestMux(t)

	body := `{"id": 25, "name": "pikachu", "types": ["electric"]}`
	req := httptest.NewRequest("POST", "/api/catch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("catch status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/storage", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("storage status = %d, want 200", rec.Code)
	}

	var storage struct {
		Caught []models.CaughtPokemon `json:"caught"`
		Stats  models.StorageStats    `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &storage); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(storage.Caught) != 1 || storage.Stats.Total != 1 {
		t.Errorf("unexpected storage: %+v", storage)
	}
}

func TestCatchEndpointRejectsBadBody(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("POST", "/api/catch", strings.NewReader(`{"name": ""}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBadgesEndpoint(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/trainer/badges", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Badges []models.BadgeWithStatus `json:"badges"`
		Stats  models.TrainerStats      `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Badges) == 0 {
		t.Fatal("expected the full badge catalog")
	}
	for _, b := range body.Badges {
		if b.Progress.Earned {
			t.Errorf("badge %s should not be earned yet", b.ID)
		}
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"", ""},
		{"Bearer", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(r); got != tt.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
