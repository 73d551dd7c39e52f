package handlers

import (
	"errors"
	"net/http"

	"pokedex/internal/service"
	"pokedex/internal/validation"
)

// PokemonHandler handles pokedex lookup HTTP requests
type PokemonHandler struct {
	searchService *service.SearchService
	emailService  *service.EmailService
}

// NewPokemonHandler creates a new pokemon handler
func NewPokemonHandler(searchService *service.SearchService, emailService *service.EmailService) *PokemonHandler {
	return &PokemonHandler{
		searchService: searchService,
		emailService:  emailService,
	}
}

// Search looks up a pokemon by name or id. A miss returns 404 with name
// suggestions in the body.
func (h *PokemonHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	term := r.PathValue("term")
	result, err := h.searchService.Search(r.Context(), user.OwnerKey(), term)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		case errors.Is(err, service.ErrPokemonNotFound):
			respondWithJSON(w, http.StatusNotFound, result)
		default:
			respondWithError(w, http.StatusBadGateway, "catalog unavailable", "Catalog lookup error", err)
		}
		return
	}

	notifyBadgesEarned(h.emailService, user, result.NewBadges)

	respondWithJSON(w, http.StatusOK, result)
}

// Random returns a random pokemon
func (h *PokemonHandler) Random(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	result, err := h.searchService.Random(r.Context(), user.OwnerKey())
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "catalog unavailable", "Catalog lookup error", err)
		return
	}

	notifyBadgesEarned(h.emailService, user, result.NewBadges)

	respondWithJSON(w, http.StatusOK, result)
}

// Suggest returns close name matches for a query term
func (h *PokemonHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if err := validation.ValidateSearchTerm(term); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}

	suggestions := h.searchService.Suggestions(term)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}

// Recents returns the caller's recent searches, most recent first
func (h *PokemonHandler) Recents(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recents": h.searchService.Recents(user.OwnerKey()),
	})
}

// ClearRecents wipes the caller's recent searches
func (h *PokemonHandler) ClearRecents(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	if err := h.searchService.ClearRecents(user.OwnerKey()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to clear recent searches", "Clear recents error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
