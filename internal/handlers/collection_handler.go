package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"pokedex/internal/models"
	"pokedex/internal/service"
)

// CollectionHandler handles favorites and storage HTTP requests
type CollectionHandler struct {
	collectionService *service.CollectionService
	emailService      *service.EmailService
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionService *service.CollectionService, emailService *service.EmailService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		emailService:      emailService,
	}
}

// Favorites returns the caller's favorites list
func (h *CollectionHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	favorites, err := h.collectionService.Favorites(user.OwnerKey())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load favorites", "Favorites load error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
	})
}

// ToggleFavorite adds or removes a favorite
func (h *CollectionHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	var entry models.FavoriteEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if entry.ID <= 0 || entry.Name == "" {
		respondWithError(w, http.StatusBadRequest, "favorite needs an id and a name", "", nil)
		return
	}

	favorites, newBadges, err := h.collectionService.ToggleFavorite(user.OwnerKey(), entry)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to update favorites", "Favorites update error", err)
		return
	}

	notifyBadgesEarned(h.emailService, user, newBadges)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": favorites,
		"newBadges": newBadges,
	})
}

// Catch adds a pokemon to the caller's storage
func (h *CollectionHandler) Catch(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	var pokemon models.Pokemon
	if err := json.NewDecoder(r.Body).Decode(&pokemon); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if pokemon.ID <= 0 || pokemon.Name == "" {
		respondWithError(w, http.StatusBadRequest, "catch needs an id and a name", "", nil)
		return
	}

	caught, newBadges, err := h.collectionService.Catch(user.OwnerKey(), pokemon)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to save capture", "Catch error", err)
		return
	}

	notifyBadgesEarned(h.emailService, user, newBadges)

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"caught":    caught,
		"newBadges": newBadges,
	})
}

// Storage returns everything the caller has caught
func (h *CollectionHandler) Storage(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	caught, err := h.collectionService.Storage(user.OwnerKey())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load storage", "Storage load error", err)
		return
	}
	stats, err := h.collectionService.StorageStats(user.OwnerKey())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load storage", "Storage stats error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"caught": caught,
		"stats":  stats,
	})
}

// Release removes one capture from the caller's storage
func (h *CollectionHandler) Release(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	caughtID := r.PathValue("caughtID")
	if caughtID == "" {
		respondWithError(w, http.StatusBadRequest, "missing capture id", "", nil)
		return
	}

	if err := h.collectionService.Release(user.OwnerKey(), caughtID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to release capture", "Release error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "released"})
}

// ReleaseAll wipes the caller's storage
func (h *CollectionHandler) ReleaseAll(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	if err := h.collectionService.ReleaseAll(user.OwnerKey()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to clear storage", "Release all error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "released"})
}

// notifyBadgesEarned sends badge emails in the background. Notification is
// best effort and never blocks the response.
func notifyBadgesEarned(emailService *service.EmailService, user *models.User, badges []models.Badge) {
	if emailService == nil || !emailService.IsEnabled() || len(badges) == 0 {
		return
	}

	go func() {
		for _, badge := range badges {
			if err := emailService.SendBadgeEarnedEmail(context.Background(), user.Email, user.Name, badge); err != nil {
				log.Printf("Warning: failed to send badge email to %s: %v", user.Email, err)
			}
		}
	}()
}
