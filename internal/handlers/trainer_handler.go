package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pokedex/internal/achievements"
	"pokedex/internal/models"
	"pokedex/internal/repository"
	"pokedex/internal/service"
	"pokedex/internal/validation"
)

// TrainerHandler handles trainer profile, stats and badge HTTP requests
type TrainerHandler struct {
	trainerService *service.TrainerService
	engine         *achievements.Engine
}

// NewTrainerHandler creates a new trainer handler
func NewTrainerHandler(trainerService *service.TrainerService, engine *achievements.Engine) *TrainerHandler {
	return &TrainerHandler{
		trainerService: trainerService,
		engine:         engine,
	}
}

type profileRequest struct {
	TrainerName string `json:"trainerName"`
	Avatar      string `json:"avatar"`
	Region      string `json:"region"`
}

// GetProfile returns the caller's trainer profile
func (h *TrainerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	profile, err := h.trainerService.GetProfile(user.OwnerKey())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load profile", "Profile load error", err)
		return
	}
	if profile == nil {
		respondWithError(w, http.StatusNotFound, "profile not found", "", nil)
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// CreateProfile creates the caller's trainer profile
func (h *TrainerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	profile, err := h.trainerService.CreateProfile(user.OwnerKey(), req.TrainerName, req.Avatar, req.Region)
	if err != nil {
		var vErr validation.ValidationError
		if errors.As(err, &vErr) {
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to create profile", "Profile create error", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, profile)
}

// UpdateProfile applies a partial update to the caller's profile
func (h *TrainerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	profile, err := h.trainerService.UpdateProfile(user.OwnerKey(), updates)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		case errors.Is(err, repository.ErrDocumentNotFound):
			respondWithError(w, http.StatusNotFound, "profile not found", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "failed to update profile", "Profile update error", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, profile)
}

// DeleteProfile removes the caller's profile
func (h *TrainerHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	if err := h.trainerService.DeleteProfile(user.OwnerKey()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to delete profile", "Profile delete error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Badges returns the full badge catalog annotated with the caller's
// progress toward each one
func (h *TrainerHandler) Badges(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	stats, err := h.engine.Stats(user.OwnerKey())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load stats", "Stats load error", err)
		return
	}
	earnedIDs, err := h.engine.EarnedIDs(user.OwnerKey())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load badges", "Badges load error", err)
		return
	}

	earned := make(map[string]bool, len(earnedIDs))
	for _, id := range earnedIDs {
		earned[id] = true
	}

	catalog := h.engine.Catalog().All()
	badges := make([]models.BadgeWithStatus, 0, len(catalog))
	for _, b := range catalog {
		progress := achievements.Progress(b, stats)
		progress.Earned = earned[b.ID]
		badges = append(badges, models.BadgeWithStatus{Badge: b, Progress: progress})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"badges": badges,
		"stats":  stats,
	})
}

// Stats returns the caller's activity counters
func (h *TrainerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	stats, err := h.engine.Stats(user.OwnerKey())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load stats", "Stats load error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}
