package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pokedex/internal/service"
	"pokedex/internal/validation"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token,omitempty"`
	User  struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
}

// Register handles account creation
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var vErr validation.ValidationError
		switch {
		case errors.As(err, &vErr):
			respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "email already taken", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, "registration failed", "Registration error", err)
		}
		return
	}

	resp := authResponse{}
	resp.User.ID = user.ID
	resp.User.Email = user.Email
	resp.User.Name = user.Name
	respondWithJSON(w, http.StatusCreated, resp)
}

// Login authenticates a trainer and returns an access token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "login failed", "Login error", err)
		return
	}

	resp := authResponse{Token: token}
	resp.User.ID = user.ID
	resp.User.Email = user.Email
	resp.User.Name = user.Name
	respondWithJSON(w, http.StatusOK, resp)
}

// Logout revokes the caller's access token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID := GetTokenIDFromContext(r.Context())
	if tokenID == "" {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	if err := h.authService.Logout(tokenID); err != nil {
		respondWithError(w, http.StatusInternalServerError, "logout failed", "Logout error", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated trainer's account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "not authenticated", "", nil)
		return
	}

	resp := authResponse{}
	resp.User.ID = user.ID
	resp.User.Email = user.Email
	resp.User.Name = user.Name
	respondWithJSON(w, http.StatusOK, resp)
}
