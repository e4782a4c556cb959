package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/alumninet/alumninet-be/internal/auth"
	"github.com/alumninet/alumninet-be/internal/services"
)

// ProfileHandler handles HTTP requests for the profile directory.
type ProfileHandler struct {
	service services.ProfileServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service services.ProfileServiceProvider) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetAll returns the full profile collection. Filtering happens client-side.
func (h *ProfileHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.GetAllProfiles()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list profiles")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve profiles")
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

// Get returns a single profile by ID.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	profile, err := h.service.GetProfileByID(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Profile not found")
			return
		}
		log.Error().Err(err).Str("profile_id", id).Msg("Failed to get profile")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Update applies a partial update to a profile. The actor's identity comes
// from the verified credential; only the profile's owner may update it.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(id, claims.UserID, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			respondMessage(w, http.StatusNotFound, "Profile not found")
		case errors.Is(err, services.ErrNotOwner):
			log.Warn().Str("profile_id", id).Str("actor_id", claims.UserID).Msg("Rejected update of another user's profile")
			respondMessage(w, http.StatusForbidden, "You can only update your own profile")
		default:
			log.Error().Err(err).Str("profile_id", id).Msg("Failed to update profile")
			respondMessage(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
