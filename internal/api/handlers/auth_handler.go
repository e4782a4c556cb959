package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/alumninet/alumninet-be/internal/auth"
	"github.com/alumninet/alumninet-be/internal/services"
)

// AuthHandler handles login, logout and identity lookup.
type AuthHandler struct {
	userSvc  services.UserServiceProvider
	tokenSvc *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userSvc services.UserServiceProvider, tokenSvc *auth.Service) *AuthHandler {
	return &AuthHandler{userSvc: userSvc, tokenSvc: tokenSvc}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the submitted credentials and issues a session token.
// Bad credentials always produce the same body, whether the email is unknown
// or the password is wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userSvc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
			respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Error().Err(err).Str("email", payload.Email).Msg("Login lookup failed")
		respondMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	token, err := h.tokenSvc.Issue(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout acknowledges a logout. Credentials are stateless, so there is no
// server-side session to destroy; clients drop their stored session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, "Logged out successfully")
}

// Me returns the account behind the verified credential.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondMessage(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	user, err := h.userSvc.GetUserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
