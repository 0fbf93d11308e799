package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/tracketo/storefront/internal/session"
)

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// SessionHandler exposes login, logout and the current-identity probe the
// storefront pages gate navigation on.
type SessionHandler struct {
	session  *session.Session
	validate *validator.Validate
}

func NewSessionHandler(s *session.Session) *SessionHandler {
	return &SessionHandler{session: s, validate: validator.New()}
}

func (h *SessionHandler) RegisterRoutes(router chi.Router) {
	router.Post("/login", h.handleLogin)
	router.Post("/logout", h.handleLogout)
	router.Get("/session", h.handleGetSession)
}

func (h *SessionHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload LoginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		respondWithValidationError(w, err)
		return
	}

	role, err := session.ParseRole(payload.Role)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	user, err := h.session.Login(r.Context(), payload.Email, role)
	if err != nil {
		if errors.Is(err, session.ErrGuestLogin) {
			respondWithError(w, http.StatusBadRequest, "Guests cannot log in")
			return
		}
		log.Error().Err(err).Msg("Failed to log in")
		respondWithError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

func (h *SessionHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		log.Error().Err(err).Msg("Failed to log out")
		respondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	user := h.session.Current()
	if user == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
