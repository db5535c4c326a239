package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/http/respond"
	"github.com/hongminglow/va-ops-be/internal/logger"
	"github.com/hongminglow/va-ops-be/internal/models/dto"
)

// AuthHandler owns session and admin-password endpoints.
type AuthHandler struct {
	ops      airline.Operations
	sessions *auth.Registry
	log      logger.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(ops airline.Operations, sessions *auth.Registry, log logger.Logger) *AuthHandler {
	return &AuthHandler{ops: ops, sessions: sessions, log: log}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/sessions", h.handleOpenSession).Methods(http.MethodPost)
	r.HandleFunc("/auth", h.handleAuthenticate).Methods(http.MethodPost)
}

func (h *AuthHandler) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Open()
	if errors.Is(err, auth.ErrRegistryFull) {
		h.log.Warn("session registry full")
		respond.Error(w, http.StatusServiceUnavailable, "too many open sessions")
		return
	}
	if err != nil {
		h.log.Error("open session failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to open session")
		return
	}
	respond.JSON(w, http.StatusCreated, "session opened", sessionResponse(session))
}

// handleAuthenticate promotes the caller's session. A caller that arrived
// without a session gets one registered so the privilege has somewhere to live.
func (h *AuthHandler) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthenticateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session := auth.FromContext(r.Context())
	if err := h.ops.Authenticate(r.Context(), session, req.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.sessions.Register(session); err != nil {
		h.log.Error("register session failed", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to open session")
		return
	}
	respond.JSON(w, http.StatusOK, "authenticated", sessionResponse(session))
}

func sessionResponse(s *auth.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Token:      s.Token(),
		ExpiresAt:  s.ExpiresAt(),
		Privileged: s.Privileged(),
	}
}
