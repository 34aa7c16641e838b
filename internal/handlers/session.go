package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/pupilplay/game-engine/internal/services"
)

// SessionHandler serves session checkpoint reads and deletes at
// /v1/sessions/{player_id}/{session_id}.
type SessionHandler struct {
	storage services.Storage
	logger  *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(storage services.Storage, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		storage: storage,
		logger:  logger,
	}
}

type sessionError struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for session checkpoints.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	playerID, sessionID, ok := h.parsePath(r.URL.Path)
	if !ok {
		h.writeError(w, http.StatusBadRequest,
			"Expected path /v1/sessions/{player_id}/{session_id}.")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, playerID, sessionID)
	case http.MethodDelete:
		h.handleDelete(w, r, playerID, sessionID)
	default:
		h.logger.Warn("Method not allowed for sessions endpoint",
			"method", r.Method,
			"path", r.URL.Path)
		h.writeError(w, http.StatusMethodNotAllowed,
			"Method not allowed. Only GET and DELETE are supported.")
	}
}

func (h *SessionHandler) handleGet(w http.ResponseWriter, r *http.Request, playerID string, sessionID uuid.UUID) {
	s, err := h.storage.LoadSession(r.Context(), playerID, sessionID)
	if err != nil {
		h.logger.Error("Failed to load session", "session_id", sessionID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load session.")
		return
	}
	if s == nil {
		h.writeError(w, http.StatusNotFound, "Session not found.")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(s); err != nil {
		h.logger.Error("Error encoding session response", "error", err)
	}
}

func (h *SessionHandler) handleDelete(w http.ResponseWriter, r *http.Request, playerID string, sessionID uuid.UUID) {
	if err := h.storage.DeleteSession(r.Context(), playerID, sessionID); err != nil {
		h.logger.Error("Failed to delete session", "session_id", sessionID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete session.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parsePath extracts player and session IDs from
// /v1/sessions/{player_id}/{session_id}.
func (h *SessionHandler) parsePath(path string) (string, uuid.UUID, bool) {
	trimmed := strings.TrimPrefix(path, "/v1/sessions/")
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		return "", uuid.Nil, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return "", uuid.Nil, false
	}
	return parts[0], id, true
}

func (h *SessionHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(sessionError{Error: msg}); err != nil {
		h.logger.Error("Error encoding error response", "error", err)
	}
}
