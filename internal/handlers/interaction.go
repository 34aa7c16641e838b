package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pupilplay/game-engine/internal/engine"
	"github.com/pupilplay/game-engine/pkg/session"
)

const interactionTimeout = 60 * time.Second

// InteractionHandler handles player interaction requests.
type InteractionHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewInteractionHandler creates a new interaction handler.
func NewInteractionHandler(eng *engine.Engine, logger *slog.Logger) *InteractionHandler {
	return &InteractionHandler{
		engine: eng,
		logger: logger,
	}
}

// ServeHTTP handles HTTP requests for player interactions.
func (h *InteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for interact endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		writeError(w, h.logger, http.StatusMethodNotAllowed,
			"Method not allowed. Only POST is supported at /v1/interact.")
		return
	}

	var request session.InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest,
			"Invalid request body. Expected JSON with 'player_id' and 'message' fields.")
		return
	}

	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid interaction request", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	h.logger.Info("Processing interaction",
		"player_id", request.PlayerID,
		"message_length", len(request.Message))

	ctx, cancel := context.WithTimeout(r.Context(), interactionTimeout)
	defer cancel()

	// The engine absorbs its own failures into the response envelope;
	// the HTTP status stays 200 for any processed interaction.
	response := h.engine.ProcessInteraction(ctx, &request)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding interaction response",
			"error", err,
			"player_id", request.PlayerID)
	}
}

// writeError writes a failure envelope with the given HTTP status.
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.WriteHeader(status)
	response := session.InteractionResponse{
		Success: false,
		Error:   msg,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("Error encoding error response", "error", err)
	}
}
