package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/pupilplay/game-engine/pkg/session"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage defines the interface for session checkpoint persistence.
// Checkpoints are keyed by player ID plus session ID, so concurrent
// sessions for different players never collide.
type Storage interface {
	HealthChecker
	Closer

	// SaveSession checkpoints a session state
	SaveSession(ctx context.Context, playerID string, sessionID uuid.UUID, s *session.State) error

	// LoadSession retrieves a checkpointed session state.
	// Returns nil without error when no checkpoint exists.
	LoadSession(ctx context.Context, playerID string, sessionID uuid.UUID) (*session.State, error)

	// DeleteSession removes a session checkpoint
	DeleteSession(ctx context.Context, playerID string, sessionID uuid.UUID) error
}
