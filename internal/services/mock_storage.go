package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pupilplay/game-engine/pkg/session"
)

// MockStorage is a mock implementation of Storage for testing.
type MockStorage struct {
	mu        sync.Mutex
	sessions  map[string]*session.State
	pingError error
	loadError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		sessions: make(map[string]*session.State),
	}
}

// SetPingError configures the mock to fail on ping with the given error.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetLoadError configures the mock to fail on LoadSession.
func (m *MockStorage) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadError = err
}

// SetSaveError configures the mock to fail on SaveSession.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// Ping mocks storage ping.
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pingError
}

// Close mocks storage close.
func (m *MockStorage) Close() error {
	return nil
}

// SaveSession mocks checkpointing a session.
func (m *MockStorage) SaveSession(ctx context.Context, playerID string, sessionID uuid.UUID, s *session.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if s == nil {
		return errors.New("session state cannot be nil")
	}
	m.sessions[sessionKey(playerID, sessionID)] = s
	return nil
}

// LoadSession mocks loading a session checkpoint.
func (m *MockStorage) LoadSession(ctx context.Context, playerID string, sessionID uuid.UUID) (*session.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadError != nil {
		return nil, m.loadError
	}
	return m.sessions[sessionKey(playerID, sessionID)], nil
}

// DeleteSession mocks deleting a session checkpoint.
func (m *MockStorage) DeleteSession(ctx context.Context, playerID string, sessionID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionKey(playerID, sessionID))
	return nil
}
