package services

import (
	"context"
	"sync"

	"github.com/pupilplay/game-engine/pkg/actions"
	"github.com/pupilplay/game-engine/pkg/chat"
	"github.com/pupilplay/game-engine/pkg/tiers"
)

// MockLLM is a mock implementation of LLMService for testing.
type MockLLM struct {
	InitModelFunc func(ctx context.Context) error
	ChatFunc      func(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error)

	// Track calls for testing
	InitModelCalls int
	ChatCalls      []ChatCall

	mu sync.Mutex // protects all fields above
}

// ChatCall records one Chat invocation.
type ChatCall struct {
	Tier     tiers.Tier
	Messages []chat.ChatMessage
	Catalog  []actions.Definition
}

// Ensure MockLLM implements LLMService interface
var _ LLMService = (*MockLLM)(nil)

// NewMockLLM creates a new mock LLM service.
func NewMockLLM() *MockLLM {
	return &MockLLM{
		ChatCalls: make([]ChatCall, 0),
	}
}

// InitModel mocks model initialization.
func (m *MockLLM) InitModel(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls++
	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx)
	}
	return nil
}

// Chat mocks response generation.
func (m *MockLLM) Chat(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ChatCalls = append(m.ChatCalls, ChatCall{
		Tier:     tier,
		Messages: messages,
		Catalog:  catalog,
	})

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, tier, messages, catalog)
	}

	return &chat.ChatResponse{Message: "Mock response"}, nil
}

// SetChatError sets up the mock to return an error on Chat.
func (m *MockLLM) SetChatError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// SetChatResponse sets up the mock to return a fixed response on Chat.
func (m *MockLLM) SetChatResponse(resp *chat.ChatResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error) {
		return resp, nil
	}
}

// GetChatCalls returns a copy of the recorded Chat calls.
func (m *MockLLM) GetChatCalls() []ChatCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]ChatCall, len(m.ChatCalls))
	copy(calls, m.ChatCalls)
	return calls
}

// Reset clears all call tracking.
func (m *MockLLM) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = 0
	m.ChatCalls = make([]ChatCall, 0)
}
