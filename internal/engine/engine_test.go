package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupilplay/game-engine/internal/config"
	"github.com/pupilplay/game-engine/internal/services"
	"github.com/pupilplay/game-engine/pkg/actions"
	"github.com/pupilplay/game-engine/pkg/chat"
	"github.com/pupilplay/game-engine/pkg/session"
	"github.com/pupilplay/game-engine/pkg/tiers"
)

func testConfig() *config.Config {
	return &config.Config{
		GameType:            "multiplication_runner",
		Subject:             "mathematics",
		Topic:               "multiplication",
		TargetAgeMin:        8,
		TargetAgeMax:        12,
		ComplexityThreshold: 0.6,
		MaxActionRounds:     1,
	}
}

func newTestEngine(t *testing.T) (*Engine, *services.MockLLM, *services.MockStorage) {
	t.Helper()
	llm := services.NewMockLLM()
	storage := services.NewMockStorage()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(testConfig(), llm, storage, logger), llm, storage
}

func TestProcessInteraction_Success(t *testing.T) {
	e, llm, _ := newTestEngine(t)

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "What is 6 x 7?",
	})

	require.True(t, resp.Success)
	assert.Equal(t, "Mock response", resp.Response)
	assert.Empty(t, resp.Error)
	assert.NotEqual(t, uuid.Nil, resp.GameState.SessionID)
	assert.Equal(t, session.DefaultLevel, resp.GameState.CurrentLevel)
	assert.Equal(t, session.DefaultDifficulty, resp.GameState.DifficultyLevel)
	assert.Equal(t, session.DefaultEngagement, resp.GameState.EngagementScore)

	require.NotNil(t, resp.EducationalInsights)
	assert.Equal(t, "fast", resp.EducationalInsights.ModelTier)
	assert.Equal(t, 0.0, resp.EducationalInsights.ComplexityScore)
	assert.Equal(t, "appropriate", resp.EducationalInsights.ComplexityLevel)
	assert.Equal(t, "on_track", resp.EducationalInsights.LearningProgress)
	assert.Len(t, resp.EducationalInsights.Recommendations, 2)

	calls := llm.GetChatCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, tiers.TierFast, calls[0].Tier)
	require.NotEmpty(t, calls[0].Messages)
	assert.Equal(t, chat.ChatRoleSystem, calls[0].Messages[0].Role)
	assert.Equal(t, "What is 6 x 7?", calls[0].Messages[len(calls[0].Messages)-1].Content)
	assert.Len(t, calls[0].Catalog, 6)
}

func TestProcessInteraction_ComplexMessageUsesPrimaryTier(t *testing.T) {
	e, llm, _ := newTestEngine(t)

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "Can you explain why this works and solve it step by step?",
	})

	require.True(t, resp.Success)
	require.NotNil(t, resp.EducationalInsights)
	assert.Equal(t, "primary", resp.EducationalInsights.ModelTier)
	assert.InDelta(t, 0.6, resp.EducationalInsights.ComplexityScore, 1e-9)

	calls := llm.GetChatCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, tiers.TierPrimary, calls[0].Tier)
}

func TestProcessInteraction_ModelFailureFallback(t *testing.T) {
	e, llm, storage := newTestEngine(t)
	llm.SetChatError(errors.New("model timeout"))

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "What is 6 x 7?",
	})

	// Model failure is absorbed inside the cycle, not surfaced as an error.
	require.True(t, resp.Success)
	assert.Equal(t, ModelFallbackMessage, resp.Response)
	assert.Empty(t, resp.Error)
	assert.Equal(t, session.DefaultEngagement, resp.GameState.EngagementScore)

	// The fallback is part of the conversation going forward.
	stored, err := storage.LoadSession(context.Background(), "player1", resp.GameState.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	last := stored.ChatHistory[len(stored.ChatHistory)-1]
	assert.Equal(t, chat.ChatRoleAgent, last.Role)
	assert.Equal(t, ModelFallbackMessage, last.Content)
}

func TestProcessInteraction_SessionContextRoundTrip(t *testing.T) {
	e, _, _ := newTestEngine(t)

	level := 5
	difficulty := 0.3
	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "next problem please",
		SessionContext: &session.Context{
			CurrentLevel:    &level,
			DifficultyLevel: &difficulty,
		},
	})

	require.True(t, resp.Success)
	assert.Equal(t, 5, resp.GameState.CurrentLevel)
	assert.Equal(t, 0.3, resp.GameState.DifficultyLevel)
}

func TestProcessInteraction_EngagementScoring(t *testing.T) {
	e, llm, _ := newTestEngine(t)
	llm.SetChatResponse(&chat.ChatResponse{Message: "Great job! Keep going!"})

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "42!",
	})

	require.True(t, resp.Success)
	assert.InDelta(t, 0.85, resp.GameState.EngagementScore, 1e-9)
}

func TestProcessInteraction_ActionRound(t *testing.T) {
	e, llm, storage := newTestEngine(t)

	turn := 0
	llm.ChatFunc = func(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error) {
		turn++
		if turn == 1 {
			return &chat.ChatResponse{
				Message: "Let me make this a bit easier.",
				Action: &chat.ActionCall{
					Name: actions.ActionAdjustDifficulty,
					Params: map[string]any{
						"new_difficulty_level": 0.4,
						"adjustment_rationale": "player struggled twice",
					},
				},
			}, nil
		}
		return &chat.ChatResponse{Message: "Here is a gentler one: what is 3 x 4?"}, nil
	}

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "this is too hard",
	})

	require.True(t, resp.Success)
	assert.Equal(t, "Here is a gentler one: what is 3 x 4?", resp.Response)
	assert.Len(t, llm.GetChatCalls(), 2)

	stored, err := storage.LoadSession(context.Background(), "player1", resp.GameState.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	var actionResult string
	for _, msg := range stored.ChatHistory {
		if strings.HasPrefix(msg.Content, "ACTION RESULT [") {
			actionResult = msg.Content
			require.Equal(t, chat.ChatRoleUser, msg.Role)
		}
	}
	assert.Equal(t,
		"ACTION RESULT [adjust_difficulty]: Difficulty adjusted to 0.40: player struggled twice",
		actionResult)
}

func TestProcessInteraction_ActionRoundLimit(t *testing.T) {
	e, llm, _ := newTestEngine(t)

	// The model requests an action on every turn; the bounded loop-back
	// edge permits exactly one action round.
	llm.SetChatResponse(&chat.ChatResponse{
		Message: "Adjusting again.",
		Action: &chat.ActionCall{
			Name: actions.ActionAdjustDifficulty,
			Params: map[string]any{
				"new_difficulty_level": 0.5,
				"adjustment_rationale": "still calibrating",
			},
		},
	})

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "hello",
	})

	require.True(t, resp.Success)
	assert.Equal(t, "Adjusting again.", resp.Response)
	assert.Len(t, llm.GetChatCalls(), 2)
}

func TestProcessInteraction_FailedActionFeedsErrorBack(t *testing.T) {
	e, llm, storage := newTestEngine(t)

	turn := 0
	llm.ChatFunc = func(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error) {
		turn++
		if turn == 1 {
			return &chat.ChatResponse{
				Action: &chat.ActionCall{
					Name:   actions.ActionAdjustDifficulty,
					Params: map[string]any{"new_difficulty_level": 3.0},
				},
			}, nil
		}
		return &chat.ChatResponse{Message: "Let's try something else."}, nil
	}

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "make it impossible",
	})

	require.True(t, resp.Success)
	assert.Equal(t, "Let's try something else.", resp.Response)

	stored, err := storage.LoadSession(context.Background(), "player1", resp.GameState.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	var found bool
	for _, msg := range stored.ChatHistory {
		if strings.Contains(msg.Content, "Action adjust_difficulty failed:") {
			found = true
		}
	}
	assert.True(t, found, "expected failed action result in history")
}

func TestProcessInteraction_EmptyModelTextUsesDefault(t *testing.T) {
	e, llm, _ := newTestEngine(t)
	llm.SetChatResponse(&chat.ChatResponse{Message: ""})

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "hello?",
	})

	require.True(t, resp.Success)
	assert.Equal(t, DefaultResponse, resp.Response)
}

func TestProcessInteraction_SessionResume(t *testing.T) {
	e, _, storage := newTestEngine(t)
	ctx := context.Background()

	first := e.ProcessInteraction(ctx, &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "What is 6 x 7?",
	})
	require.True(t, first.Success)
	sessionID := first.GameState.SessionID

	second := e.ProcessInteraction(ctx, &session.InteractionRequest{
		PlayerID:       "player1",
		Message:        "Is it 42?",
		SessionContext: &session.Context{SessionID: sessionID},
	})
	require.True(t, second.Success)
	assert.Equal(t, sessionID, second.GameState.SessionID)

	stored, err := storage.LoadSession(ctx, "player1", sessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	// Two user messages and two agent responses across the interactions.
	assert.Len(t, stored.ChatHistory, 4)
	assert.Equal(t, "What is 6 x 7?", stored.ChatHistory[0].Content)
	assert.Equal(t, "Is it 42?", stored.ChatHistory[2].Content)
}

func TestProcessInteraction_UnknownSessionStartsFresh(t *testing.T) {
	e, _, _ := newTestEngine(t)

	unknown := uuid.New()
	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID:       "player1",
		Message:        "hello",
		SessionContext: &session.Context{SessionID: unknown},
	})

	require.True(t, resp.Success)
	assert.Equal(t, unknown, resp.GameState.SessionID)
}

func TestProcessInteraction_LoadFailure(t *testing.T) {
	e, llm, storage := newTestEngine(t)
	storage.SetLoadError(errors.New("redis unavailable"))

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID:       "player1",
		Message:        "hello",
		SessionContext: &session.Context{SessionID: uuid.New()},
	})

	require.False(t, resp.Success)
	assert.Equal(t, "redis unavailable", resp.Error)
	assert.Equal(t, ErrorFallbackMessage, resp.Response)
	assert.Equal(t, 0.5, resp.GameState.EngagementScore)
	assert.Equal(t, float64(0), resp.GameState.SessionTimeSeconds)
	assert.Empty(t, llm.GetChatCalls(), "model must not be invoked when session preparation fails")
}

func TestProcessInteraction_SaveFailureDoesNotFailInteraction(t *testing.T) {
	e, _, storage := newTestEngine(t)
	storage.SetSaveError(errors.New("redis write refused"))

	resp := e.ProcessInteraction(context.Background(), &session.InteractionRequest{
		PlayerID: "player1",
		Message:  "hello",
	})

	require.True(t, resp.Success)
	assert.Equal(t, "Mock response", resp.Response)
}
