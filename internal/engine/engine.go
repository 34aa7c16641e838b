// Package engine runs the interaction cycle: one pass from player message
// to response payload, through an explicit two-state machine (model turn,
// action turn) with a bounded loop-back edge.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pupilplay/game-engine/internal/config"
	"github.com/pupilplay/game-engine/internal/services"
	"github.com/pupilplay/game-engine/pkg/actions"
	"github.com/pupilplay/game-engine/pkg/chat"
	"github.com/pupilplay/game-engine/pkg/engagement"
	"github.com/pupilplay/game-engine/pkg/prompts"
	"github.com/pupilplay/game-engine/pkg/session"
	"github.com/pupilplay/game-engine/pkg/tiers"
)

const (
	// ModelFallbackMessage is substituted when model invocation fails
	// inside the cycle. The cycle still completes normally.
	ModelFallbackMessage = "Let's keep learning together! Try your best on this challenge."

	// ErrorFallbackMessage is returned when the interaction could not be
	// processed at all, e.g. the session checkpoint failed to load.
	ErrorFallbackMessage = "I apologize, but I'm having trouble right now. Let's try again!"

	// DefaultResponse covers the rare case of a model turn with no text.
	DefaultResponse = "I'm here to help you learn!"

	neutralEngagement = 0.5
)

// Engine orchestrates prompt building, model-tier selection, model
// invocation, and action execution for player interactions.
type Engine struct {
	llm             services.LLMService
	storage         services.Storage
	catalog         *actions.Registry
	selector        tiers.Selector
	game            prompts.Game
	maxActionRounds int
	logger          *slog.Logger
}

// New creates an engine for the configured game.
func New(cfg *config.Config, llm services.LLMService, storage services.Storage, logger *slog.Logger) *Engine {
	return &Engine{
		llm:      llm,
		storage:  storage,
		catalog:  actions.NewCatalog(cfg.Topic),
		selector: tiers.NewSelector(cfg.ComplexityThreshold),
		game: prompts.Game{
			Type:    cfg.GameType,
			Subject: cfg.Subject,
			Topic:   cfg.Topic,
			AgeMin:  cfg.TargetAgeMin,
			AgeMax:  cfg.TargetAgeMax,
		},
		maxActionRounds: cfg.MaxActionRounds,
		logger:          logger,
	}
}

// Catalog exposes the engine's action registry.
func (e *Engine) Catalog() *actions.Registry {
	return e.catalog
}

// ProcessInteraction is the main entry point: one full pass from player
// message to response payload. Failures during the model turn are absorbed
// by the cycle's fallback; only failures before invocation (session
// preparation) surface as success=false.
func (e *Engine) ProcessInteraction(ctx context.Context, req *session.InteractionRequest) *session.InteractionResponse {
	st := session.NewState(req.PlayerID, e.game.Type, req.SessionContext)

	// Resume the checkpointed session when the caller supplied its ID.
	if req.SessionContext != nil && req.SessionContext.SessionID != uuid.Nil {
		stored, err := e.storage.LoadSession(ctx, req.PlayerID, req.SessionContext.SessionID)
		if err != nil {
			e.logger.Error("Failed to load session checkpoint",
				"player_id", req.PlayerID,
				"session_id", req.SessionContext.SessionID,
				"error", err)
			return e.failureResponse(st, err)
		}
		if stored != nil {
			st = stored
		}
	}

	st.AppendMessage(chat.ChatRoleUser, req.Message)

	result := e.runCycle(ctx, st)
	st.Clamp()

	// The response is already computed; a failed checkpoint only loses
	// resumability, so it is logged rather than failing the interaction.
	if err := e.storage.SaveSession(ctx, st.PlayerID, st.ID, st); err != nil {
		e.logger.Warn("Failed to checkpoint session",
			"player_id", st.PlayerID,
			"session_id", st.ID,
			"error", err)
	}

	return &session.InteractionResponse{
		Success:   true,
		Response:  result.text,
		GameState: e.snapshot(st),
		EducationalInsights: &session.Insights{
			ComplexityScore:  result.complexity,
			ModelTier:        result.tier.String(),
			ComplexityLevel:  "appropriate",
			LearningProgress: "on_track",
			Recommendations:  []string{"Continue current approach", "Maintain engagement level"},
		},
	}
}

// cycleState enumerates the two-node workflow plus its terminal state.
type cycleState int

const (
	stateModelTurn cycleState = iota
	stateActionTurn
	stateDone
)

type cycleResult struct {
	text       string
	complexity float64
	tier       tiers.Tier
	rounds     int
}

// runCycle drives the state machine: model turn, then either done or one
// action turn looping back to the model. The loop-back edge is bounded by
// maxActionRounds so a model that keeps requesting actions cannot spin.
func (e *Engine) runCycle(ctx context.Context, st *session.State) cycleResult {
	var res cycleResult
	var pendingAction *chat.ActionCall

	state := stateModelTurn
	for state != stateDone {
		switch state {
		case stateModelTurn:
			tier, score := e.selector.Select(st.RecentMessages(tiers.RecentWindow))
			res.tier, res.complexity = tier, score

			messages, err := prompts.New().
				WithState(st).
				WithGame(e.game).
				WithActions(e.catalog.Definitions()).
				Build()
			if err != nil {
				// Unreachable with a constructed state; treated like a
				// model failure for safety.
				e.logger.Error("Prompt build failed", "error", err)
				res.text = ModelFallbackMessage
				state = stateDone
				continue
			}

			resp, err := e.llm.Chat(ctx, tier, messages, e.catalog.Definitions())
			if err != nil {
				e.logger.Error("Model invocation failed",
					"player_id", st.PlayerID,
					"tier", tier.String(),
					"error", err)
				res.text = ModelFallbackMessage
				st.AppendMessage(chat.ChatRoleAgent, ModelFallbackMessage)
				state = stateDone
				continue
			}

			if resp.Message != "" {
				st.AppendMessage(chat.ChatRoleAgent, resp.Message)
				st.EngagementScore = engagement.Score(st.EngagementScore, resp.Message)
				res.text = resp.Message
			}

			if resp.Action != nil && res.rounds < e.maxActionRounds {
				pendingAction = resp.Action
				state = stateActionTurn
			} else {
				if resp.Action != nil {
					e.logger.Warn("Action round limit reached, finishing cycle",
						"action", resp.Action.Name,
						"max_rounds", e.maxActionRounds)
				}
				state = stateDone
			}

		case stateActionTurn:
			res.rounds++
			result, err := e.catalog.Execute(ctx, pendingAction.Name, pendingAction.Params)
			if err != nil {
				e.logger.Error("Action execution failed",
					"action", pendingAction.Name,
					"error", err)
				result = fmt.Sprintf("Action %s failed: %v", pendingAction.Name, err)
			} else {
				e.logger.Info("Action executed",
					"action", pendingAction.Name,
					"player_id", st.PlayerID)
			}
			st.AppendMessage(chat.ChatRoleUser,
				fmt.Sprintf("ACTION RESULT [%s]: %s", pendingAction.Name, result))
			pendingAction = nil
			state = stateModelTurn
		}
	}

	if res.text == "" {
		res.text = DefaultResponse
	}
	return res
}

func (e *Engine) snapshot(st *session.State) session.GameSnapshot {
	return session.GameSnapshot{
		SessionID:          st.ID,
		CurrentLevel:       st.CurrentLevel,
		DifficultyLevel:    st.DifficultyLevel,
		EngagementScore:    st.EngagementScore,
		SessionTimeSeconds: time.Since(st.SessionStart).Seconds(),
	}
}

func (e *Engine) failureResponse(st *session.State, err error) *session.InteractionResponse {
	return &session.InteractionResponse{
		Success:  false,
		Error:    err.Error(),
		Response: ErrorFallbackMessage,
		GameState: session.GameSnapshot{
			SessionID:          st.ID,
			CurrentLevel:       st.CurrentLevel,
			DifficultyLevel:    st.DifficultyLevel,
			EngagementScore:    neutralEngagement,
			SessionTimeSeconds: 0,
		},
	}
}
