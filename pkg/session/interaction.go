package session

import (
	"fmt"

	"github.com/google/uuid"
)

// InteractionRequest is one player message submitted to the engine,
// with optional prior session context.
type InteractionRequest struct {
	PlayerID       string   `json:"player_id"`
	Message        string   `json:"message"`
	SessionContext *Context `json:"session_context,omitempty"`
}

func (r *InteractionRequest) Validate() error {
	if r.PlayerID == "" {
		return fmt.Errorf("player_id cannot be empty")
	}
	if r.Message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return nil
}

// GameSnapshot is the progression view echoed back with every response.
type GameSnapshot struct {
	SessionID          uuid.UUID `json:"session_id"`
	CurrentLevel       int       `json:"current_level"`
	DifficultyLevel    float64   `json:"difficulty_level"`
	EngagementScore    float64   `json:"engagement_score"`
	SessionTimeSeconds float64   `json:"session_time_seconds"`
}

// Insights summarizes how the engine handled the interaction.
type Insights struct {
	ComplexityScore  float64  `json:"complexity_score"`
	ModelTier        string   `json:"model_tier"`
	ComplexityLevel  string   `json:"complexity_level"`
	LearningProgress string   `json:"learning_progress"`
	Recommendations  []string `json:"recommendations,omitempty"`
}

// InteractionResponse is the payload returned for one interaction cycle.
// Success is false only when the failure escaped the cycle's internal
// fallback, e.g. the session could not be prepared before model invocation.
type InteractionResponse struct {
	Success             bool         `json:"success"`
	Response            string       `json:"response"`
	Error               string       `json:"error,omitempty"`
	GameState           GameSnapshot `json:"game_state"`
	EducationalInsights *Insights    `json:"educational_insights,omitempty"`
}
