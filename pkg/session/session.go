package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/pupilplay/game-engine/pkg/chat"
)

// Defaults applied when a field is absent from the caller-supplied Context.
const (
	DefaultAccuracy       = 0.75
	DefaultResponseTime   = 12.0
	DefaultLevel          = 1
	DefaultDifficulty     = 0.5
	DefaultEngagement     = 0.7
	DefaultLearningStyle  = "visual"
	DefaultLearningFocus  = "Basic multiplication"
	PerformanceEngagement = 0.7
)

// LearningObjective tracks progress toward a single skill.
// Created and updated by the caller; read-only inside one interaction.
type LearningObjective struct {
	Skill         string    `json:"skill"`
	MasteryLevel  float64   `json:"mastery_level"` // 0.0 to 1.0
	EvidenceCount int       `json:"evidence_count"`
	LastAssessed  time.Time `json:"last_assessed"`
}

// PerformanceMetrics is the player's recent performance, supplied per
// interaction. The engine does not persist it independently.
type PerformanceMetrics struct {
	Accuracy            float64 `json:"accuracy"`
	AverageResponseTime float64 `json:"average_response_time"` // seconds
	ProblemsAttempted   int     `json:"problems_attempted"`
	HintsRequested      int     `json:"hints_requested"`
	EngagementScore     float64 `json:"engagement_score"`
}

// State is the full state of one game session, carried through an
// interaction cycle and checkpointed between interactions.
type State struct {
	ID       uuid.UUID `json:"id"` // session ID
	PlayerID string    `json:"player_id"`
	GameType string    `json:"game_type"`

	ChatHistory []chat.ChatMessage `json:"chat_history,omitempty"`

	LearningObjectives []LearningObjective `json:"learning_objectives,omitempty"`
	MasteryLevels      map[string]float64  `json:"mastery_levels,omitempty"`
	RecentPerformance  PerformanceMetrics  `json:"recent_performance"`

	CurrentLevel     int     `json:"current_level"`
	ExperiencePoints int     `json:"experience_points"`
	DifficultyLevel  float64 `json:"difficulty_level"` // 0.0 to 1.0

	PreferredLearningStyle string    `json:"preferred_learning_style"`
	EngagementScore        float64   `json:"engagement_score"` // 0.0 to 1.0
	SessionStart           time.Time `json:"session_start"`
	TotalPlayTime          int       `json:"total_play_time"` // seconds

	UpdatedAt time.Time `json:"updated_at"`
}

// Context is the optional caller-supplied prior state used to seed a new
// session. Pointer fields distinguish "absent" from zero values; absent
// fields take the documented defaults.
type Context struct {
	SessionID          uuid.UUID           `json:"session_id,omitempty"`
	CurrentLevel       *int                `json:"current_level,omitempty"`
	LearningObjectives []LearningObjective `json:"learning_objectives,omitempty"`
	MasteryLevels      map[string]float64  `json:"mastery_levels,omitempty"`
	RecentPerformance  *PerformanceMetrics `json:"recent_performance,omitempty"`
	ExperiencePoints   *int                `json:"experience_points,omitempty"`
	DifficultyLevel    *float64            `json:"difficulty_level,omitempty"`
	LearningStyle      string              `json:"learning_style,omitempty"`
	TotalPlayTime      *int                `json:"total_play_time,omitempty"`
}

// NewState builds a fresh session state for one player from an optional
// Context, filling defaults and clamping bounded fields.
func NewState(playerID string, gameType string, sc *Context) *State {
	s := &State{
		ID:                     uuid.New(),
		PlayerID:               playerID,
		GameType:               gameType,
		ChatHistory:            make([]chat.ChatMessage, 0),
		CurrentLevel:           DefaultLevel,
		DifficultyLevel:        DefaultDifficulty,
		PreferredLearningStyle: DefaultLearningStyle,
		EngagementScore:        DefaultEngagement,
		RecentPerformance: PerformanceMetrics{
			Accuracy:            DefaultAccuracy,
			AverageResponseTime: DefaultResponseTime,
			EngagementScore:     PerformanceEngagement,
		},
		SessionStart: time.Now(),
	}

	if sc == nil {
		return s
	}

	if sc.SessionID != uuid.Nil {
		s.ID = sc.SessionID
	}
	if sc.CurrentLevel != nil {
		s.CurrentLevel = *sc.CurrentLevel
	}
	if len(sc.LearningObjectives) > 0 {
		s.LearningObjectives = sc.LearningObjectives
	}
	if len(sc.MasteryLevels) > 0 {
		s.MasteryLevels = sc.MasteryLevels
	}
	if sc.RecentPerformance != nil {
		s.RecentPerformance = *sc.RecentPerformance
	}
	if sc.ExperiencePoints != nil {
		s.ExperiencePoints = *sc.ExperiencePoints
	}
	if sc.DifficultyLevel != nil {
		s.DifficultyLevel = *sc.DifficultyLevel
	}
	if sc.LearningStyle != "" {
		s.PreferredLearningStyle = sc.LearningStyle
	}
	if sc.TotalPlayTime != nil {
		s.TotalPlayTime = *sc.TotalPlayTime
	}

	s.Clamp()
	return s
}

// Clamp forces bounded fields back into [0, 1]. Difficulty and engagement
// must stay in range at every observation point.
func (s *State) Clamp() {
	s.DifficultyLevel = clamp01(s.DifficultyLevel)
	s.EngagementScore = clamp01(s.EngagementScore)
}

// AppendMessage adds a message to the conversation history.
func (s *State) AppendMessage(role, content string) {
	s.ChatHistory = append(s.ChatHistory, chat.ChatMessage{Role: role, Content: content})
}

// RecentMessages returns up to the last n messages of the conversation.
func (s *State) RecentMessages(n int) []chat.ChatMessage {
	if n <= 0 || len(s.ChatHistory) == 0 {
		return nil
	}
	if len(s.ChatHistory) <= n {
		return s.ChatHistory
	}
	return s.ChatHistory[len(s.ChatHistory)-n:]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
