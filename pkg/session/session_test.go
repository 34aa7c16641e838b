package session

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pupilplay/game-engine/pkg/chat"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState("player1", "multiplication_runner", nil)

	if s.ID == uuid.Nil {
		t.Error("expected a generated session ID")
	}
	if s.PlayerID != "player1" {
		t.Errorf("expected player1, got %q", s.PlayerID)
	}
	if s.GameType != "multiplication_runner" {
		t.Errorf("expected multiplication_runner, got %q", s.GameType)
	}
	if s.CurrentLevel != DefaultLevel {
		t.Errorf("expected level %d, got %d", DefaultLevel, s.CurrentLevel)
	}
	if s.DifficultyLevel != DefaultDifficulty {
		t.Errorf("expected difficulty %.2f, got %.2f", DefaultDifficulty, s.DifficultyLevel)
	}
	if s.EngagementScore != DefaultEngagement {
		t.Errorf("expected engagement %.2f, got %.2f", DefaultEngagement, s.EngagementScore)
	}
	if s.PreferredLearningStyle != DefaultLearningStyle {
		t.Errorf("expected style %q, got %q", DefaultLearningStyle, s.PreferredLearningStyle)
	}
	if s.RecentPerformance.Accuracy != DefaultAccuracy {
		t.Errorf("expected accuracy %.2f, got %.2f", DefaultAccuracy, s.RecentPerformance.Accuracy)
	}
	if s.RecentPerformance.AverageResponseTime != DefaultResponseTime {
		t.Errorf("expected response time %.1f, got %.1f", DefaultResponseTime, s.RecentPerformance.AverageResponseTime)
	}
	if s.SessionStart.IsZero() {
		t.Error("expected session start to be set")
	}
	if len(s.ChatHistory) != 0 {
		t.Errorf("expected empty chat history, got %d messages", len(s.ChatHistory))
	}
}

func TestNewState_ContextOverrides(t *testing.T) {
	sessionID := uuid.New()
	level := 5
	difficulty := 0.3
	xp := 240
	playTime := 600
	perf := PerformanceMetrics{
		Accuracy:            0.9,
		AverageResponseTime: 6.5,
		ProblemsAttempted:   20,
		EngagementScore:     0.8,
	}

	s := NewState("player1", "multiplication_runner", &Context{
		SessionID:         sessionID,
		CurrentLevel:      &level,
		DifficultyLevel:   &difficulty,
		ExperiencePoints:  &xp,
		TotalPlayTime:     &playTime,
		RecentPerformance: &perf,
		LearningStyle:     "auditory",
		MasteryLevels:     map[string]float64{"times_tables": 0.6},
		LearningObjectives: []LearningObjective{
			{Skill: "times_tables", MasteryLevel: 0.6},
		},
	})

	if s.ID != sessionID {
		t.Errorf("expected session ID %s, got %s", sessionID, s.ID)
	}
	if s.CurrentLevel != 5 {
		t.Errorf("expected level 5, got %d", s.CurrentLevel)
	}
	if s.DifficultyLevel != 0.3 {
		t.Errorf("expected difficulty 0.3, got %.2f", s.DifficultyLevel)
	}
	if s.ExperiencePoints != 240 {
		t.Errorf("expected 240 xp, got %d", s.ExperiencePoints)
	}
	if s.TotalPlayTime != 600 {
		t.Errorf("expected 600s play time, got %d", s.TotalPlayTime)
	}
	if s.RecentPerformance != perf {
		t.Errorf("expected supplied performance metrics, got %+v", s.RecentPerformance)
	}
	if s.PreferredLearningStyle != "auditory" {
		t.Errorf("expected auditory style, got %q", s.PreferredLearningStyle)
	}
	if s.MasteryLevels["times_tables"] != 0.6 {
		t.Errorf("expected mastery map carried over, got %+v", s.MasteryLevels)
	}
	if len(s.LearningObjectives) != 1 {
		t.Errorf("expected 1 learning objective, got %d", len(s.LearningObjectives))
	}
}

func TestNewState_ZeroValueOverrides(t *testing.T) {
	// A pointer to zero is an explicit override, not an absent field.
	level := 0
	difficulty := 0.0

	s := NewState("player1", "multiplication_runner", &Context{
		CurrentLevel:    &level,
		DifficultyLevel: &difficulty,
	})

	if s.CurrentLevel != 0 {
		t.Errorf("expected explicit level 0, got %d", s.CurrentLevel)
	}
	if s.DifficultyLevel != 0.0 {
		t.Errorf("expected explicit difficulty 0.0, got %.2f", s.DifficultyLevel)
	}
}

func TestNewState_ClampsBoundedFields(t *testing.T) {
	difficulty := 1.7
	s := NewState("player1", "multiplication_runner", &Context{
		DifficultyLevel: &difficulty,
	})
	if s.DifficultyLevel != 1.0 {
		t.Errorf("expected difficulty clamped to 1.0, got %.2f", s.DifficultyLevel)
	}

	difficulty = -0.4
	s = NewState("player1", "multiplication_runner", &Context{
		DifficultyLevel: &difficulty,
	})
	if s.DifficultyLevel != 0.0 {
		t.Errorf("expected difficulty clamped to 0.0, got %.2f", s.DifficultyLevel)
	}
}

func TestState_Clamp(t *testing.T) {
	s := &State{DifficultyLevel: 2.0, EngagementScore: -0.5}
	s.Clamp()
	if s.DifficultyLevel != 1.0 {
		t.Errorf("expected difficulty 1.0, got %.2f", s.DifficultyLevel)
	}
	if s.EngagementScore != 0.0 {
		t.Errorf("expected engagement 0.0, got %.2f", s.EngagementScore)
	}
}

func TestState_RecentMessages(t *testing.T) {
	s := NewState("player1", "multiplication_runner", nil)
	s.AppendMessage(chat.ChatRoleUser, "first")
	s.AppendMessage(chat.ChatRoleAgent, "second")
	s.AppendMessage(chat.ChatRoleUser, "third")
	s.AppendMessage(chat.ChatRoleAgent, "fourth")

	recent := s.RecentMessages(3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(recent))
	}
	if recent[0].Content != "second" || recent[2].Content != "fourth" {
		t.Errorf("expected trailing window, got %+v", recent)
	}

	if got := s.RecentMessages(10); len(got) != 4 {
		t.Errorf("expected all 4 messages when window exceeds history, got %d", len(got))
	}
	if got := s.RecentMessages(0); got != nil {
		t.Errorf("expected nil for zero window, got %+v", got)
	}
}

func TestInteractionRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     InteractionRequest
		wantErr string
	}{
		{
			name: "valid",
			req:  InteractionRequest{PlayerID: "player1", Message: "What is 6 x 7?"},
		},
		{
			name:    "missing player id",
			req:     InteractionRequest{Message: "What is 6 x 7?"},
			wantErr: "player_id cannot be empty",
		},
		{
			name:    "missing message",
			req:     InteractionRequest{PlayerID: "player1"},
			wantErr: "message cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("expected error %q, got %v", tt.wantErr, err)
			}
		})
	}
}
