// Package prompts constructs the chat messages sent to the LLM for one
// interaction cycle. It separates prompt assembly from engine orchestration.
package prompts

import (
	"fmt"
	"strings"

	"github.com/pupilplay/game-engine/pkg/actions"
	"github.com/pupilplay/game-engine/pkg/chat"
	"github.com/pupilplay/game-engine/pkg/session"
)

// DefaultHistoryLimit is the chat history window included in a prompt.
const DefaultHistoryLimit = 20

// Builder constructs the message array for LLM interaction using a fluent
// interface.
type Builder struct {
	state        *session.State
	game         Game
	defs         []actions.Definition
	historyLimit int
}

// New creates a new prompt builder with default settings.
func New() *Builder {
	return &Builder{
		historyLimit: DefaultHistoryLimit,
	}
}

// WithState sets the session state the prompt describes.
func (b *Builder) WithState(s *session.State) *Builder {
	b.state = s
	return b
}

// WithGame sets the game identity embedded in the system prompt.
func (b *Builder) WithGame(g Game) *Builder {
	b.game = g
	return b
}

// WithActions sets the action catalog enumerated to the model.
func (b *Builder) WithActions(defs []actions.Definition) *Builder {
	b.defs = defs
	return b
}

// WithHistoryLimit sets the chat history window size.
func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// Build constructs the final message array for LLM consumption: the system
// prompt followed by the windowed conversation history.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if b.state == nil {
		return nil, fmt.Errorf("session state is required")
	}

	messages := make([]chat.ChatMessage, 0, b.historyLimit+1)
	messages = append(messages, chat.ChatMessage{
		Role:    chat.ChatRoleSystem,
		Content: b.SystemPrompt(),
	})
	messages = append(messages, b.windowedHistory()...)

	return messages, nil
}

// SystemPrompt renders the educational instruction string for the current
// state. It always produces a string; missing fields fall back to defaults.
func (b *Builder) SystemPrompt() string {
	s := b.state

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are an expert %s educator embedded in the %q educational game.\n\n",
		b.game.Subject, b.game.Title()))
	sb.WriteString(fmt.Sprintf("Your primary role is to help %s aged %d-%d master %s through engaging gameplay.\n\n",
		s.PlayerID, b.game.AgeMin, b.game.AgeMax, b.game.Topic))

	sb.WriteString(educationalPhilosophy)
	sb.WriteString("\n\n")

	sb.WriteString("CURRENT GAME CONTEXT:\n")
	sb.WriteString(fmt.Sprintf("- Player: %s\n", s.PlayerID))
	sb.WriteString(fmt.Sprintf("- Current Level: %d\n", s.CurrentLevel))
	sb.WriteString(fmt.Sprintf("- Difficulty Level: %.2f\n", s.DifficultyLevel))
	sb.WriteString(fmt.Sprintf("- Recent Accuracy: %.1f%%\n", s.RecentPerformance.Accuracy*100))
	sb.WriteString(fmt.Sprintf("- Average Response Time: %.1f\n", s.RecentPerformance.AverageResponseTime))
	sb.WriteString(fmt.Sprintf("- Learning Focus: %s\n\n", b.learningFocus()))

	sb.WriteString("AVAILABLE GAME ACTIONS:\n")
	for _, def := range b.defs {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", def.Name, def.Description))
	}
	sb.WriteString("\n")

	sb.WriteString(communicationStyle)

	return sb.String()
}

// learningFocus joins objective skill names, or falls back to the default
// phrase when the session carries no objectives.
func (b *Builder) learningFocus() string {
	if len(b.state.LearningObjectives) == 0 {
		return session.DefaultLearningFocus
	}
	skills := make([]string, len(b.state.LearningObjectives))
	for i, obj := range b.state.LearningObjectives {
		skills[i] = obj.Skill
	}
	return strings.Join(skills, ", ")
}

// windowedHistory returns the trailing historyLimit messages.
func (b *Builder) windowedHistory() []chat.ChatMessage {
	history := b.state.ChatHistory
	if len(history) <= b.historyLimit {
		return history
	}
	return history[len(history)-b.historyLimit:]
}
