package services

import (
	"context"

	"github.com/pupilplay/game-engine/pkg/actions"
	"github.com/pupilplay/game-engine/pkg/chat"
	"github.com/pupilplay/game-engine/pkg/tiers"
)

// LLMService defines the interface for interacting with a chat LLM API.
// Implementations hold two model names, one per tier.
type LLMService interface {
	// InitModel verifies credentials and model availability on startup.
	InitModel(ctx context.Context) error

	// Chat generates one model turn. The action catalog is bound to the
	// invocation so the model may request an action instead of (or along
	// with) narrative text.
	Chat(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error)
}
