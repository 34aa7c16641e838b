package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pupilplay/game-engine/pkg/actions"
	"github.com/pupilplay/game-engine/pkg/chat"
	"github.com/pupilplay/game-engine/pkg/tiers"
)

const (
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"

	DefaultAnthropicTemperature = 0.7
	DefaultAnthropicMaxTokens   = 2048
)

// AnthropicService implements LLMService for Anthropic Claude.
type AnthropicService struct {
	apiKey       string
	primaryModel string
	fastModel    string
	httpClient   *http.Client
	logger       *slog.Logger
}

// Ensure AnthropicService implements LLMService interface
var _ LLMService = (*AnthropicService)(nil)

type anthropicTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	InputSchema map[string]any `json:"input_schema"`
}

type anthropicChatRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature *float64           `json:"temperature,omitempty"`
	Messages    []chat.ChatMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Tools       []anthropicTool    `json:"tools,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

type anthropicContentBlock struct {
	Type  string         `json:"type"`
	Text  string         `json:"text,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`
}

type anthropicChatResponse struct {
	ID         string                  `json:"id"`
	Type       string                  `json:"type"`
	Role       string                  `json:"role"`
	Content    []anthropicContentBlock `json:"content"`
	Model      string                  `json:"model"`
	StopReason string                  `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewAnthropicService creates a new Anthropic service instance.
func NewAnthropicService(apiKey, primaryModel, fastModel string, logger *slog.Logger) *AnthropicService {
	return &AnthropicService{
		apiKey:       apiKey,
		primaryModel: primaryModel,
		fastModel:    fastModel,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

// InitModel is a no-op; Anthropic does not require explicit initialization.
func (a *AnthropicService) InitModel(ctx context.Context) error {
	return nil
}

// splitChatMessages extracts and combines all system messages into a single
// system prompt and returns the remaining non-system messages.
func (a *AnthropicService) splitChatMessages(messages []chat.ChatMessage) (string, []chat.ChatMessage) {
	var systemParts []string
	var nonSystemMessages []chat.ChatMessage

	for _, msg := range messages {
		if msg.Role == chat.ChatRoleSystem {
			systemParts = append(systemParts, msg.Content)
		} else {
			nonSystemMessages = append(nonSystemMessages, msg)
		}
	}

	return strings.Join(systemParts, "\n\n"), nonSystemMessages
}

// Chat generates one model turn on the tier-selected model.
func (a *AnthropicService) Chat(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error) {
	model := a.fastModel
	if tier == tiers.TierPrimary {
		model = a.primaryModel
	}

	systemPrompt, conversationMessages := a.splitChatMessages(messages)

	temperature := DefaultAnthropicTemperature
	anthropicReq := anthropicChatRequest{
		Model:       model,
		MaxTokens:   DefaultAnthropicMaxTokens,
		Temperature: &temperature,
		Messages:    conversationMessages,
		Stream:      false,
	}
	if systemPrompt != "" {
		anthropicReq.System = systemPrompt
	}
	if len(catalog) > 0 {
		tools := make([]anthropicTool, len(catalog))
		for i, def := range catalog {
			tools[i] = anthropicTool{
				Name:        def.Name,
				Description: def.Description,
				InputSchema: def.Parameters,
			}
		}
		anthropicReq.Tools = tools
	}

	reqBody, err := json.Marshal(anthropicReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicBaseURL+"/messages", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var anthropicResp anthropicChatResponse
	if err := json.Unmarshal(body, &anthropicResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if anthropicResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", anthropicResp.Error.Message)
	}

	chatResp := &chat.ChatResponse{}
	for _, block := range anthropicResp.Content {
		switch block.Type {
		case "text":
			chatResp.Message += block.Text
		case "tool_use":
			if chatResp.Action == nil {
				chatResp.Action = &chat.ActionCall{
					Name:   block.Name,
					Params: block.Input,
				}
			}
		}
	}

	if chatResp.Message == "" && chatResp.Action == nil {
		chatResp.Message = "(no response)"
	}

	a.logger.Debug("Anthropic chat completion",
		"model", model,
		"stop_reason", anthropicResp.StopReason,
		"action_requested", chatResp.Action != nil)

	return chatResp, nil
}
