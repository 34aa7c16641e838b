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
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	DefaultGeminiTemperature = 0.7
	DefaultGeminiMaxTokens   = 2048
)

// GeminiService implements LLMService for the Google Gemini API.
// The primary model serves complex interactions, the fast model routine ones.
type GeminiService struct {
	apiKey       string
	primaryModel string
	fastModel    string
	httpClient   *http.Client
	logger       *slog.Logger
}

// Ensure GeminiService implements LLMService interface
var _ LLMService = (*GeminiService)(nil)

type geminiFunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

type geminiPart struct {
	Text         string              `json:"text,omitempty"`
	FunctionCall *geminiFunctionCall `json:"functionCall,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiFunctionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

type geminiTool struct {
	FunctionDeclarations []geminiFunctionDeclaration `json:"functionDeclarations"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	Tools             []geminiTool            `json:"tools,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Error      *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, primaryModel, fastModel string, logger *slog.Logger) *GeminiService {
	return &GeminiService{
		apiKey:       apiKey,
		primaryModel: primaryModel,
		fastModel:    fastModel,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

// InitModel verifies both model tiers are reachable with the configured key.
func (g *GeminiService) InitModel(ctx context.Context) error {
	for _, model := range []string{g.fastModel, g.primaryModel} {
		url := fmt.Sprintf("%s/models/%s", geminiBaseURL, model)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("x-goog-api-key", g.apiKey)

		resp, err := g.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach Gemini API: %w", err)
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("model %s not available (status %d): %s", model, resp.StatusCode, string(body))
		}
		g.logger.Debug("Gemini model verified", "model", model)
	}
	return nil
}

// Chat generates one model turn on the tier-selected model.
func (g *GeminiService) Chat(ctx context.Context, tier tiers.Tier, messages []chat.ChatMessage, catalog []actions.Definition) (*chat.ChatResponse, error) {
	model := g.fastModel
	if tier == tiers.TierPrimary {
		model = g.primaryModel
	}

	systemPrompt, contents := splitGeminiMessages(messages)

	temperature := DefaultGeminiTemperature
	geminiReq := geminiRequest{
		Contents: contents,
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     &temperature,
			MaxOutputTokens: DefaultGeminiMaxTokens,
		},
	}
	if systemPrompt != "" {
		geminiReq.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		}
	}
	if len(catalog) > 0 {
		decls := make([]geminiFunctionDeclaration, len(catalog))
		for i, def := range catalog {
			decls[i] = geminiFunctionDeclaration{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			}
		}
		geminiReq.Tools = []geminiTool{{FunctionDeclarations: decls}}
	}

	reqBody, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", geminiBaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if geminiResp.Error != nil {
		return nil, fmt.Errorf("API error (%s): %s", geminiResp.Error.Status, geminiResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if len(geminiResp.Candidates) == 0 {
		return nil, fmt.Errorf("API returned no candidates")
	}

	chatResp := &chat.ChatResponse{}
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		if part.Text != "" {
			chatResp.Message += part.Text
		}
		if part.FunctionCall != nil && chatResp.Action == nil {
			chatResp.Action = &chat.ActionCall{
				Name:   part.FunctionCall.Name,
				Params: part.FunctionCall.Args,
			}
		}
	}

	if chatResp.Message == "" && chatResp.Action == nil {
		chatResp.Message = "(no response)"
	}

	g.logger.Debug("Gemini chat completion",
		"model", model,
		"finish_reason", geminiResp.Candidates[0].FinishReason,
		"action_requested", chatResp.Action != nil)

	return chatResp, nil
}

// splitGeminiMessages combines system messages into a single system
// instruction and maps the rest to Gemini roles ("user" / "model").
func splitGeminiMessages(messages []chat.ChatMessage) (string, []geminiContent) {
	var systemParts []string
	contents := make([]geminiContent, 0, len(messages))

	for _, msg := range messages {
		if msg.Role == chat.ChatRoleSystem {
			systemParts = append(systemParts, msg.Content)
			continue
		}
		role := "user"
		if msg.Role == chat.ChatRoleAgent {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}

	return strings.Join(systemParts, "\n\n"), contents
}
