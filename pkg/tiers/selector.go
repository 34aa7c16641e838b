// Package tiers scores the educational complexity of recent conversation
// and routes each model invocation to a fast or a higher-capability tier.
package tiers

import (
	"strings"

	"github.com/pupilplay/game-engine/pkg/chat"
)

// Tier identifies which model capability class handles an invocation.
type Tier int

const (
	TierFast    Tier = iota // routine interactions
	TierPrimary             // complex interactions
)

func (t Tier) String() string {
	if t == TierPrimary {
		return "primary"
	}
	return "fast"
}

// DefaultThreshold routes scores at or above it to the primary tier.
const DefaultThreshold = 0.6

// RecentWindow is how many trailing messages are scored.
const RecentWindow = 3

// Keyword tables and factor weights are literal, tunable behavior.
// Matching is case-insensitive substring; each factor is set once per
// conversation window regardless of how many messages match.
var (
	explanationWords = []string{"why", "how", "explain"}
	creativityWords  = []string{"create", "design", "make"}
	multiStepWords   = []string{"step", "solve", "break down"}
	visualWords      = []string{"show", "picture", "visual"}
)

const (
	explanationWeight = 0.3
	creativityWeight  = 0.2
	multiStepWeight   = 0.3
	visualWeight      = 0.2
)

// Selector picks a model tier from recent message content.
type Selector struct {
	Threshold float64
}

// NewSelector returns a Selector with the given threshold. Thresholds
// outside (0, 1] fall back to the default.
func NewSelector(threshold float64) Selector {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return Selector{Threshold: threshold}
}

// Score computes the complexity score over the last RecentWindow messages.
// Messages without content contribute nothing.
func (s Selector) Score(messages []chat.ChatMessage) float64 {
	if len(messages) > RecentWindow {
		messages = messages[len(messages)-RecentWindow:]
	}

	var explanation, creativity, multiStep, visual float64
	for _, msg := range messages {
		if msg.Content == "" {
			continue
		}
		content := strings.ToLower(msg.Content)
		if containsAny(content, explanationWords) {
			explanation = explanationWeight
		}
		if containsAny(content, creativityWords) {
			creativity = creativityWeight
		}
		if containsAny(content, multiStepWords) {
			multiStep = multiStepWeight
		}
		if containsAny(content, visualWords) {
			visual = visualWeight
		}
	}

	return explanation + creativity + multiStep + visual
}

// Select scores the messages and picks a tier. A score equal to the
// threshold routes to the primary tier.
func (s Selector) Select(messages []chat.ChatMessage) (Tier, float64) {
	score := s.Score(messages)
	if score >= s.Threshold {
		return TierPrimary, score
	}
	return TierFast, score
}

func containsAny(content string, words []string) bool {
	for _, w := range words {
		if strings.Contains(content, w) {
			return true
		}
	}
	return false
}
