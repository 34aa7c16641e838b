// Package engagement estimates player engagement from response sentiment
// cues. The tables and weights are literal, observable behavior; matching
// is case-insensitive substring, each table entry counted once if present.
package engagement

import (
	"math"
	"strings"
)

var (
	// PositiveWords each add 0.1 when present in a response.
	PositiveWords = []string{"great", "excellent", "awesome", "fantastic"}

	// EncouragementPhrases each add 0.05 when present in a response.
	EncouragementPhrases = []string{"try again", "keep going", "you can do it"}
)

const (
	positiveBoost      = 0.1
	encouragementBoost = 0.05
)

// Score updates a prior engagement score from one response text. The
// result never decreases and never exceeds 1.0. An empty response leaves
// the score unchanged.
func Score(prior float64, response string) float64 {
	if response == "" {
		return prior
	}

	content := strings.ToLower(response)

	var boost float64
	for _, w := range PositiveWords {
		if strings.Contains(content, w) {
			boost += positiveBoost
		}
	}
	for _, p := range EncouragementPhrases {
		if strings.Contains(content, p) {
			boost += encouragementBoost
		}
	}

	return math.Min(1.0, prior+boost)
}
