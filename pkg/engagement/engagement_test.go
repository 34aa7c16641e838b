package engagement

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		prior    float64
		response string
		expected float64
	}{
		{
			name:     "empty response leaves engagement unchanged",
			prior:    0.7,
			response: "",
			expected: 0.7,
		},
		{
			name:     "neutral response leaves engagement unchanged",
			prior:    0.7,
			response: "6 x 7 = 42.",
			expected: 0.7,
		},
		{
			name:     "single positive word",
			prior:    0.7,
			response: "Great work on that problem!",
			expected: 0.8,
		},
		{
			name:     "two distinct positive words",
			prior:    0.5,
			response: "Excellent! That answer is fantastic.",
			expected: 0.7,
		},
		{
			name:     "encouragement phrase",
			prior:    0.7,
			response: "Not quite, but keep going!",
			expected: 0.75,
		},
		{
			name:     "positive word plus encouragement",
			prior:    0.6,
			response: "Awesome effort. You can do it!",
			expected: 0.75,
		},
		{
			name:     "repeated word counts once",
			prior:    0.7,
			response: "great great great",
			expected: 0.8,
		},
		{
			name:     "matching is case-insensitive",
			prior:    0.7,
			response: "GREAT JOB! Keep Going!",
			expected: 0.85,
		},
		{
			name:     "capped at 1.0",
			prior:    0.95,
			response: "Great, excellent, awesome, fantastic! Try again and keep going, you can do it!",
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.prior, tt.response)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Score(%.2f, %q) = %v, expected %v", tt.prior, tt.response, got, tt.expected)
			}
		})
	}
}

// Scoring a response never lowers engagement.
func TestScore_Monotonic(t *testing.T) {
	responses := []string{
		"",
		"that is incorrect",
		"great",
		"try again",
		"fantastic, keep going, you can do it",
	}
	for _, prior := range []float64{0.0, 0.3, 0.7, 1.0} {
		for _, resp := range responses {
			if got := Score(prior, resp); got < prior {
				t.Errorf("Score(%.2f, %q) = %v, decreased below prior", prior, resp, got)
			}
		}
	}
}
