package actions

import (
	"context"
	"fmt"
)

// Catalog action names, as enumerated to the model.
const (
	ActionAdjustDifficulty    = "adjust_difficulty"
	ActionGenerateHint        = "generate_hint"
	ActionCreateProblem       = "create_problem"
	ActionUpdateProgress      = "update_progress"
	ActionTriggerCelebration  = "trigger_celebration"
	ActionGenerateVisualAsset = "generate_visual_asset"
)

// NewCatalog builds the standard six-action catalog for a game topic.
func NewCatalog(topic string) *Registry {
	r := NewRegistry()
	r.Register(adjustDifficulty{})
	r.Register(generateHint{})
	r.Register(createProblem{topic: topic})
	r.Register(updateProgress{})
	r.Register(triggerCelebration{})
	r.Register(generateVisualAsset{})
	return r
}

type adjustDifficulty struct{}

func (adjustDifficulty) Definition() Definition {
	return Definition{
		Name:        ActionAdjustDifficulty,
		Description: "Change problem complexity in real-time",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"new_difficulty_level": map[string]any{
					"type":        "number",
					"description": "Target difficulty between 0.0 and 1.0",
				},
				"adjustment_rationale": map[string]any{
					"type":        "string",
					"description": "Why the difficulty is changing",
				},
			},
			"required": []string{"new_difficulty_level", "adjustment_rationale"},
		},
	}
}

func (adjustDifficulty) Execute(ctx context.Context, params map[string]any) (string, error) {
	level, err := unitFloatParam(params, "new_difficulty_level")
	if err != nil {
		return "", err
	}
	rationale, err := stringParam(params, "adjustment_rationale", true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Difficulty adjusted to %.2f: %s", level, rationale), nil
}

type generateHint struct{}

func (generateHint) Definition() Definition {
	return Definition{
		Name:        ActionGenerateHint,
		Description: "Provide visual or conceptual hint",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"hint_type": map[string]any{
					"type":        "string",
					"description": "Kind of hint, e.g. conceptual, procedural",
				},
				"visual_support": map[string]any{
					"type":        "boolean",
					"description": "Whether the hint should include a visual",
				},
			},
			"required": []string{"hint_type"},
		},
	}
}

func (generateHint) Execute(ctx context.Context, params map[string]any) (string, error) {
	hintType, err := stringParam(params, "hint_type", true)
	if err != nil {
		return "", err
	}
	visual, err := boolParam(params, "visual_support")
	if err != nil {
		return "", err
	}
	if visual {
		return fmt.Sprintf("Generated visual %s hint to guide mathematical thinking", hintType), nil
	}
	return fmt.Sprintf("Generated %s hint to support learning", hintType), nil
}

type createProblem struct {
	topic string
}

func (a createProblem) Definition() Definition {
	return Definition{
		Name:        ActionCreateProblem,
		Description: "Generate new challenge aligned with curriculum",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"difficulty_level": map[string]any{
					"type":        "number",
					"description": "Problem difficulty between 0.0 and 1.0",
				},
				"learning_objectives": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Objectives the problem should exercise",
				},
			},
			"required": []string{"difficulty_level"},
		},
	}
}

func (a createProblem) Execute(ctx context.Context, params map[string]any) (string, error) {
	level, err := unitFloatParam(params, "difficulty_level")
	if err != nil {
		return "", err
	}
	if _, err := stringSliceParam(params, "learning_objectives"); err != nil {
		return "", err
	}
	return fmt.Sprintf("Created new %s problem at difficulty %.2f", a.topic, level), nil
}

type updateProgress struct{}

func (updateProgress) Definition() Definition {
	return Definition{
		Name:        ActionUpdateProgress,
		Description: "Track mastery of specific skills",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"skill_category": map[string]any{
					"type":        "string",
					"description": "Skill being assessed",
				},
				"mastery_level": map[string]any{
					"type":        "number",
					"description": "Observed mastery between 0.0 and 1.0",
				},
			},
			"required": []string{"skill_category", "mastery_level"},
		},
	}
}

func (updateProgress) Execute(ctx context.Context, params map[string]any) (string, error) {
	skill, err := stringParam(params, "skill_category", true)
	if err != nil {
		return "", err
	}
	mastery, err := unitFloatParam(params, "mastery_level")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated %s mastery to %.1f%%", skill, mastery*100), nil
}

type triggerCelebration struct{}

func (triggerCelebration) Definition() Definition {
	return Definition{
		Name:        ActionTriggerCelebration,
		Description: "Initiate success animation and positive reinforcement",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"achievement_context": map[string]any{
					"type":        "string",
					"description": "What the player accomplished",
				},
			},
			"required": []string{"achievement_context"},
		},
	}
}

func (triggerCelebration) Execute(ctx context.Context, params map[string]any) (string, error) {
	achievement, err := stringParam(params, "achievement_context", true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Celebrating achievement: %s", achievement), nil
}

type generateVisualAsset struct{}

func (generateVisualAsset) Definition() Definition {
	return Definition{
		Name:        ActionGenerateVisualAsset,
		Description: "Create educational graphics using the asset pipeline",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"asset_type": map[string]any{
					"type":        "string",
					"description": "Kind of asset, e.g. diagram, sprite",
				},
				"educational_context": map[string]any{
					"type":        "string",
					"description": "Concept the asset should illustrate",
				},
			},
			"required": []string{"asset_type", "educational_context"},
		},
	}
}

func (generateVisualAsset) Execute(ctx context.Context, params map[string]any) (string, error) {
	assetType, err := stringParam(params, "asset_type", true)
	if err != nil {
		return "", err
	}
	educationalContext, err := stringParam(params, "educational_context", true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Generated %s asset for %s", assetType, educationalContext), nil
}
