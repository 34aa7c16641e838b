// Package actions defines the catalog of named game actions the model may
// request during an interaction. In this engine the actions acknowledge
// rather than mutate; real effects belong to the game client.
package actions

import (
	"context"
	"fmt"
	"sync"
)

// Definition describes one action to the model. Parameters is a JSON
// Schema object, in the shape LLM tool-binding APIs expect.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Action is a single named operation the model can request.
type Action interface {
	Definition() Definition

	// Execute runs the action with model-supplied parameters and returns
	// a confirmation string. Malformed or out-of-range parameters return
	// an error rather than propagating silently.
	Execute(ctx context.Context, params map[string]any) (string, error)
}

// Registry holds the action catalog and dispatches execution by name.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
	order   []string // registration order, for stable prompt enumeration
}

func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
	}
}

// Register adds an action to the catalog. Re-registering a name replaces
// the previous action without changing its position.
func (r *Registry) Register(a Action) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := a.Definition().Name
	if _, exists := r.actions[name]; !exists {
		r.order = append(r.order, name)
	}
	r.actions[name] = a
}

// Get retrieves an action by name.
func (r *Registry) Get(name string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// Definitions returns the catalog in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.actions[name].Definition())
	}
	return defs
}

// Execute dispatches a named action with the given parameters.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (string, error) {
	a, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown action: %s", name)
	}
	return a.Execute(ctx, params)
}
