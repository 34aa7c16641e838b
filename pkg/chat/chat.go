package chat

const (
	ChatRoleUser   = "user"      // Player
	ChatRoleAgent  = "assistant" // Game master
	ChatRoleSystem = "system"    // Instruction or engine note
)

// ChatMessage represents a single chat message in the conversation.
// The role/content shape is shared by every supported LLM API.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ActionCall is an action the model requests the engine to run,
// named after an entry in the action catalog.
type ActionCall struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// ChatResponse is a single model turn: narrative text, plus an
// optional requested action when the model used the bound catalog.
type ChatResponse struct {
	Message string      `json:"message,omitempty"`
	Action  *ActionCall `json:"action,omitempty"`
}
