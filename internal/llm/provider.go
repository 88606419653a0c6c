package llm

import "context"

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider is the narrow interface to the language engine. The core treats it
// as opaque: it is invoked once per extraction and returns free text.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
