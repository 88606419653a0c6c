package agents

import (
	"context"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/llm"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/ratelimit"
)

// Intent identifies which specialist a message is routed to
type Intent string

const (
	IntentOutlet   Intent = "outlet"
	IntentMenu     Intent = "menu"
	IntentOrdering Intent = "ordering"
	IntentStatus   Intent = "status"
	IntentClarify  Intent = "clarify"
	IntentRefuse   Intent = "refuse"
)

// Specialist is the single invocation shape shared by the domain handlers.
// Each specialist owns one narrow slice of the conversation; it receives the
// user's message verbatim along with the shared conversation context, which it
// may read and extend.
type Specialist interface {
	Name() string
	Handle(ctx context.Context, conv *models.ConversationContext, message string) (string, error)
}

// BaseAgent carries what every specialist needs: the language engine and the
// admission limiter guarding every call to it.
type BaseAgent struct {
	name     string
	provider llm.Provider
	limiter  *ratelimit.Limiter
}

// NewBaseAgent creates the shared agent core
func NewBaseAgent(name string, provider llm.Provider, limiter *ratelimit.Limiter) *BaseAgent {
	return &BaseAgent{
		name:     name,
		provider: provider,
		limiter:  limiter,
	}
}

// Name returns the specialist's name
func (a *BaseAgent) Name() string {
	return a.name
}

// extract runs one rate-limited extraction call against the language engine
// and decodes the JSON answer into v.
func (a *BaseAgent) extract(ctx context.Context, instructions, message string, v interface{}) error {
	if err := a.limiter.Admit(ctx); err != nil {
		return err
	}
	return llm.CompleteJSON(ctx, a.provider, instructions, message, v)
}
