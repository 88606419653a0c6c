package chat

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/agents"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/monitoring"
	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/session"
)

// TransientReply is returned when the store or the language engine fails
// mid-turn. The failure is logged and rolled up; the session itself survives.
const TransientReply = "I encountered an error processing that. Please try again."

// WelcomeMessage greets a freshly bootstrapped conversation
const WelcomeMessage = `Welcome to your Food Ordering Assistant!

I can help you with:
- Outlets - find restaurants in a city
- Menus - browse items, or filter by cuisine, veg/spicy, or price
- Orders - place a new order for pickup or delivery
- Order status - check the status of an existing order

Try asking me:
- "Show me the outlets in Seattle"
- "What vegetarian options do you have at outlet #1?"
- "I want to order 2 Chicken Tikka Masala for delivery"
- "What is the status of order #number?"

What would you like to do today?`

// Service is the conversational turn boundary exposed to every transport. It
// never raises: all internal failures become a user-visible reply string.
type Service struct {
	router   *agents.Router
	sessions *session.Store
	monitor  *monitoring.Monitor
}

// NewService wires the turn boundary
func NewService(router *agents.Router, sessions *session.Store, monitor *monitoring.Monitor) *Service {
	return &Service{
		router:   router,
		sessions: sessions,
		monitor:  monitor,
	}
}

// Begin bootstraps a new conversation and returns its context and greeting
func (s *Service) Begin() (*models.ConversationContext, string) {
	return s.sessions.Begin(), WelcomeMessage
}

// HandleTurn executes one conversation turn and always produces a reply.
// Failures from the router, the stores, or the language engine are converted
// here, never propagated past this boundary.
func (s *Service) HandleTurn(ctx context.Context, conversationID, message string) (reply string) {
	start := time.Now()
	conv := s.sessions.Get(conversationID)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("panic handling turn for conversation %s: %v", conversationID, r)
			reply = TransientReply
		}
		s.monitor.RecordTurn(conv.LastIntent, time.Since(start))
	}()

	message = strings.TrimSpace(message)
	if message == "" {
		return "Please enter a question."
	}

	reply, err := s.router.Route(ctx, conv, message)
	if err != nil {
		log.Printf("turn failed for conversation %s: %v", conversationID, err)
		return TransientReply
	}
	return reply
}
