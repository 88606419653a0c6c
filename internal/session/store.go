package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/models"
)

// Store holds the ConversationContext for every live conversation. Turns
// within one conversation are sequential, but independent conversations run
// concurrently, so the map itself is mutex-guarded.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*models.ConversationContext
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		conversations: make(map[string]*models.ConversationContext),
	}
}

// Begin starts a new conversation and returns its context
func (s *Store) Begin() *models.ConversationContext {
	conv := &models.ConversationContext{
		ConversationID: uuid.NewString(),
	}
	s.mu.Lock()
	s.conversations[conv.ConversationID] = conv
	s.mu.Unlock()
	return conv
}

// Get returns the context for a conversation id, creating one on first use so
// clients that mint their own ids keep working.
func (s *Store) Get(conversationID string) *models.ConversationContext {
	s.mu.RLock()
	conv, ok := s.conversations[conversationID]
	s.mu.RUnlock()
	if ok {
		return conv
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.conversations[conversationID]; ok {
		return conv
	}
	conv = &models.ConversationContext{ConversationID: conversationID}
	s.conversations[conversationID] = conv
	return conv
}

// End discards a conversation's context
func (s *Store) End(conversationID string) {
	s.mu.Lock()
	delete(s.conversations, conversationID)
	s.mu.Unlock()
}

// Len returns the number of live conversations
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
