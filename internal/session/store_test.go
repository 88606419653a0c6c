package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginAssignsUniqueIDs(t *testing.T) {
	store := NewStore()

	a := store.Begin()
	b := store.Begin()
	require.NotEmpty(t, a.ConversationID)
	require.NotEmpty(t, b.ConversationID)
	assert.NotEqual(t, a.ConversationID, b.ConversationID)
	assert.Equal(t, 2, store.Len())
}

func TestGetReturnsSameContext(t *testing.T) {
	store := NewStore()

	conv := store.Begin()
	conv.OutletID = 7

	again := store.Get(conv.ConversationID)
	assert.Same(t, conv, again)
	assert.Equal(t, uint(7), again.OutletID)
}

func TestGetCreatesOnFirstUse(t *testing.T) {
	store := NewStore()

	conv := store.Get("client-minted-id")
	require.NotNil(t, conv)
	assert.Equal(t, "client-minted-id", conv.ConversationID)
	assert.Equal(t, 1, store.Len())

	assert.Same(t, conv, store.Get("client-minted-id"))
}

func TestEndDiscardsContext(t *testing.T) {
	store := NewStore()

	conv := store.Begin()
	conv.OrderID = 42
	store.End(conv.ConversationID)
	assert.Equal(t, 0, store.Len())

	// A later Get starts fresh
	fresh := store.Get(conv.ConversationID)
	assert.Zero(t, fresh.OrderID)
}

func TestConcurrentGet(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Get("shared")
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, store.Len())
}
