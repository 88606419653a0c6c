package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyadhanu14/Multi-Agent-Restaurant-Chatbot/internal/agents"
)

func newHTTPServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(newTestService(t, &scriptedSpecialist{name: "menu", reply: "here is the menu"}))
}

func TestHealthEndpoint(t *testing.T) {
	server := newHTTPServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestNewConversationEndpoint(t *testing.T) {
	server := newHTTPServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations", nil)
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ConversationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, WelcomeMessage, resp.Reply)
}

func TestChatEndpoint(t *testing.T) {
	server := newHTTPServer(t)

	body, _ := json.Marshal(TurnRequest{ConversationID: "c1", Message: "show me the menu"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.ConversationID)
	assert.Equal(t, "here is the menu", resp.Reply)
}

func TestChatEndpointRefusesOffTopic(t *testing.T) {
	server := newHTTPServer(t)

	body, _ := json.Marshal(TurnRequest{ConversationID: "c1", Message: "tell me a joke"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp TurnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, agents.RefusalReply, resp.Reply)
}

func TestChatEndpointRejectsBadRequest(t *testing.T) {
	server := newHTTPServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(`{"message": ""}`)))
	req.Header.Set("Content-Type", "application/json")
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
