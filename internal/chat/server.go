package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server exposes the chat service over HTTP and WebSocket
type Server struct {
	router  *gin.Engine
	service *Service
}

// NewServer creates the chat server and configures its routes
func NewServer(service *Service) *Server {
	server := &Server{
		router:  gin.Default(),
		service: service,
	}
	server.setupRoutes()
	return server
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api/v1")
	{
		api.POST("/conversations", s.handleNewConversation)
		api.POST("/chat", s.handleChat)
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Restaurant chatbot API is running"})
}

// ConversationResponse bootstraps a chat session for a client
type ConversationResponse struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

func (s *Server) handleNewConversation(c *gin.Context) {
	conv, greeting := s.service.Begin()
	c.JSON(http.StatusOK, ConversationResponse{
		ConversationID: conv.ConversationID,
		Reply:          greeting,
	})
}

// TurnRequest is one user message within a conversation
type TurnRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
}

// TurnResponse is the assistant's reply for one turn
type TurnResponse struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req TurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := s.service.HandleTurn(c.Request.Context(), req.ConversationID, req.Message)
	c.JSON(http.StatusOK, TurnResponse{
		ConversationID: req.ConversationID,
		Reply:          reply,
	})
}
