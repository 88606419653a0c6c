package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient handles API requests to the chatbot API
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a new API client
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("CHATBOT_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 120,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

// Conversation is the server's view of one chat session
type Conversation struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
}

// StartConversation creates a new conversation and returns its greeting
func (c *ApiClient) StartConversation() (*Conversation, error) {
	resp, err := c.httpClient.Post(c.BaseURL+"/api/v1/conversations", "application/json", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to start conversation: %s", string(body))
	}

	var conv Conversation
	if err := json.NewDecoder(resp.Body).Decode(&conv); err != nil {
		return nil, err
	}

	return &conv, nil
}

// SendMessage sends one user turn and returns the assistant's reply
func (c *ApiClient) SendMessage(conversationID, message string) (string, error) {
	data, err := json.Marshal(map[string]string{
		"conversation_id": conversationID,
		"message":         message,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/chat", bytes.NewBuffer(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat request failed: %s", string(body))
	}

	var turn Conversation
	if err := json.NewDecoder(resp.Body).Decode(&turn); err != nil {
		return "", err
	}

	return turn.Reply, nil
}
