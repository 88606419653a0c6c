package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// OpenAIProvider implements the Provider interface over the OpenAI chat API
type OpenAIProvider struct {
	model       llms.LLM
	temperature float64
	maxTokens   int
}

// NewOpenAIProvider creates an OpenAI provider for the given model name.
// The API key comes from the caller (typically an environment variable).
func NewOpenAIProvider(model, apiKey string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is not set")
	}
	llm, err := openai.New(
		openai.WithModel(model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return &OpenAIProvider{
		model:       llm,
		temperature: 0.2,
		maxTokens:   1024,
	}, nil
}

// Complete implements the Provider interface
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		var role schema.ChatMessageType
		switch msg.Role {
		case RoleSystem:
			role = schema.ChatMessageTypeSystem
		case RoleUser:
			role = schema.ChatMessageTypeHuman
		case RoleAssistant:
			role = schema.ChatMessageTypeAI
		default:
			return "", fmt.Errorf("unsupported message role: %s", msg.Role)
		}
		content = append(content, llms.TextParts(role, msg.Content))
	}

	resp, err := p.model.GenerateContent(ctx, content,
		llms.WithTemperature(p.temperature),
		llms.WithMaxTokens(p.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Content, nil
}

// SetTemperature sets the temperature for completions
func (p *OpenAIProvider) SetTemperature(temp float64) {
	p.temperature = temp
}

// SetMaxTokens sets the max tokens for completions
func (p *OpenAIProvider) SetMaxTokens(tokens int) {
	p.maxTokens = tokens
}
