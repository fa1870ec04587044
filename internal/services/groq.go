package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	GroqBaseURL      = "https://api.groq.com/openai/v1"
	GroqDefaultModel = "llama-3.1-8b-instant"
)

// GroqProvider talks to Groq through its OpenAI-compatible chat completions
// endpoint. Any OpenAI-compatible server works with a different baseURL.
type GroqProvider struct {
	client *openai.Client
	model  string
}

func NewGroqProvider(apiKey, baseURL, model string) *GroqProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	cfg.BaseURL = baseURL

	if model == "" {
		model = GroqDefaultModel
	}

	return &GroqProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *GroqProvider) Name() string { return "groq" }

func (p *GroqProvider) Complete(ctx context.Context, req CompletionRequest) ([]string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	texts := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		texts = append(texts, choice.Message.Content)
	}
	return texts, nil
}
