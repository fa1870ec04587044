package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const GeminiDefaultModel = "gemini-2.0-flash"

type GeminiProvider struct {
	client    *genai.Client
	modelName string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = GeminiDefaultModel
	}

	return &GeminiProvider{client: client, modelName: model}, nil
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) ([]string, error) {
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(int32(req.MaxTokens))
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Message))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	return candidateTexts(resp), nil
}

// candidateTexts joins the text parts of each candidate.
func candidateTexts(resp *genai.GenerateContentResponse) []string {
	if resp == nil {
		return nil
	}

	texts := make([]string, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		var text strings.Builder
		if cand != nil && cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
		texts = append(texts, text.String())
	}
	return texts
}
