package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/logger"
)

// GeminiProvider implements Provider against the Gemini API
// ⭐ SSOT: LLM 호출은 이 프로바이더를 통해서만
type GeminiProvider struct {
	client *genai.Client
	model  string
	logger *logger.Logger
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini-backed provider
func NewGeminiProvider(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client failed: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  cfg.Model,
		logger: log,
	}, nil
}

// Generate sends a generateContent request and returns the answer text
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
