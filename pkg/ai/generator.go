package ai

import (
	"context"

	"linguachat/pkg/domain"
)

// TextGenerator produces a reply from a system prompt and ordered chat turns.
// The app and its tests depend on this interface rather than a provider.
type TextGenerator interface {
	GenerateChat(ctx context.Context, systemPrompt string, turns []domain.ChatTurn) (string, error)
}

// GeminiGenerator wraps GeminiClient with a fixed model.
type GeminiGenerator struct {
	client *GeminiClient
	model  string
}

// NewGeminiGenerator builds a Gemini-based TextGenerator.
func NewGeminiGenerator(client *GeminiClient, model string) *GeminiGenerator {
	return &GeminiGenerator{client: client, model: model}
}

// GenerateChat implements TextGenerator using Gemini.
func (g *GeminiGenerator) GenerateChat(ctx context.Context, systemPrompt string, turns []domain.ChatTurn) (string, error) {
	return g.client.GenerateChat(ctx, g.model, systemPrompt, turns)
}
