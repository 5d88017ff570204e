// Package llm provides text-generation clients behind a single interface.
package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/config"
)

// Generator turns a prompt into free text
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Client is a Generator that holds resources
type Client interface {
	Generator
	Close() error
}

// New builds the client selected by cfg.Provider
func New(ctx context.Context, cfg config.LLMConfig, log *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOllama, "":
		return NewOllamaClient(cfg.BaseURL, cfg.Model, cfg.Timeout, log), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)
	case config.ProviderVertexAI:
		return NewVertexAIClient(ctx, cfg.Project, cfg.Location, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
