// Package llm adapts hosted language models to the service.TextGenerator interface.
package llm

import (
	"context"
	"fmt"
	"time"

	dservice "PortfolioPulse/internal/domain/service"
	"PortfolioPulse/pkg/logger"
)

const (
	ProviderClaude = "claude"
	ProviderGemini = "gemini"

	DefaultClaudeModel = "claude-sonnet-4-5"
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultMaxTokens   = 2048
)

// Config selects and tunes one backend.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	BaseURL     string
}

// KeyName is the environment variable that carries the credential for provider.
func KeyName(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}

// New builds the backend named by cfg.Provider.
func New(cfg Config, l *logger.Logger) (dservice.TextGenerator, error) {
	if l == nil {
		l = logger.NewNop()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	switch cfg.Provider {
	case ProviderClaude, "":
		return NewClaude(cfg, l), nil
	case ProviderGemini:
		return NewGemini(cfg, l), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
