package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"PortfolioPulse/pkg/logger"
)

// Gemini generates text with the Gemini API. The client is created on first use
// so a missing key only fails the calls that need it.
type Gemini struct {
	cfg Config
	log *logger.Logger

	mu     sync.Mutex
	client *genai.Client
}

func NewGemini(cfg Config, l *logger.Logger) *Gemini {
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	return &Gemini{cfg: cfg, log: l}
}

func (g *Gemini) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	cc := &genai.ClientConfig{
		APIKey:  g.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if g.cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	g.client = client
	return client, nil
}

func (g *Gemini) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := withTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	client, err := g.getClient(ctx)
	if err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(g.cfg.MaxTokens),
	}
	if g.cfg.Temperature > 0 {
		config.Temperature = genai.Ptr(g.cfg.Temperature)
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	start := time.Now()
	resp, err := client.Models.GenerateContent(ctx, g.cfg.Model,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)}, config)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	g.log.Debug("gemini completion", logger.String("model", g.cfg.Model), logger.Duration("took", time.Since(start)))

	var out strings.Builder
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand == nil || cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if part != nil && part.Text != "" {
					out.WriteString(part.Text)
				}
			}
			if out.Len() > 0 {
				break
			}
		}
	}
	if out.Len() == 0 {
		return "", errors.New("gemini: empty response")
	}
	return out.String(), nil
}
