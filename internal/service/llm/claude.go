package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"PortfolioPulse/pkg/logger"
)

// Claude generates text with the Anthropic Messages API. SDK retries are disabled.
type Claude struct {
	client    anthropic.Client
	model     string
	maxTokens int
	temp      float32
	timeout   time.Duration
	log       *logger.Logger
}

func NewClaude(cfg Config, l *logger.Logger) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultClaudeModel
	}
	return &Claude{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: cfg.MaxTokens,
		temp:      cfg.Temperature,
		timeout:   cfg.Timeout,
		log:       l,
	}
}

func (c *Claude) Generate(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if c.temp > 0 {
		params.Temperature = anthropic.Float(float64(c.temp))
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude: %w", err)
	}
	c.log.Debug("claude completion",
		logger.String("model", c.model),
		logger.Duration("took", time.Since(start)),
		logger.Int64("output_tokens", resp.Usage.OutputTokens),
	)

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", errors.New("claude: empty response")
	}
	return out.String(), nil
}
