package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"PortfolioPulse/internal/domain/models"
	dservice "PortfolioPulse/internal/domain/service"
	briefmetrics "PortfolioPulse/internal/service/metrics"
	"PortfolioPulse/pkg/logger"
)

// SystemInstruction is the fixed instruction sent with every brief request.
const SystemInstruction = `You write a portfolio news brief for monitoring purposes.
Rules:
- Be factual and concise.
- Do not give financial advice or buy/sell/hold recommendations.
- Use only the news supplied in newsByTicker. Do not invent events, figures or sources.
- For every ticker in "tickers" with an empty news list, state explicitly: "<TICKER>: no relevant news in the period."
- Follow output_format. Answer in Markdown.`

var (
	ErrNoTickers = errors.New("at least one ticker is required")
)

// SummarizationError is a failed summarizer call. It fails the whole brief.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string { return "summarization failed: " + e.Err.Error() }
func (e *SummarizationError) Unwrap() error { return e.Err }

type outputFormat struct {
	PortfolioSummary []string        `json:"portfolio_summary"`
	PerTicker        perTickerFormat `json:"per_ticker"`
}

type perTickerFormat struct {
	Bullets   string `json:"bullets"`
	WatchNext string `json:"watch_next"`
	Impact    string `json:"impact"`
}

type briefPayload struct {
	Period       string                       `json:"period"`
	Tickers      []string                     `json:"tickers"`
	NewsByTicker map[string][]models.NewsItem `json:"newsByTicker"`
	OutputFormat outputFormat                 `json:"output_format"`
}

var defaultOutputFormat = outputFormat{
	PortfolioSummary: []string{
		"3-6 bullets with recurring themes and common risks",
		"List of tickers with the most activity or relevant news",
	},
	PerTicker: perTickerFormat{
		Bullets:   "3-6 bullets per ticker (what happened + why it matters)",
		WatchNext: "1-2 bullets: what to watch next",
		Impact:    "🟢/🟡/🔴 (low/medium/high) with a one-sentence justification",
	},
}

// PeriodDescription renders the period label used in the payload.
func PeriodDescription(daysBack int) string {
	if daysBack == 1 {
		return "last 1 day"
	}
	return fmt.Sprintf("last %d days", daysBack)
}

// Summarizer turns a BriefContext into the summarizer request and returns the raw text.
type Summarizer struct {
	gen      dservice.TextGenerator
	provider string
}

func NewSummarizer(gen dservice.TextGenerator, provider string) *Summarizer {
	return &Summarizer{gen: gen, provider: provider}
}

// BuildPrompt returns the system instruction and the JSON user payload. Every ticker in bc.Tickers
// appears in newsByTicker, with an empty list when no news was supplied.
func BuildPrompt(bc models.BriefContext) (system, user string, err error) {
	news := make(map[string][]models.NewsItem, len(bc.Tickers))
	for _, t := range bc.Tickers {
		items := bc.NewsByTicker[t]
		if items == nil {
			items = []models.NewsItem{}
		}
		news[t] = items
	}
	tickers := bc.Tickers
	if tickers == nil {
		tickers = []string{}
	}
	b, err := json.Marshal(briefPayload{
		Period:       bc.PeriodDescription,
		Tickers:      tickers,
		NewsByTicker: news,
		OutputFormat: defaultOutputFormat,
	})
	if err != nil {
		return "", "", err
	}
	return SystemInstruction, string(b), nil
}

// Summarize calls the generator once. The response is returned unmodified.
func (s *Summarizer) Summarize(ctx context.Context, bc models.BriefContext) (string, error) {
	system, user, err := BuildPrompt(bc)
	if err != nil {
		return "", fmt.Errorf("build prompt: %w", err)
	}

	start := time.Now()
	text, err := s.gen.Generate(ctx, system, user)
	briefmetrics.SummarizerLatency.WithLabelValues(s.provider).Observe(time.Since(start).Seconds())
	if err != nil {
		briefmetrics.SummarizerErrors.WithLabelValues(s.provider).Inc()
		return "", &SummarizationError{Err: err}
	}
	return text, nil
}

// Brief fetches news for the requested tickers and summarizes it.
type Brief struct {
	news       *News
	summarizer *Summarizer
	keyName    string
	apiKey     string
	newsAPIKey string
	limit      int
	log        *logger.Logger
}

type BriefDeps struct {
	News       *News
	Summarizer *Summarizer
	// SummarizerKeyName is the environment variable reported when SummarizerKey is empty.
	SummarizerKeyName string
	SummarizerKey     string
	NewsKey           string
	// NewsLimit caps items per ticker forwarded to the summarizer.
	NewsLimit int
	Logger    *logger.Logger
}

func NewBrief(d BriefDeps) *Brief {
	uc := &Brief{
		news:       d.News,
		summarizer: d.Summarizer,
		keyName:    d.SummarizerKeyName,
		apiKey:     d.SummarizerKey,
		newsAPIKey: d.NewsKey,
		limit:      d.NewsLimit,
		log:        d.Logger,
	}
	if uc.limit <= 0 {
		uc.limit = 12
	}
	if uc.keyName == "" {
		uc.keyName = "SUMMARIZER_API_KEY"
	}
	if uc.log == nil {
		uc.log = logger.NewNop()
	}
	return uc
}

// Generate checks credentials, fetches news (capped per ticker) and returns the summarizer text.
// Missing credentials yield *models.ConfigError before any network call; a summarizer failure
// yields *SummarizationError.
func (uc *Brief) Generate(ctx context.Context, tickers []string, daysBack int) (*models.BriefResult, error) {
	if err := models.RequireKeys(
		[]string{FundamentalsKeyName, uc.keyName},
		map[string]string{FundamentalsKeyName: uc.newsAPIKey, uc.keyName: uc.apiKey},
	); err != nil {
		return nil, err
	}

	tickers = NormalizeTickers(tickers)
	if len(tickers) == 0 {
		return nil, ErrNoTickers
	}

	batch, err := uc.news.Fetch(ctx, tickers, daysBack, uc.limit)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, items := range batch.ByTicker {
		total += len(items)
	}
	briefmetrics.NewsItems.Observe(float64(total))

	text, err := uc.summarizer.Summarize(ctx, models.BriefContext{
		PeriodDescription: PeriodDescription(daysBack),
		Tickers:           tickers,
		NewsByTicker:      batch.ByTicker,
	})
	if err != nil {
		uc.log.Error("brief summarization failed", logger.Strings("tickers", tickers), logger.Error(err))
		return nil, err
	}

	uc.log.Info("brief generated",
		logger.Int("tickers", len(tickers)),
		logger.Int("news_items", total),
		logger.Int("news_errors", len(batch.Errors)),
	)
	return &models.BriefResult{Brief: text}, nil
}
