// Package finnhub is a REST client for the Finnhub metrics and company-news endpoints.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"PortfolioPulse/internal/domain/models"
	drepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/internal/service/upstream"
	httpkit "PortfolioPulse/pkg/http"
	"PortfolioPulse/pkg/numeric"
)

const (
	DefaultBaseURL = "https://finnhub.io/api/v1"

	fundamentalsProvider = "fundamentals-provider"
	newsProvider         = "news-provider"
)

// Client implements repository.FundamentalsProvider and repository.NewsProvider.
type Client struct {
	apiKey  string
	baseURL string

	metrics *upstream.Caller
	news    *upstream.Caller
}

var (
	_ drepo.FundamentalsProvider = (*Client)(nil)
	_ drepo.NewsProvider         = (*Client)(nil)
)

// New creates a Finnhub client. Both endpoints share opts but are metered under separate provider labels.
func New(apiKey, baseURL string, opts ...upstream.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: upstream.New(fundamentalsProvider, opts...),
		news:    upstream.New(newsProvider, opts...),
	}
}

type metricDTO struct {
	Metric map[string]any `json:"metric"`
}

// Metrics fetches the valuation snapshot. P/E prefers peTTM and falls back to peBasicExclExtraTTM.
func (c *Client) Metrics(ctx context.Context, ticker string) (models.Fundamentals, error) {
	params := map[string][]string{
		"symbol": {ticker},
		"metric": {"all"},
		"token":  {c.apiKey},
	}

	var out models.Fundamentals
	err := c.metrics.Get(ctx, c.baseURL+"/stock/metric", params, func(raw *httpkit.RawResponse) error {
		if err := checkStatus(fundamentalsProvider, raw); err != nil {
			return err
		}
		var dto metricDTO
		if err := json.Unmarshal(raw.Body, &dto); err != nil {
			return statusError(fundamentalsProvider, raw.StatusCode, err)
		}
		out = FundamentalsFromMetrics(dto.Metric)
		return nil
	}, "token")
	if err != nil {
		return models.Fundamentals{}, err
	}
	return out, nil
}

type newsDTO struct {
	Headline string  `json:"headline"`
	Source   string  `json:"source"`
	Datetime any     `json:"datetime"`
	Summary  *string `json:"summary"`
	URL      string  `json:"url"`
}

// CompanyNews fetches news for ticker in [from, to] (YYYY-MM-DD). Items keep provider order.
// A JSON payload that is not an array yields an empty list.
func (c *Client) CompanyNews(ctx context.Context, ticker, from, to string) ([]models.NewsItem, error) {
	params := map[string][]string{
		"symbol": {ticker},
		"from":   {from},
		"to":     {to},
		"token":  {c.apiKey},
	}

	var out []models.NewsItem
	err := c.news.Get(ctx, c.baseURL+"/company-news", params, func(raw *httpkit.RawResponse) error {
		if err := checkStatus(newsProvider, raw); err != nil {
			return err
		}
		items, err := decodeNews(raw)
		if err != nil {
			return err
		}
		out = items
		return nil
	}, "token")
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decodeNews(raw *httpkit.RawResponse) ([]models.NewsItem, error) {
	var envelope any
	if err := json.Unmarshal(raw.Body, &envelope); err != nil {
		return nil, statusError(newsProvider, raw.StatusCode, err)
	}
	if _, ok := envelope.([]any); !ok {
		return []models.NewsItem{}, nil
	}

	var dtos []newsDTO
	if err := json.Unmarshal(raw.Body, &dtos); err != nil {
		return nil, statusError(newsProvider, raw.StatusCode, err)
	}
	items := make([]models.NewsItem, 0, len(dtos))
	for _, d := range dtos {
		item := models.NewsItem{
			Headline: d.Headline,
			Source:   d.Source,
			URL:      d.URL,
		}
		if ts := numeric.Extract(d.Datetime); ts != nil {
			item.Datetime = int64(*ts)
		}
		if d.Summary != nil {
			item.Summary = *d.Summary
		}
		items = append(items, item)
	}
	return items, nil
}

// checkStatus turns a non-2xx reply into an UpstreamError, using the provider's {"error": "..."} text when present.
func checkStatus(provider string, raw *httpkit.RawResponse) error {
	if raw.OK() {
		return nil
	}
	var env struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw.Body, &env); err == nil && strings.TrimSpace(env.Error) != "" {
		return &models.UpstreamError{Provider: provider, Status: raw.StatusCode, Message: env.Error}
	}
	return statusError(provider, raw.StatusCode, nil)
}

func statusError(provider string, status int, err error) error {
	return &models.UpstreamError{
		Provider: provider,
		Status:   status,
		Message:  fmt.Sprintf("%s returned HTTP %d", strings.ReplaceAll(provider, "-", " "), status),
		Err:      err,
	}
}
