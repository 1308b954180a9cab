package repository

import (
	"context"

	"PortfolioPulse/internal/domain/models"
)

// QuoteProvider returns a daily time series for a provider symbol, most recent first.
type QuoteProvider interface {
	TimeSeries(ctx context.Context, symbol string) (models.TimeSeries, error)
}

// FundamentalsProvider returns the valuation snapshot for a ticker.
type FundamentalsProvider interface {
	Metrics(ctx context.Context, ticker string) (models.Fundamentals, error)
}

// NewsProvider returns company news for a ticker within [from, to] (YYYY-MM-DD, inclusive).
type NewsProvider interface {
	CompanyNews(ctx context.Context, ticker, from, to string) ([]models.NewsItem, error)
}

// AssetSource is the read-only tracked asset list.
type AssetSource interface {
	Assets() []models.Asset
}

type Metrics interface {
	RecordUpstreamCall(provider, outcome string)
	RecordAssetError(source string)
	RecordLastPrice(ticker string, price float64)
	RecordLatency(op string, seconds float64)
}
