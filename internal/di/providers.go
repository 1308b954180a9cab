package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"PortfolioPulse/internal/domain/models"
	"PortfolioPulse/internal/domain/repository"
	dservice "PortfolioPulse/internal/domain/service"
	"PortfolioPulse/internal/handler/api"
	"PortfolioPulse/internal/handler/web"
	"PortfolioPulse/internal/registry"
	"PortfolioPulse/internal/service/cache"
	"PortfolioPulse/internal/service/finnhub"
	"PortfolioPulse/internal/service/llm"
	briefmetrics "PortfolioPulse/internal/service/metrics"
	"PortfolioPulse/internal/service/ratelimit"
	"PortfolioPulse/internal/service/twelvedata"
	"PortfolioPulse/internal/service/upstream"
	"PortfolioPulse/internal/usecase"
	"PortfolioPulse/pkg/config"
	xhttp "PortfolioPulse/pkg/http"
	"PortfolioPulse/pkg/logger"
	"PortfolioPulse/pkg/metrics"
	"PortfolioPulse/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(logger.String("env", cfg.Environment)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() repository.Metrics {
	briefmetrics.Register()
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvideRegistry builds the tracked asset list, falling back to the built-in one.
func ProvideRegistry(cfg *config.Config) (*registry.Registry, error) {
	if len(cfg.Assets) == 0 {
		return registry.Default(), nil
	}
	assets := make([]models.Asset, 0, len(cfg.Assets))
	for _, a := range cfg.Assets {
		assets = append(assets, models.Asset{
			Name:           a.Name,
			Ticker:         a.Ticker,
			Exchange:       a.Exchange,
			Strategy:       a.Strategy,
			ProviderSymbol: a.ProviderSymbol,
		})
	}
	return registry.New(assets)
}

// ProvideCache creates the upstream response cache selected by cache.backend.
func ProvideCache(cfg *config.Config, l *logger.Logger) cache.BytesCache {
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		return cache.NewTTLCache()
	case config.CacheRedis, config.CacheLayered:
		rc := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			l.Warn("redis cache unreachable, reads will miss", logger.String("addr", cfg.Cache.Redis.Addr), logger.Error(err))
		}
		if cfg.Cache.Backend == config.CacheLayered {
			return cache.NewLayered(rc, cfg.Cache.MemoryTTL)
		}
		return rc
	default:
		return cache.Nop{}
	}
}

func upstreamOptions(timeout time.Duration, ratePerMinute int, cfg *config.Config, bc cache.BytesCache, m repository.Metrics, l *logger.Logger) []upstream.Option {
	return []upstream.Option{
		upstream.WithTimeout(timeout),
		upstream.WithRatePerMinute(ratePerMinute),
		upstream.WithCache(bc, cfg.Cache.TTL),
		upstream.WithMetrics(m),
		upstream.WithLogger(l),
	}
}

// ProvideQuoteProvider creates the Twelve Data client.
func ProvideQuoteProvider(cfg *config.Config, bc cache.BytesCache, m repository.Metrics, l *logger.Logger) repository.QuoteProvider {
	return twelvedata.New(
		cfg.Quote.APIKey,
		cfg.Quote.BaseURL,
		cfg.Quote.OutputSize,
		upstreamOptions(cfg.Quote.Timeout, cfg.Quote.RatePerMinute, cfg, bc, m, l)...,
	)
}

// ProvideFinnhubClient creates the Finnhub client used for fundamentals and news.
func ProvideFinnhubClient(cfg *config.Config, bc cache.BytesCache, m repository.Metrics, l *logger.Logger) *finnhub.Client {
	return finnhub.New(
		cfg.Fundamentals.APIKey,
		cfg.Fundamentals.BaseURL,
		upstreamOptions(cfg.Fundamentals.Timeout, cfg.Fundamentals.RatePerMinute, cfg, bc, m, l)...,
	)
}

// ProvideTextGenerator creates the summarizer backend selected by summarizer.provider.
func ProvideTextGenerator(cfg *config.Config, l *logger.Logger) (dservice.TextGenerator, error) {
	return llm.New(llm.Config{
		Provider:    cfg.Summarizer.Provider,
		APIKey:      cfg.Summarizer.APIKey,
		Model:       cfg.Summarizer.Model,
		MaxTokens:   cfg.Summarizer.MaxTokens,
		Temperature: cfg.Summarizer.Temperature,
		Timeout:     cfg.Summarizer.Timeout,
		BaseURL:     cfg.Summarizer.BaseURL,
	}, l)
}

// ProvideDashboard creates the quote/fundamentals aggregator.
func ProvideDashboard(
	cfg *config.Config,
	reg *registry.Registry,
	quotes repository.QuoteProvider,
	fh *finnhub.Client,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.Dashboard {
	return usecase.NewDashboard(usecase.DashboardDeps{
		Assets:       reg,
		Quotes:       quotes,
		Fundamentals: fh,
		Keys: map[string]string{
			usecase.QuoteKeyName:        cfg.Quote.APIKey,
			usecase.FundamentalsKeyName: cfg.Fundamentals.APIKey,
		},
		Workers: cfg.Dashboard.Workers,
		Metrics: m,
		Logger:  l,
	})
}

// ProvideNews creates the news aggregator.
func ProvideNews(cfg *config.Config, fh *finnhub.Client, m repository.Metrics, l *logger.Logger) *usecase.News {
	return usecase.NewNews(usecase.NewsDeps{
		Provider: fh,
		APIKey:   cfg.Fundamentals.APIKey,
		Workers:  cfg.News.Workers,
		Metrics:  m,
		Logger:   l,
	})
}

// ProvideBrief creates the news brief use case.
func ProvideBrief(cfg *config.Config, news *usecase.News, gen dservice.TextGenerator, l *logger.Logger) *usecase.Brief {
	return usecase.NewBrief(usecase.BriefDeps{
		News:              news,
		Summarizer:        usecase.NewSummarizer(gen, cfg.Summarizer.Provider),
		SummarizerKeyName: llm.KeyName(cfg.Summarizer.Provider),
		SummarizerKey:     cfg.Summarizer.APIKey,
		NewsKey:           cfg.Fundamentals.APIKey,
		NewsLimit:         cfg.News.BriefLimit,
		Logger:            l,
	})
}

// ProvideBriefLimiter creates the per-client limiter guarding summarizer calls.
func ProvideBriefLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Brief.RateLimit.Capacity, cfg.Brief.RateLimit.RefillPerSec)
}

// ProvideHTTPHandler registers every route.
func ProvideHTTPHandler(
	cfg *config.Config,
	l *logger.Logger,
	dashboard *usecase.Dashboard,
	news *usecase.News,
	brief *usecase.Brief,
	limiter *ratelimit.Limiter,
) xhttp.Handler {
	return xhttp.Handlers{
		api.NewHealthHandler(),
		api.NewDashboardHandler(l, dashboard),
		api.NewNewsHandler(l, news, cfg.News.ListLimit, cfg.News.DefaultDaysBack),
		api.NewBriefHandler(l, brief, limiter.Allow, cfg.News.DefaultDaysBack),
		web.NewHandler(l, dashboard, brief, limiter.Allow, cfg.News.DefaultDaysBack),
	}
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler xhttp.Handler,
	bc cache.BytesCache,
	limiter *ratelimit.Limiter,
) *server.App {
	return server.New(cfg, l, handler, bc, limiter)
}
