package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"PortfolioPulse/internal/domain/models"
	domrepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/pkg/logger"
	"PortfolioPulse/pkg/metrics"
	"PortfolioPulse/pkg/util"
)

// News fetches recent company news per ticker with per-ticker failure isolation.
type News struct {
	provider domrepo.NewsProvider
	apiKey   string
	workers  int
	metrics  domrepo.Metrics
	log      *logger.Logger
	now      func() time.Time
}

type NewsDeps struct {
	Provider domrepo.NewsProvider
	APIKey   string
	Workers  int
	Metrics  domrepo.Metrics
	Logger   *logger.Logger
	Now      func() time.Time
}

func NewNews(d NewsDeps) *News {
	uc := &News{
		provider: d.Provider,
		apiKey:   d.APIKey,
		workers:  d.Workers,
		metrics:  d.Metrics,
		log:      d.Logger,
		now:      d.Now,
	}
	if uc.workers <= 0 {
		uc.workers = 1
	}
	if uc.metrics == nil {
		uc.metrics = metrics.Nop{}
	}
	if uc.log == nil {
		uc.log = logger.NewNop()
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc
}

// NormalizeTickers trims, drops blanks and removes repeats, keeping first occurrences.
func NormalizeTickers(tickers []string) []string {
	cleaned := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return util.UniqueStrings(cleaned)
}

// Fetch returns up to limit items per ticker for the window [today-daysBack, today] (UTC dates),
// in provider order. limit <= 0 keeps everything. Every requested ticker has an entry in ByTicker;
// a failed ticker maps to an empty list and an AssetError with source news-provider.
func (uc *News) Fetch(ctx context.Context, tickers []string, daysBack, limit int) (*models.NewsBatch, error) {
	if err := models.RequireKeys([]string{FundamentalsKeyName}, map[string]string{FundamentalsKeyName: uc.apiKey}); err != nil {
		return nil, err
	}

	tickers = NormalizeTickers(tickers)
	from, to := util.DateWindow(uc.now(), daysBack)

	type result struct {
		items []models.NewsItem
		err   error
	}
	results := make([]result, len(tickers))

	var g errgroup.Group
	g.SetLimit(uc.workers)
	for i, t := range tickers {
		g.Go(func() error {
			items, err := uc.provider.CompanyNews(ctx, t, from, to)
			results[i] = result{items: items, err: err}
			return nil
		})
	}
	_ = g.Wait()

	batch := &models.NewsBatch{
		ByTicker: make(map[string][]models.NewsItem, len(tickers)),
		Errors:   make([]models.AssetError, 0),
	}
	for i, t := range tickers {
		r := results[i]
		if r.err != nil {
			uc.metrics.RecordAssetError(string(models.SourceNews))
			uc.log.Warn("news fetch failed", logger.String("ticker", t), logger.Error(r.err))
			batch.Errors = append(batch.Errors, models.AssetError{
				Ticker:  t,
				Source:  models.SourceNews,
				Message: errorMessage(r.err),
			})
			batch.ByTicker[t] = []models.NewsItem{}
			continue
		}
		items := r.items
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		if items == nil {
			items = []models.NewsItem{}
		}
		batch.ByTicker[t] = items
	}

	uc.log.Debug("news fetched",
		logger.Strings("tickers", tickers),
		logger.String("from", from),
		logger.String("to", to),
		logger.Int("errors", len(batch.Errors)),
	)
	return batch, nil
}
