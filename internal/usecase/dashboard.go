package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"PortfolioPulse/internal/domain/models"
	domrepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/pkg/logger"
	"PortfolioPulse/pkg/metrics"
	"PortfolioPulse/pkg/numeric"
)

const (
	QuoteKeyName        = "TWELVE_DATA_API_KEY"
	FundamentalsKeyName = "FINNHUB_API_KEY"
)

// Dashboard builds the grouped quote/fundamentals table for every registered asset.
type Dashboard struct {
	assets       domrepo.AssetSource
	quotes       domrepo.QuoteProvider
	fundamentals domrepo.FundamentalsProvider
	keys         map[string]string
	workers      int
	metrics      domrepo.Metrics
	log          *logger.Logger
	now          func() time.Time
}

type DashboardDeps struct {
	Assets       domrepo.AssetSource
	Quotes       domrepo.QuoteProvider
	Fundamentals domrepo.FundamentalsProvider
	// Keys holds provider credentials by environment variable name.
	Keys    map[string]string
	Workers int
	Metrics domrepo.Metrics
	Logger  *logger.Logger
	Now     func() time.Time
}

func NewDashboard(d DashboardDeps) *Dashboard {
	uc := &Dashboard{
		assets:       d.Assets,
		quotes:       d.Quotes,
		fundamentals: d.Fundamentals,
		keys:         d.Keys,
		workers:      d.Workers,
		metrics:      d.Metrics,
		log:          d.Logger,
		now:          d.Now,
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

// assetOutcome is the result of one asset's fetches: the row is always present,
// errs lists every upstream call that failed for it.
type assetOutcome struct {
	metrics models.QuoteMetrics
	errs    []models.AssetError
}

// Build runs one aggregation cycle. The only error it returns is *models.ConfigError,
// raised before any upstream call. Upstream failures are reported in the result.
func (uc *Dashboard) Build(ctx context.Context) (*models.DashboardResult, error) {
	if err := models.RequireKeys([]string{QuoteKeyName, FundamentalsKeyName}, uc.keys); err != nil {
		return nil, err
	}

	start := uc.now()
	assets := uc.assets.Assets()
	outcomes := make([]assetOutcome, len(assets))

	var g errgroup.Group
	g.SetLimit(uc.workers)
	for i, a := range assets {
		g.Go(func() error {
			outcomes[i] = uc.fetchAsset(ctx, a)
			return nil
		})
	}
	_ = g.Wait()

	rows := make([]models.QuoteMetrics, 0, len(outcomes))
	assetErrs := make([]models.AssetError, 0)
	for _, o := range outcomes {
		rows = append(rows, o.metrics)
		assetErrs = append(assetErrs, o.errs...)
	}

	res := &models.DashboardResult{
		Grouped:     models.GroupByStrategy(rows),
		Errors:      assetErrs,
		GeneratedAt: uc.now().UTC(),
	}

	uc.metrics.RecordLatency("dashboard", uc.now().Sub(start).Seconds())
	uc.log.Info("dashboard built",
		logger.Int("assets", len(assets)),
		logger.Int("errors", len(assetErrs)),
		logger.Duration("took", uc.now().Sub(start)),
	)
	return res, nil
}

func (uc *Dashboard) fetchAsset(ctx context.Context, a models.Asset) assetOutcome {
	var out assetOutcome

	var ts *models.TimeSeries
	if v, err := uc.quotes.TimeSeries(ctx, a.ProviderSymbol); err != nil {
		out.errs = append(out.errs, uc.assetError(a, models.SourceQuote, err))
	} else {
		ts = &v
	}

	var f *models.Fundamentals
	if v, err := uc.fundamentals.Metrics(ctx, a.Ticker); err != nil {
		out.errs = append(out.errs, uc.assetError(a, models.SourceFundamentals, err))
	} else {
		f = &v
	}

	out.metrics = ComputeQuoteMetrics(a, ts, f)
	if out.metrics.Price != nil {
		uc.metrics.RecordLastPrice(a.Ticker, *out.metrics.Price)
	}
	return out
}

func (uc *Dashboard) assetError(a models.Asset, src models.Source, err error) models.AssetError {
	uc.metrics.RecordAssetError(string(src))
	uc.log.Warn("asset fetch failed",
		logger.String("ticker", a.Ticker),
		logger.String("provider_symbol", a.ProviderSymbol),
		logger.String("source", string(src)),
		logger.Error(err),
	)
	return models.AssetError{
		Ticker:         a.Ticker,
		ProviderSymbol: a.ProviderSymbol,
		Source:         src,
		Message:        errorMessage(err),
	}
}

// ComputeQuoteMetrics derives the dashboard row. A nil ts or f leaves the matching fields absent.
// Price is the first finite close (the provider returns most recent first); the 52-week range is
// the min low and max high over the fetched window.
func ComputeQuoteMetrics(a models.Asset, ts *models.TimeSeries, f *models.Fundamentals) models.QuoteMetrics {
	m := models.QuoteMetrics{
		Ticker:   a.Ticker,
		Name:     a.Name,
		Exchange: a.Exchange,
		Strategy: a.Strategy,
	}

	if ts != nil {
		closes := make([]*float64, 0, len(ts.Points))
		lows := make([]*float64, 0, len(ts.Points))
		highs := make([]*float64, 0, len(ts.Points))
		for _, p := range ts.Points {
			closes = append(closes, p.Close)
			lows = append(lows, p.Low)
			highs = append(highs, p.High)
		}
		m.Price = numeric.First(toAny(closes)...)
		m.Low52 = numeric.Min(lows)
		m.High52 = numeric.Max(highs)
		m.WindowPoints = len(ts.Points)
		if ts.Currency != "" {
			cur := ts.Currency
			m.Currency = &cur
		}
	}

	m.Low52DiffPct = numeric.PctDiff(m.Price, m.Low52)
	m.High52DiffPct = numeric.PctDiff(m.Price, m.High52)

	if f != nil {
		m.PERatio = numeric.Extract(f.PERatio)
		m.EVToEBITDA = numeric.Extract(f.EVToEBITDA)
	}
	return m
}

func toAny(xs []*float64) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

// errorMessage prefers the provider's own message over the wrapped chain.
func errorMessage(err error) string {
	var upErr *models.UpstreamError
	if errors.As(err, &upErr) && upErr.Message != "" {
		return upErr.Message
	}
	return err.Error()
}
