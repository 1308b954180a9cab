package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioPulse/internal/domain/models"
	"PortfolioPulse/pkg/numeric"
)

var validKeys = map[string]string{QuoteKeyName: "q", FundamentalsKeyName: "f"}

func fixedNow() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }

func scenarioDashboard(workers int) (*Dashboard, *fakeQuotes, *fakeFundamentals) {
	assets := staticAssets{
		{Name: "Alpha", Ticker: "A", Strategy: "X", ProviderSymbol: "A"},
		{Name: "Beta", Ticker: "B", Strategy: "X", ProviderSymbol: "B.XX"},
		{Name: "Gamma", Ticker: "C", Strategy: "Y", ProviderSymbol: "C"},
	}
	quotes := &fakeQuotes{
		series: map[string]models.TimeSeries{
			"A": series("USD", point("2025-03-10", 95, 105, 100), point("2025-03-07", 80, 120, 90)),
			"C": series("EUR", point("2025-03-10", 10, 12, 11)),
		},
		errs: map[string]error{
			"B.XX": &models.UpstreamError{Provider: "quote-provider", Message: "symbol not found"},
		},
	}
	funds := &fakeFundamentals{data: map[string]models.Fundamentals{
		"A": {PERatio: numeric.Ptr(20), EVToEBITDA: numeric.Ptr(15)},
		"B": {PERatio: numeric.Ptr(30)},
		"C": {PERatio: numeric.Ptr(12), EVToEBITDA: numeric.Ptr(8)},
	}}
	uc := NewDashboard(DashboardDeps{
		Assets:       assets,
		Quotes:       quotes,
		Fundamentals: funds,
		Keys:         validKeys,
		Workers:      workers,
		Now:          fixedNow,
	})
	return uc, quotes, funds
}

func TestBuildPartialFailureScenario(t *testing.T) {
	uc, _, _ := scenarioDashboard(1)

	res, err := uc.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"X", "Y"}, res.Grouped.Keys())

	x, ok := res.Grouped.Get("X")
	require.True(t, ok)
	require.Len(t, x, 2)
	assert.Equal(t, "A", x[0].Ticker)
	assert.Equal(t, "B", x[1].Ticker)

	b := x[1]
	assert.Nil(t, b.Price)
	assert.Nil(t, b.Low52)
	assert.Nil(t, b.High52)
	assert.Nil(t, b.Currency)
	require.NotNil(t, b.PERatio)
	assert.Equal(t, 30.0, *b.PERatio)

	a := x[0]
	require.NotNil(t, a.Price)
	assert.Equal(t, 100.0, *a.Price)
	assert.Equal(t, 80.0, *a.Low52)
	assert.Equal(t, 120.0, *a.High52)
	assert.Equal(t, "USD", *a.Currency)
	assert.Equal(t, 2, a.WindowPoints)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, "B", res.Errors[0].Ticker)
	assert.Equal(t, "B.XX", res.Errors[0].ProviderSymbol)
	assert.Equal(t, models.SourceQuote, res.Errors[0].Source)
	assert.Equal(t, "symbol not found", res.Errors[0].Message)

	assert.Equal(t, fixedNow(), res.GeneratedAt)
}

func TestBuildMissingCredentialsMakesNoCalls(t *testing.T) {
	for _, keys := range []map[string]string{
		{},
		{QuoteKeyName: "q"},
		{FundamentalsKeyName: "f"},
	} {
		uc, quotes, funds := scenarioDashboard(1)
		uc.keys = keys

		res, err := uc.Build(context.Background())
		assert.Nil(t, res)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrMissingConfiguration)
		assert.Zero(t, quotes.calls)
		assert.Zero(t, funds.calls)
	}
}

func TestBuildMissingCredentialsListsBoth(t *testing.T) {
	uc, _, _ := scenarioDashboard(1)
	uc.keys = nil
	_, err := uc.Build(context.Background())
	var cfgErr *models.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{QuoteKeyName, FundamentalsKeyName}, cfgErr.Missing)
}

func TestBuildOneErrorPerFailedCall(t *testing.T) {
	uc, quotes, funds := scenarioDashboard(1)
	quotes.errs["A"] = errors.New("timeout")
	funds.errs = map[string]error{"A": errors.New("boom"), "C": errors.New("boom")}

	res, err := uc.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Errors, 4)
	assert.Equal(t, models.AssetError{Ticker: "A", ProviderSymbol: "A", Source: models.SourceQuote, Message: "timeout"}, res.Errors[0])
	assert.Equal(t, models.SourceFundamentals, res.Errors[1].Source)
	assert.Equal(t, "B", res.Errors[2].Ticker)
	assert.Equal(t, "C", res.Errors[3].Ticker)

	y, _ := res.Grouped.Get("Y")
	require.Len(t, y, 1)
	assert.NotNil(t, y[0].Price)
	assert.Nil(t, y[0].PERatio)
}

func TestBuildDeterministicAcrossWorkerCounts(t *testing.T) {
	seq, _, _ := scenarioDashboard(1)
	par, _, _ := scenarioDashboard(8)

	r1, err := seq.Build(context.Background())
	require.NoError(t, err)
	r2, err := par.Build(context.Background())
	require.NoError(t, err)

	b1, _ := json.Marshal(r1)
	b2, _ := json.Marshal(r2)
	assert.JSONEq(t, string(b1), string(b2))
}

func TestBuildManyAssetsPartition(t *testing.T) {
	var assets staticAssets
	quotes := &fakeQuotes{series: map[string]models.TimeSeries{}, errs: map[string]error{}}
	for i := 0; i < 30; i++ {
		tk := fmt.Sprintf("T%02d", 29-i)
		assets = append(assets, models.Asset{Name: tk, Ticker: tk, Strategy: fmt.Sprintf("S%d", i%4), ProviderSymbol: tk})
		if i%5 == 0 {
			quotes.errs[tk] = errors.New("down")
		} else {
			quotes.series[tk] = series("USD", point("d", 1, 3, 2))
		}
	}
	uc := NewDashboard(DashboardDeps{
		Assets: assets, Quotes: quotes, Fundamentals: &fakeFundamentals{},
		Keys: validKeys, Workers: 4, Now: fixedNow,
	})

	res, err := uc.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"S0", "S1", "S2", "S3"}, res.Grouped.Keys())
	seen := map[string]bool{}
	for _, g := range res.Grouped {
		for i, r := range g.Rows {
			assert.Equal(t, g.Strategy, r.Strategy)
			assert.False(t, seen[r.Ticker])
			seen[r.Ticker] = true
			if i > 0 {
				assert.Less(t, g.Rows[i-1].Ticker, r.Ticker)
			}
		}
	}
	assert.Len(t, seen, 30)
	assert.Len(t, res.Errors, 6)
}

func TestComputeQuoteMetrics(t *testing.T) {
	asset := models.Asset{Ticker: "A", Name: "Alpha", Strategy: "X"}

	t.Run("range and deviations", func(t *testing.T) {
		ts := series("USD", point("3", 90, 110, 100), point("2", 50, 150, 60))
		m := ComputeQuoteMetrics(asset, &ts, nil)
		require.NotNil(t, m.Price)
		assert.LessOrEqual(t, *m.Low52, *m.Price)
		assert.LessOrEqual(t, *m.Price, *m.High52)
		require.NotNil(t, m.Low52DiffPct)
		assert.InDelta(t, 100.0, *m.Low52DiffPct, 1e-9)
		require.NotNil(t, m.High52DiffPct)
		assert.InDelta(t, -33.3333333, *m.High52DiffPct, 1e-6)
		assert.Nil(t, m.PERatio)
	})

	t.Run("first finite close is the price", func(t *testing.T) {
		nan := math.NaN()
		ts := series("", models.TimeSeriesPoint{Close: &nan}, point("2", 1, 3, 2))
		m := ComputeQuoteMetrics(asset, &ts, nil)
		require.NotNil(t, m.Price)
		assert.Equal(t, 2.0, *m.Price)
		assert.Nil(t, m.Currency)
	})

	t.Run("empty series", func(t *testing.T) {
		ts := series("USD")
		m := ComputeQuoteMetrics(asset, &ts, &models.Fundamentals{EVToEBITDA: numeric.Ptr(7)})
		assert.Nil(t, m.Price)
		assert.Nil(t, m.Low52)
		assert.Nil(t, m.Low52DiffPct)
		assert.Nil(t, m.High52DiffPct)
		assert.Equal(t, 7.0, *m.EVToEBITDA)
		assert.Equal(t, 0, m.WindowPoints)
	})

	t.Run("zero low gives no deviation", func(t *testing.T) {
		ts := series("USD", point("1", 0, 10, 5))
		m := ComputeQuoteMetrics(asset, &ts, nil)
		assert.Nil(t, m.Low52DiffPct)
		require.NotNil(t, m.High52DiffPct)
		assert.Less(t, *m.High52DiffPct, 0.0)
	})

	t.Run("non-finite fundamentals dropped", func(t *testing.T) {
		inf := math.Inf(1)
		m := ComputeQuoteMetrics(asset, nil, &models.Fundamentals{PERatio: &inf})
		assert.Nil(t, m.PERatio)
	})
}

func TestDashboardResultJSONShape(t *testing.T) {
	uc, _, _ := scenarioDashboard(1)
	res, err := uc.Build(context.Background())
	require.NoError(t, err)

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw, "grouped")
	assert.Contains(t, raw, "errors")
	assert.Contains(t, raw, "updatedAt")
	assert.Equal(t, `"2025-03-10T12:00:00Z"`, string(raw["updatedAt"]))
}
