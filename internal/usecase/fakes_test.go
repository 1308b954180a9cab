package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"PortfolioPulse/internal/domain/models"
)

type staticAssets []models.Asset

func (s staticAssets) Assets() []models.Asset { return s }

type fakeQuotes struct {
	series map[string]models.TimeSeries
	errs   map[string]error
	calls  int32
}

func (f *fakeQuotes) TimeSeries(_ context.Context, symbol string) (models.TimeSeries, error) {
	atomic.AddInt32(&f.calls, 1)
	if err, ok := f.errs[symbol]; ok {
		return models.TimeSeries{}, err
	}
	ts, ok := f.series[symbol]
	if !ok {
		return models.TimeSeries{}, errors.New("no data")
	}
	return ts, nil
}

type fakeFundamentals struct {
	data  map[string]models.Fundamentals
	errs  map[string]error
	calls int32
}

func (f *fakeFundamentals) Metrics(_ context.Context, ticker string) (models.Fundamentals, error) {
	atomic.AddInt32(&f.calls, 1)
	if err, ok := f.errs[ticker]; ok {
		return models.Fundamentals{}, err
	}
	return f.data[ticker], nil
}

type newsCall struct {
	ticker, from, to string
}

type fakeNews struct {
	mu    sync.Mutex
	items map[string][]models.NewsItem
	errs  map[string]error
	calls []newsCall
}

func (f *fakeNews) CompanyNews(_ context.Context, ticker, from, to string) ([]models.NewsItem, error) {
	f.mu.Lock()
	f.calls = append(f.calls, newsCall{ticker, from, to})
	f.mu.Unlock()
	if err, ok := f.errs[ticker]; ok {
		return nil, err
	}
	return f.items[ticker], nil
}

type fakeGenerator struct {
	system, user string
	out          string
	err          error
	calls        int
}

func (f *fakeGenerator) Generate(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system, f.user = system, user
	return f.out, f.err
}

func series(currency string, points ...models.TimeSeriesPoint) models.TimeSeries {
	return models.TimeSeries{Currency: currency, Points: points}
}

func point(date string, low, high, close float64) models.TimeSeriesPoint {
	return models.TimeSeriesPoint{Date: date, Low: &low, High: &high, Close: &close}
}
