// Package twelvedata is a REST client for the Twelve Data daily time-series endpoint.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"PortfolioPulse/internal/domain/models"
	drepo "PortfolioPulse/internal/domain/repository"
	"PortfolioPulse/internal/service/upstream"
	httpkit "PortfolioPulse/pkg/http"
	"PortfolioPulse/pkg/numeric"
)

const (
	DefaultBaseURL    = "https://api.twelvedata.com"
	DefaultOutputSize = 260

	providerName = "quote-provider"
)

// Client implements repository.QuoteProvider.
type Client struct {
	apiKey     string
	baseURL    string
	outputSize int
	caller     *upstream.Caller
}

var _ drepo.QuoteProvider = (*Client)(nil)

// New creates a Twelve Data client. Empty baseURL and non-positive outputSize fall back to defaults.
func New(apiKey, baseURL string, outputSize int, opts ...upstream.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if outputSize <= 0 {
		outputSize = DefaultOutputSize
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		outputSize: outputSize,
		caller:     upstream.New(providerName, opts...),
	}
}

type valueDTO struct {
	Datetime string `json:"datetime"`
	Open     any    `json:"open"`
	High     any    `json:"high"`
	Low      any    `json:"low"`
	Close    any    `json:"close"`
	Volume   any    `json:"volume"`
}

type timeSeriesDTO struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Meta    struct {
		Symbol   string  `json:"symbol"`
		Currency *string `json:"currency"`
	} `json:"meta"`
	Values []valueDTO `json:"values"`
}

// TimeSeries fetches up to outputSize daily bars for symbol, most recent first.
func (c *Client) TimeSeries(ctx context.Context, symbol string) (models.TimeSeries, error) {
	params := map[string][]string{
		"symbol":     {symbol},
		"interval":   {"1day"},
		"outputsize": {strconv.Itoa(c.outputSize)},
		"apikey":     {c.apiKey},
	}

	var out models.TimeSeries
	err := c.caller.Get(ctx, c.baseURL+"/time_series", params, func(raw *httpkit.RawResponse) error {
		ts, err := decodeTimeSeries(raw)
		if err != nil {
			return err
		}
		out = ts
		return nil
	}, "apikey")
	if err != nil {
		return models.TimeSeries{}, err
	}
	if out.Symbol == "" {
		out.Symbol = symbol
	}
	return out, nil
}

func decodeTimeSeries(raw *httpkit.RawResponse) (models.TimeSeries, error) {
	var dto timeSeriesDTO
	if err := json.Unmarshal(raw.Body, &dto); err != nil {
		return models.TimeSeries{}, statusError(raw.StatusCode, err)
	}
	if dto.Status == "error" || !raw.OK() {
		msg := strings.TrimSpace(dto.Message)
		if msg == "" {
			return models.TimeSeries{}, statusError(raw.StatusCode, nil)
		}
		return models.TimeSeries{}, &models.UpstreamError{Provider: providerName, Status: raw.StatusCode, Message: msg}
	}

	ts := models.TimeSeries{
		Symbol: dto.Meta.Symbol,
		Points: make([]models.TimeSeriesPoint, 0, len(dto.Values)),
	}
	if dto.Meta.Currency != nil {
		ts.Currency = *dto.Meta.Currency
	}
	for _, v := range dto.Values {
		ts.Points = append(ts.Points, models.TimeSeriesPoint{
			Date:   v.Datetime,
			Open:   numeric.Extract(v.Open),
			High:   numeric.Extract(v.High),
			Low:    numeric.Extract(v.Low),
			Close:  numeric.Extract(v.Close),
			Volume: numeric.Extract(v.Volume),
		})
	}
	return ts, nil
}

func statusError(status int, err error) error {
	return &models.UpstreamError{
		Provider: providerName,
		Status:   status,
		Message:  fmt.Sprintf("quote provider returned HTTP %d", status),
		Err:      err,
	}
}
