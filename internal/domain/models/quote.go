package models

// TimeSeriesPoint is one daily bar. Numeric fields are nil when the provider value is missing or not finite.
type TimeSeriesPoint struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
}

// TimeSeries is a daily series ordered most-recent-first, as returned by the quote provider.
type TimeSeries struct {
	Symbol   string
	Currency string
	Points   []TimeSeriesPoint
}

// Fundamentals is the subset of the fundamentals snapshot used by the dashboard.
type Fundamentals struct {
	PERatio    *float64
	EVToEBITDA *float64
}

// QuoteMetrics is the per-asset dashboard row.
type QuoteMetrics struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Strategy string `json:"strategy"`

	Price *float64 `json:"price"`

	Low52        *float64 `json:"low52"`
	Low52DiffPct *float64 `json:"low52DiffPct"`

	High52        *float64 `json:"high52"`
	High52DiffPct *float64 `json:"high52DiffPct"`

	PERatio    *float64 `json:"peRatio"`
	EVToEBITDA *float64 `json:"evToEbitda"`

	Currency *string `json:"currency"`

	// WindowPoints is how many daily bars backed low52/high52. Fewer than a year of bars
	// (new listings, short provider history) means the range is not a true 52-week range.
	WindowPoints int `json:"windowPoints"`
}
