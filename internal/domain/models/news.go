package models

import "sort"

// NewsItem is the trimmed company-news record forwarded to callers and the summarizer.
type NewsItem struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Datetime int64  `json:"datetime"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// NewsBatch is per-ticker news plus the tickers whose fetch failed.
type NewsBatch struct {
	ByTicker map[string][]NewsItem `json:"news"`
	Errors   []AssetError          `json:"errors"`
}

// SortNewsByDate orders items by Datetime, most recent first. Ties keep provider order.
func SortNewsByDate(items []NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Datetime > items[j].Datetime
	})
}

// BriefContext is the summarizer input.
type BriefContext struct {
	PeriodDescription string
	Tickers           []string
	NewsByTicker      map[string][]NewsItem
}

// BriefResult is the summarizer's raw output.
type BriefResult struct {
	Brief string `json:"brief"`
}

// BriefRequest is the POST /brief body.
type BriefRequest struct {
	Tickers  []string `json:"tickers" validate:"required,min=1,max=50,dive,required,max=32"`
	DaysBack int      `json:"daysBack" validate:"gte=1,lte=30"`
}

// NewsRequest is the GET /news query.
type NewsRequest struct {
	Tickers  string `query:"tickers" validate:"required"`
	DaysBack int    `query:"daysBack" validate:"gte=1,lte=30"`
}
