package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(ticker, strategy string) QuoteMetrics {
	return QuoteMetrics{Ticker: ticker, Strategy: strategy}
}

func TestGroupByStrategyPartitionsAndSorts(t *testing.T) {
	rows := []QuoteMetrics{
		row("PYPL", "Others"),
		row("GOOGL", "AI"),
		row("ADBE", "AI"),
		row("PANW", "Cyber"),
		row("AAPL", "Others"),
	}

	g := GroupByStrategy(rows)

	assert.Equal(t, []string{"Others", "AI", "Cyber"}, g.Keys())

	total := 0
	for _, grp := range g {
		total += len(grp.Rows)
		for i := 1; i < len(grp.Rows); i++ {
			assert.Less(t, grp.Rows[i-1].Ticker, grp.Rows[i].Ticker)
		}
	}
	assert.Equal(t, len(rows), total)

	ai, ok := g.Get("AI")
	require.True(t, ok)
	assert.Equal(t, "ADBE", ai[0].Ticker)
	assert.Equal(t, "GOOGL", ai[1].Ticker)

	_, ok = g.Get("missing")
	assert.False(t, ok)
}

func TestGroupedMetricsJSONKeepsOrder(t *testing.T) {
	g := GroupByStrategy([]QuoteMetrics{row("B", "Zeta"), row("A", "Alpha")})

	b, err := json.Marshal(g)
	require.NoError(t, err)
	s := string(b)
	assert.Less(t, indexOf(s, `"Zeta"`), indexOf(s, `"Alpha"`))
	assert.Contains(t, s, `"price":null`)

	var back GroupedMetrics
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, []string{"Zeta", "Alpha"}, back.Keys())
}

func TestGroupedMetricsEmpty(t *testing.T) {
	b, err := json.Marshal(GroupedMetrics(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestRequireKeys(t *testing.T) {
	err := RequireKeys([]string{"A_KEY", "B_KEY", "C_KEY"}, map[string]string{"A_KEY": "x", "B_KEY": " "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingConfiguration))

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"B_KEY", "C_KEY"}, cfgErr.Missing)
	assert.Equal(t, "missing B_KEY, C_KEY", err.Error())

	assert.NoError(t, RequireKeys([]string{"A_KEY"}, map[string]string{"A_KEY": "x"}))
}

func TestSortNewsByDate(t *testing.T) {
	items := []NewsItem{{Headline: "old", Datetime: 10}, {Headline: "new", Datetime: 30}, {Headline: "mid", Datetime: 20}}
	SortNewsByDate(items)
	assert.Equal(t, "new", items[0].Headline)
	assert.Equal(t, "mid", items[1].Headline)
	assert.Equal(t, "old", items[2].Headline)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
