package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PortfolioPulse/internal/domain/models"
)

func newBriefUC(provider *fakeNews, gen *fakeGenerator, newsKey, llmKey string) *Brief {
	news := NewNews(NewsDeps{Provider: provider, APIKey: newsKey, Now: fixedNow})
	return NewBrief(BriefDeps{
		News:              news,
		Summarizer:        NewSummarizer(gen, "stub"),
		SummarizerKeyName: "ANTHROPIC_API_KEY",
		SummarizerKey:     llmKey,
		NewsKey:           newsKey,
		NewsLimit:         12,
	})
}

func TestBuildPromptIncludesEveryTicker(t *testing.T) {
	system, user, err := BuildPrompt(models.BriefContext{
		PeriodDescription: PeriodDescription(3),
		Tickers:           []string{"X", "Y"},
		NewsByTicker:      map[string][]models.NewsItem{"X": {{Headline: "h", Source: "s", Datetime: 1, URL: "u"}}},
	})
	require.NoError(t, err)

	assert.Contains(t, system, "no relevant news")
	assert.Contains(t, system, "financial advice")

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(user), &payload))
	assert.Equal(t, `"last 3 days"`, string(payload["period"]))
	assert.JSONEq(t, `["X","Y"]`, string(payload["tickers"]))

	var news map[string][]models.NewsItem
	require.NoError(t, json.Unmarshal(payload["newsByTicker"], &news))
	assert.Len(t, news["X"], 1)
	require.Contains(t, news, "Y")
	assert.Empty(t, news["Y"])
	assert.Contains(t, string(payload["newsByTicker"]), `"Y":[]`)

	var format map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload["output_format"], &format))
	assert.Contains(t, format, "portfolio_summary")
	assert.Contains(t, format, "per_ticker")

	keys := []string{`"period"`, `"tickers"`, `"newsByTicker"`, `"output_format"`}
	last := -1
	for _, k := range keys {
		i := strings.Index(user, k)
		assert.Greater(t, i, last, k)
		last = i
	}
}

func TestPeriodDescription(t *testing.T) {
	assert.Equal(t, "last 1 day", PeriodDescription(1))
	assert.Equal(t, "last 7 days", PeriodDescription(7))
}

// stubSummarizer behaves like a well-instructed model: it honours the
// empty-news rule from the system instruction.
type stubSummarizer struct{}

func (stubSummarizer) Generate(_ context.Context, system, user string) (string, error) {
	var payload struct {
		Tickers      []string                     `json:"tickers"`
		NewsByTicker map[string][]models.NewsItem `json:"newsByTicker"`
	}
	if err := json.Unmarshal([]byte(user), &payload); err != nil {
		return "", err
	}
	if !strings.Contains(system, "no relevant news") {
		return "", errors.New("instruction missing empty-news rule")
	}
	var b strings.Builder
	for _, t := range payload.Tickers {
		if len(payload.NewsByTicker[t]) == 0 {
			b.WriteString(t + ": no relevant news in the period.\n")
			continue
		}
		b.WriteString(t + ": " + payload.NewsByTicker[t][0].Headline + "\n")
	}
	return b.String(), nil
}

func TestGenerateEmptyNewsStatedExplicitly(t *testing.T) {
	provider := &fakeNews{items: map[string][]models.NewsItem{"X": newsItems("x", 2)}}
	news := NewNews(NewsDeps{Provider: provider, APIKey: "k", Now: fixedNow})
	uc := NewBrief(BriefDeps{
		News: news, Summarizer: NewSummarizer(stubSummarizer{}, "stub"),
		SummarizerKeyName: "ANTHROPIC_API_KEY", SummarizerKey: "k", NewsKey: "k",
	})

	res, err := uc.Generate(context.Background(), []string{"X", "Y"}, 3)
	require.NoError(t, err)
	assert.Contains(t, res.Brief, "X: x-0")
	assert.Contains(t, res.Brief, "Y: no relevant news in the period.")
}

func TestGenerateReturnsTextUnmodified(t *testing.T) {
	provider := &fakeNews{items: map[string][]models.NewsItem{"X": newsItems("x", 20)}}
	gen := &fakeGenerator{out: "  ## raw\n"}
	uc := newBriefUC(provider, gen, "k", "k")

	res, err := uc.Generate(context.Background(), []string{"X"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "  ## raw\n", res.Brief)
	assert.Equal(t, 1, gen.calls)

	var payload struct {
		NewsByTicker map[string][]models.NewsItem `json:"newsByTicker"`
	}
	require.NoError(t, json.Unmarshal([]byte(gen.user), &payload))
	assert.Len(t, payload.NewsByTicker["X"], 12)
}

func TestGenerateMissingCredentials(t *testing.T) {
	cases := []struct {
		name            string
		newsKey, llmKey string
		missing         []string
	}{
		{"both", "", "", []string{FundamentalsKeyName, "ANTHROPIC_API_KEY"}},
		{"news", "", "k", []string{FundamentalsKeyName}},
		{"llm", "k", "", []string{"ANTHROPIC_API_KEY"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeNews{}
			gen := &fakeGenerator{}
			uc := newBriefUC(provider, gen, tc.newsKey, tc.llmKey)

			_, err := uc.Generate(context.Background(), []string{"X"}, 3)
			var cfgErr *models.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tc.missing, cfgErr.Missing)
			assert.Empty(t, provider.calls)
			assert.Zero(t, gen.calls)
		})
	}
}

func TestGenerateSummarizerFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("overloaded")}
	uc := newBriefUC(&fakeNews{}, gen, "k", "k")

	_, err := uc.Generate(context.Background(), []string{"X"}, 3)
	var sErr *SummarizationError
	require.ErrorAs(t, err, &sErr)
	assert.Contains(t, err.Error(), "overloaded")
}

func TestGenerateNoTickers(t *testing.T) {
	uc := newBriefUC(&fakeNews{}, &fakeGenerator{}, "k", "k")
	_, err := uc.Generate(context.Background(), []string{" "}, 3)
	assert.ErrorIs(t, err, ErrNoTickers)
}
