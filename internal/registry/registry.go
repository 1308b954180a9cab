package registry

import (
	"errors"
	"fmt"
	"strings"

	"PortfolioPulse/internal/domain/models"
)

var (
	ErrEmpty           = errors.New("registry: no assets")
	ErrDuplicateTicker = errors.New("registry: duplicate ticker")
	ErrInvalidAsset    = errors.New("registry: invalid asset")
)

// Registry is the immutable, ordered list of tracked assets. Safe for concurrent reads.
type Registry struct {
	assets   []models.Asset
	byTicker map[string]int
}

// New validates assets and freezes them in declaration order.
// ProviderSymbol defaults to Ticker when empty.
func New(assets []models.Asset) (*Registry, error) {
	if len(assets) == 0 {
		return nil, ErrEmpty
	}
	r := &Registry{
		assets:   make([]models.Asset, 0, len(assets)),
		byTicker: make(map[string]int, len(assets)),
	}
	for i, a := range assets {
		a.Name = strings.TrimSpace(a.Name)
		a.Ticker = strings.TrimSpace(a.Ticker)
		a.Strategy = strings.TrimSpace(a.Strategy)
		a.ProviderSymbol = strings.TrimSpace(a.ProviderSymbol)
		if a.ProviderSymbol == "" {
			a.ProviderSymbol = a.Ticker
		}
		switch {
		case a.Ticker == "":
			return nil, fmt.Errorf("%w: asset %d has no ticker", ErrInvalidAsset, i)
		case a.Name == "":
			return nil, fmt.Errorf("%w: %s has no name", ErrInvalidAsset, a.Ticker)
		case a.Strategy == "":
			return nil, fmt.Errorf("%w: %s has no strategy", ErrInvalidAsset, a.Ticker)
		}
		if _, dup := r.byTicker[a.Ticker]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTicker, a.Ticker)
		}
		r.byTicker[a.Ticker] = len(r.assets)
		r.assets = append(r.assets, a)
	}
	return r, nil
}

// Assets returns a copy of the tracked assets in declaration order.
func (r *Registry) Assets() []models.Asset {
	out := make([]models.Asset, len(r.assets))
	copy(out, r.assets)
	return out
}

func (r *Registry) Len() int { return len(r.assets) }

// Lookup finds an asset by ticker.
func (r *Registry) Lookup(ticker string) (models.Asset, bool) {
	i, ok := r.byTicker[ticker]
	if !ok {
		return models.Asset{}, false
	}
	return r.assets[i], true
}

// Tickers returns tickers in declaration order.
func (r *Registry) Tickers() []string {
	out := make([]string, len(r.assets))
	for i, a := range r.assets {
		out[i] = a.Ticker
	}
	return out
}

// Strategies returns the distinct strategy labels in first-occurrence order.
func (r *Registry) Strategies() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range r.assets {
		if _, ok := seen[a.Strategy]; ok {
			continue
		}
		seen[a.Strategy] = struct{}{}
		out = append(out, a.Strategy)
	}
	return out
}
