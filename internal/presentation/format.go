package presentation

import (
	"github.com/shopspring/decimal"

	"PortfolioPulse/pkg/numeric"
)

// Placeholder is shown for absent or non-finite values.
const Placeholder = "—"

const (
	PriceDecimals = 2
	RatioDecimals = 1
	PctDecimals   = 1
)

// FormatNumber renders v with a fixed number of decimals, or Placeholder.
func FormatNumber(v *float64, decimals int) string {
	if v == nil || numeric.Finite(*v) == nil {
		return Placeholder
	}
	return decimal.NewFromFloat(*v).StringFixed(int32(decimals))
}

// FormatPct renders v as a signed percentage with one decimal ("+12.3%", "-4.0%"), or Placeholder.
func FormatPct(v *float64) string {
	if v == nil || numeric.Finite(*v) == nil {
		return Placeholder
	}
	s := decimal.NewFromFloat(*v).StringFixed(PctDecimals)
	if *v > 0 {
		s = "+" + s
	}
	return s + "%"
}

// FormatPrice renders the price with the currency code appended when known.
func FormatPrice(v *float64, currency *string) string {
	s := FormatNumber(v, PriceDecimals)
	if currency != nil && *currency != "" && s != Placeholder {
		s += " " + *currency
	}
	return s
}
