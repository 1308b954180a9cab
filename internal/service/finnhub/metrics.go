package finnhub

import (
	"PortfolioPulse/internal/domain/models"
	"PortfolioPulse/pkg/numeric"
)

const (
	keyPETTM          = "peTTM"
	keyPEBasicExclTTM = "peBasicExclExtraTTM"
	keyEVEBITDATTM    = "evEbitdaTTM"
)

// FundamentalsFromMetrics picks the dashboard ratios out of Finnhub's flat metric map.
func FundamentalsFromMetrics(m map[string]any) models.Fundamentals {
	if m == nil {
		return models.Fundamentals{}
	}
	return models.Fundamentals{
		PERatio:    numeric.First(m[keyPETTM], m[keyPEBasicExclTTM]),
		EVToEBITDA: numeric.Extract(m[keyEVEBITDATTM]),
	}
}
