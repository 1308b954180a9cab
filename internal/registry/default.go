package registry

import "PortfolioPulse/internal/domain/models"

const strategyAIInfra = "AI & Digital Infra: AI / Semis / Automation / Robotics"

// DefaultAssets is the built-in tracked list, used when the config declares no assets.
// Non-US listings usually need an exchange suffix in ProviderSymbol (e.g. "ASML.AS", "SAP.DE").
func DefaultAssets() []models.Asset {
	return []models.Asset{
		{Name: "ADOBE INC.", Ticker: "ADBE", Exchange: "XNAS", Strategy: strategyAIInfra, ProviderSymbol: "ADBE"},
		{Name: "PAYPAL HOLDINGS, INC.", Ticker: "PYPL", Exchange: "XNAS", Strategy: "Others", ProviderSymbol: "PYPL"},
		{Name: "PALO ALTO NETWORKS, INC.", Ticker: "PANW", Exchange: "XNAS", Strategy: "Cybersecurity & Defense", ProviderSymbol: "PANW"},
		{Name: "ALPHABET INC.", Ticker: "GOOGL", Exchange: "XNAS", Strategy: strategyAIInfra, ProviderSymbol: "GOOGL"},
	}
}

// Default returns a registry over DefaultAssets.
func Default() *Registry {
	r, err := New(DefaultAssets())
	if err != nil {
		panic(err)
	}
	return r
}
