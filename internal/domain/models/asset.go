package models

// Asset is one tracked instrument. Ticker is the internal label and the fundamentals/news key,
// ProviderSymbol is the quote provider's symbol for the same instrument (e.g. "ASML.AS").
type Asset struct {
	Name           string `json:"name"`
	Ticker         string `json:"ticker"`
	Exchange       string `json:"exchange"`
	Strategy       string `json:"strategy"`
	ProviderSymbol string `json:"providerSymbol"`
}
