package models

import (
	"errors"
	"fmt"
	"strings"
)

// Source identifies which upstream produced an item-level failure.
type Source string

const (
	SourceQuote        Source = "quote-provider"
	SourceFundamentals Source = "fundamentals-provider"
	SourceNews         Source = "news-provider"
)

// AssetError is one failed upstream call for one asset. It never aborts a batch.
type AssetError struct {
	Ticker         string `json:"ticker"`
	ProviderSymbol string `json:"providerSymbol,omitempty"`
	Source         Source `json:"source"`
	Message        string `json:"message"`
}

// ErrMissingConfiguration marks the fatal, request-level credential failure.
var ErrMissingConfiguration = errors.New("missing configuration")

// ConfigError lists absent credentials. It matches ErrMissingConfiguration with errors.Is.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "missing " + strings.Join(e.Missing, ", ")
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfiguration
}

// RequireKeys returns a *ConfigError naming every empty key, or nil when all are set.
// keys maps environment variable names to their configured values, checked in names order.
func RequireKeys(names []string, keys map[string]string) error {
	var missing []string
	for _, n := range names {
		if strings.TrimSpace(keys[n]) == "" {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ConfigError{Missing: missing}
}

// UpstreamError is a failed upstream call: transport error, non-2xx status, unparseable body
// or an error envelope reported by the provider.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
