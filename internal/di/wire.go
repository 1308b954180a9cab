//go:build wireinject
// +build wireinject

package di

import (
	"PortfolioPulse/pkg/config"
	"PortfolioPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideRegistry,
		ProvideCache,
		ProvideQuoteProvider,
		ProvideFinnhubClient,
		ProvideTextGenerator,

		// Use cases
		ProvideDashboard,
		ProvideNews,
		ProvideBrief,

		// Transport
		ProvideBriefLimiter,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
