//go:build wireinject
// +build wireinject

package di

import (
	"RaptorExplorer/pkg/config"
	"RaptorExplorer/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,
		ProvideClickHouseClient,
		ProvideKafkaConsumer,
		ProvideFirebaseApp,
		ProvideFirestore,

		// Provider adapters and repositories
		ProvideListingsProvider,
		ProvideAggregateProvider,
		ProvideIdentityProvider,
		ProvideTokenIssuer,
		ProvideBillingGateway,
		ProvideEntitlementStore,
		ProvideLookupPublisher,

		// Use cases
		ProvideMarketValueResolver,
		ProvideAuthService,
		ProvideBillingService,
		ProvideLookupEventsHandler,

		// HTTP
		ProvideRateLimiter,
		ProvideHTTPHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
