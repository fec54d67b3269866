//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"cft/internal"
	"cft/internal/analytics"
	"cft/internal/controllers"
	"cft/internal/migration"
	"cft/internal/persistence"
	"cft/internal/providers"
	"cft/internal/scheduler"
	"cft/internal/services"
	"cft/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		persistence.NewZstdCompressor,
		persistence.NewStorage,
		persistence.NewStoreManager,

		services.NewLedgerService,
		analytics.NewEngine,
		migration.NewPipeline,
		scheduler.NewScheduler,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
