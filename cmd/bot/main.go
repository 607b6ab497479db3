package main

import (
	"lifeweeks/commons/config"
	"lifeweeks/commons/server"
	internalConfig "lifeweeks/internal/config"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.WithLogger(config.ProvideFxLogger),
		fx.Provide(
			config.ProvideLogger,
			config.ProvideRouteDependencies,
			config.ProvideDynamoDBClient,
			config.ProvideRedisCache,
			config.ProvideZooKeeperCoordinator,
			internalConfig.ProvideSchedulerQueues,
			internalConfig.ProvideReadinessMarker,
			internalConfig.ProvideSchedulerClient,
			internalConfig.ProvideSchedulerPort,
			internalConfig.ProvideSchedulerWorker,
			internalConfig.ProvideUserRepository,
			internalConfig.ProvideScheduleManager,
			internalConfig.ProvideHealthHandler,
			internalConfig.ProvideJobHandler,
			internalConfig.ProvideScheduleHandler,
			internalConfig.ProvideRouterConfig,
			internalConfig.ProvideServerConfig,
			internalConfig.ProvideRouteInitializer,
			config.ProvideRouter,
			server.NewHTTPServer,
		),
		// Worker first: the client's startup bootstrap needs a serving worker.
		fx.Invoke(
			internalConfig.ManageSchedulerWorkerLifecycle,
			internalConfig.ManageSchedulerClientLifecycle,
		),
	).Run()
}
