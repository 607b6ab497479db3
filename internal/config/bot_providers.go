package config

import (
	"context"

	"lifeweeks/commons/config"
	"lifeweeks/commons/routes"
	"lifeweeks/commons/server"
	cache "lifeweeks/internal/cache/iface"
	coordinator "lifeweeks/internal/coordinator/iface"
	"lifeweeks/internal/coordinator/readiness"
	"lifeweeks/internal/handler"
	"lifeweeks/internal/logger"
	"lifeweeks/internal/queue/channel"
	queue "lifeweeks/internal/queue/iface"
	"lifeweeks/internal/repository/cached"
	"lifeweeks/internal/repository/dynamodb"
	repository "lifeweeks/internal/repository/iface"
	internalRoutes "lifeweeks/internal/routes"
	"lifeweeks/internal/scheduler"
	"lifeweeks/internal/service"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

const commandQueueBuffer = 64

// Queue Providers
//
// The command and response queues are the only link between the bot runtime
// and the scheduler worker runtime. Only serialized plain data crosses them.

type SchedulerQueuesResult struct {
	fx.Out
	Commands  queue.Queue[scheduler.Command]
	Responses queue.Queue[scheduler.Response]
}

func ProvideSchedulerQueues(log logger.Logger) SchedulerQueuesResult {
	return SchedulerQueuesResult{
		Commands:  channel.NewChannelQueue[scheduler.Command](commandQueueBuffer, log),
		Responses: channel.NewChannelQueue[scheduler.Response](commandQueueBuffer, log),
	}
}

// Repository Providers

func ProvideUserRepository(
	client *awsdynamodb.Client,
	c cache.Cache,
	log logger.Logger,
) repository.UserRepository {
	return cached.NewCachedUserRepository(dynamodb.NewUserRepository(client, log), c, log)
}

// Scheduler Client Providers

func ProvideReadinessMarker(coord coordinator.Coordinator, log logger.Logger) *readiness.Marker {
	return readiness.NewMarker(coord, log)
}

func ProvideSchedulerClient(
	commands queue.Queue[scheduler.Command],
	responses queue.Queue[scheduler.Response],
	marker *readiness.Marker,
	log logger.Logger,
) *scheduler.SchedulerClient {
	return scheduler.NewSchedulerClient(commands, responses, marker, log)
}

func ProvideSchedulerPort(client *scheduler.SchedulerClient) scheduler.Port {
	return client
}

// Service Providers

func ProvideScheduleManager(
	port scheduler.Port,
	users repository.UserRepository,
	log logger.Logger,
) service.ScheduleManager {
	return service.NewScheduleManager(port, users, log)
}

// HTTP Providers

func ProvideHealthHandler(port scheduler.Port, log logger.Logger) *handler.HealthHandler {
	return handler.NewHealthHandler(port, log, "lifeweeks")
}

func ProvideJobHandler(port scheduler.Port, log logger.Logger) *handler.JobHandler {
	return handler.NewJobHandler(port, log)
}

func ProvideScheduleHandler(
	users repository.UserRepository,
	manager service.ScheduleManager,
	log logger.Logger,
) *handler.ScheduleHandler {
	return handler.NewScheduleHandler(users, manager, log)
}

func ProvideRouterConfig(log logger.Logger) routes.RouterConfig {
	return routes.RouterConfig{
		ServiceName: "lifeweeks",
		Version:     "v1",
	}
}

func ProvideServerConfig() server.ServerConfig {
	return server.ServerConfig{
		Port: config.EnvOr("HTTP_PORT", "8092"),
	}
}

func ProvideRouteInitializer(
	healthHandler *handler.HealthHandler,
	jobHandler *handler.JobHandler,
	scheduleHandler *handler.ScheduleHandler,
) func(*gin.Engine, routes.RouteDependencies) {
	return func(router *gin.Engine, deps routes.RouteDependencies) {
		internalRoutes.InitHealthRoutes(router, healthHandler, deps.Logger)
		internalRoutes.InitJobRoutes(router, jobHandler, deps.Logger)
		internalRoutes.InitScheduleRoutes(router, scheduleHandler, deps.Logger)
	}
}

// Lifecycle Management

// ManageSchedulerClientLifecycle starts the response listener and registers
// every existing user's schedule once the worker is serving. On the way down
// it sends the shutdown command before closing, so the worker drains cleanly.
func ManageSchedulerClientLifecycle(
	lc fx.Lifecycle,
	client *scheduler.SchedulerClient,
	manager service.ScheduleManager,
	srv *server.HTTPServer,
	log logger.Logger,
) {
	_ = srv // pull the HTTP server into the graph so its hooks register

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			client.Start()
			if err := manager.SetupAllSchedules(ctx); err != nil {
				// Startup proceeds; users can re-register through the API.
				log.Error("failed to register startup schedules", logger.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := client.Shutdown(ctx); err != nil {
				log.Warn("failed to send shutdown command", logger.Error(err))
			}
			client.Close()
			return nil
		},
	})
}
