package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"lifeweeks/commons/config"
	coordinator "lifeweeks/internal/coordinator/iface"
	"lifeweeks/internal/coordinator/readiness"
	"lifeweeks/internal/gateway"
	"lifeweeks/internal/logger"
	queue "lifeweeks/internal/queue/iface"
	"lifeweeks/internal/repository/dynamodb"
	"lifeweeks/internal/scheduler"
	"lifeweeks/internal/scheduler/cron"
	"lifeweeks/internal/service"

	"go.uber.org/fx"
	tele "gopkg.in/telebot.v4"
)

// ProvideSchedulerWorker assembles the worker runtime. The worker builds its
// own repository, message builder, and notifier instead of sharing the bot
// runtime's instances; the command queue is the only thing the two sides
// have in common.
func ProvideSchedulerWorker(
	commands queue.Queue[scheduler.Command],
	responses queue.Queue[scheduler.Response],
	coord coordinator.Coordinator,
	log logger.Logger,
) (*scheduler.SchedulerWorker, error) {
	workerLog := log.With(logger.String("runtime", "worker"))

	dynamoClient, err := config.ProvideDynamoDBClient()
	if err != nil {
		return nil, fmt.Errorf("failed to build worker dynamodb client: %w", err)
	}
	users := dynamodb.NewUserRepository(dynamoClient, workerLog)

	notifier, err := provideWorkerNotifier(workerLog)
	if err != nil {
		return nil, err
	}

	messages := service.NewNotificationService(workerLog)
	executor := service.NewNotificationJobExecutor(users, messages, notifier, workerLog)

	jobs := cron.NewCronScheduler(workerLog)
	marker := readiness.NewMarker(coord, workerLog)

	worker := scheduler.NewSchedulerWorker(commands, responses, jobs, marker, workerLog)
	worker.RegisterHandler(
		service.JobTypeWeeklyNotification,
		service.CallbackWeeklyNotification,
		executor.SendWeeklyNotification,
	)

	return worker, nil
}

// provideWorkerNotifier picks the delivery channel from NOTIFIER_MODE:
// "telegram" sends directly, "sqs" hands off to an external delivery queue,
// anything else logs (local development).
func provideWorkerNotifier(log logger.Logger) (gateway.Notifier, error) {
	switch config.EnvOr("NOTIFIER_MODE", "mock") {
	case "telegram":
		token := os.Getenv("TELEGRAM_BOT_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required for telegram notifier")
		}
		bot, err := tele.NewBot(tele.Settings{Token: token})
		if err != nil {
			return nil, fmt.Errorf("failed to create telegram bot: %w", err)
		}
		return gateway.NewTelegramNotifier(bot, log), nil
	case "sqs":
		sqsClient, err := config.ProvideSQSClient()
		if err != nil {
			return nil, fmt.Errorf("failed to build worker sqs client: %w", err)
		}
		queueURL := config.EnvOr("NOTIFICATIONS_QUEUE_URL",
			"http://localhost:4566/000000000000/notifications-queue")
		return gateway.NewSQSNotifier(sqsClient, queueURL, log), nil
	default:
		return gateway.NewMockNotifier(log), nil
	}
}

// ManageSchedulerWorkerLifecycle runs the worker serving loop for the life of
// the application.
func ManageSchedulerWorkerLifecycle(
	lc fx.Lifecycle,
	worker *scheduler.SchedulerWorker,
	log logger.Logger,
) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				worker.Run(runCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// The client's shutdown command usually stops the loop first;
			// cancellation covers the case where it never arrived.
			cancel()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(10 * time.Second):
				log.Warn("scheduler worker did not stop in time")
				return nil
			}
		},
	})
}
