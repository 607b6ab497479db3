package service

import (
	"context"
	"time"

	"lifeweeks/internal/gateway"
	"lifeweeks/internal/logger"
	repository "lifeweeks/internal/repository/iface"
)

// CallbackWeeklyNotification names the weekly job handler as it appears in
// job metadata.
const CallbackWeeklyNotification = "send_weekly_notification"

// NotificationJobExecutor runs inside the scheduler worker and performs the
// actual weekly delivery when a job fires. It never returns errors to the
// scheduler; a failed delivery is logged and retried at the next trigger.
type NotificationJobExecutor struct {
	users    repository.UserRepository
	messages NotificationService
	notifier gateway.Notifier
	logger   logger.Logger
}

// NewNotificationJobExecutor creates the weekly notification job handler
func NewNotificationJobExecutor(
	users repository.UserRepository,
	messages NotificationService,
	notifier gateway.Notifier,
	log logger.Logger,
) *NotificationJobExecutor {
	return &NotificationJobExecutor{
		users:    users,
		messages: messages,
		notifier: notifier,
		logger:   log.With(logger.String("component", "notification_job_executor")),
	}
}

// SendWeeklyNotification loads the user's current profile at fire time, so a
// schedule that outlived its user or whose owner has since disabled
// notifications delivers nothing.
func (e *NotificationJobExecutor) SendWeeklyNotification(ctx context.Context, userID int64) {
	profile, err := e.users.GetByTelegramID(ctx, userID)
	if err != nil {
		if repository.IsNotFoundError(err) {
			e.logger.Warn("skipping notification for missing user",
				logger.Int64("user_id", userID))
			return
		}
		e.logger.Error("failed to load user for notification",
			logger.Int64("user_id", userID),
			logger.Error(err))
		return
	}

	if profile.Settings == nil || !profile.Settings.Notifications {
		e.logger.Info("skipping notification, user has notifications disabled",
			logger.Int64("user_id", userID))
		return
	}

	payload := e.messages.BuildWeeklySummary(profile, time.Now())
	if err := e.notifier.SendNotification(ctx, payload); err != nil {
		e.logger.Error("failed to deliver weekly notification",
			logger.Int64("user_id", userID),
			logger.Error(err))
		return
	}

	e.logger.Info("weekly notification delivered",
		logger.Int64("user_id", userID))
}
