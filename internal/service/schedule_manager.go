package service

import (
	"context"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
	repository "lifeweeks/internal/repository/iface"
	"lifeweeks/internal/scheduler"
)

// JobTypeWeeklyNotification is the job type registered with the scheduler
// worker for weekly summaries.
const JobTypeWeeklyNotification = "weekly_notification"

// ScheduleManager maintains the weekly notification schedule for users
type ScheduleManager interface {
	// AddUserSchedule registers a weekly job for the user. It returns false
	// when the user's settings do not describe a complete schedule, and also
	// when the scheduler call fails; scheduling failures are logged here, not
	// surfaced to the caller.
	AddUserSchedule(ctx context.Context, profile *domain.Profile) bool

	// UpdateUserSchedule reloads the user and rebuilds their job. Failures
	// surface as *OperationalError.
	UpdateUserSchedule(ctx context.Context, telegramID int64) error

	// RemoveUserSchedule drops the user's job, reporting false when no job
	// existed.
	RemoveUserSchedule(ctx context.Context, telegramID int64) (bool, error)

	// SetupAllSchedules registers jobs for every notifiable user at startup.
	SetupAllSchedules(ctx context.Context) error
}

type scheduleManager struct {
	port   scheduler.Port
	users  repository.UserRepository
	logger logger.Logger
}

// NewScheduleManager creates a new notification schedule manager
func NewScheduleManager(port scheduler.Port, users repository.UserRepository, log logger.Logger) ScheduleManager {
	return &scheduleManager{
		port:   port,
		users:  users,
		logger: log.With(logger.String("component", "schedule_manager")),
	}
}

func (m *scheduleManager) AddUserSchedule(ctx context.Context, profile *domain.Profile) bool {
	trigger, ok := domain.DeriveTrigger(profile)
	if !ok {
		m.logger.Debug("user settings do not describe a schedule",
			logger.Int64("user_id", profile.TelegramID))
		return false
	}

	jobID := domain.NotificationJobID(profile.TelegramID)
	scheduled, err := m.port.ScheduleJob(ctx, jobID, trigger, JobTypeWeeklyNotification, profile.TelegramID)
	if err != nil {
		m.logger.Error("failed to schedule notification job",
			logger.Int64("user_id", profile.TelegramID),
			logger.Error(err))
		return false
	}

	if scheduled {
		m.logger.Info("notification schedule added",
			logger.Int64("user_id", profile.TelegramID),
			logger.String("trigger", trigger.String()))
	}
	return scheduled
}

// UpdateUserSchedule removes the existing job and re-creates it from the
// user's current settings. An absent job during removal is fine; the user may
// never have had one. Everything else that goes wrong is operational and is
// reported as such.
func (m *scheduleManager) UpdateUserSchedule(ctx context.Context, telegramID int64) error {
	profile, err := m.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		// A missing user is still operational here: the caller asked to
		// update a schedule for someone who should exist.
		return &OperationalError{Op: "update schedule", UserID: telegramID, Err: err}
	}

	jobID := domain.NotificationJobID(telegramID)
	if _, err := m.port.RemoveJob(ctx, jobID); err != nil {
		return &OperationalError{Op: "update schedule", UserID: telegramID, Err: err}
	}

	trigger, ok := domain.DeriveTrigger(profile)
	if !ok {
		// Notifications were turned off; removal above is the whole update.
		m.logger.Info("notification schedule cleared",
			logger.Int64("user_id", telegramID))
		return nil
	}

	scheduled, err := m.port.ScheduleJob(ctx, jobID, trigger, JobTypeWeeklyNotification, telegramID)
	if err != nil {
		return &OperationalError{Op: "update schedule", UserID: telegramID, Err: err}
	}
	if !scheduled {
		return &OperationalError{Op: "update schedule", UserID: telegramID}
	}

	m.logger.Info("notification schedule updated",
		logger.Int64("user_id", telegramID),
		logger.String("trigger", trigger.String()))
	return nil
}

func (m *scheduleManager) RemoveUserSchedule(ctx context.Context, telegramID int64) (bool, error) {
	jobID := domain.NotificationJobID(telegramID)
	removed, err := m.port.RemoveJob(ctx, jobID)
	if err != nil {
		m.logger.Error("failed to remove notification job",
			logger.Int64("user_id", telegramID),
			logger.Error(err))
		return false, &OperationalError{Op: "remove schedule", UserID: telegramID, Err: err}
	}

	if !removed {
		m.logger.Debug("no notification job to remove",
			logger.Int64("user_id", telegramID))
		return false, nil
	}

	m.logger.Info("notification schedule removed",
		logger.Int64("user_id", telegramID))
	return true, nil
}

// SetupAllSchedules walks every notifiable user and registers their job. One
// user's bad settings or failed registration never blocks the rest.
func (m *scheduleManager) SetupAllSchedules(ctx context.Context) error {
	profiles, err := m.users.ListNotifiable(ctx)
	if err != nil {
		return &OperationalError{Op: "setup schedules", Err: err}
	}

	if len(profiles) == 0 {
		m.logger.Info("no users with notifications enabled")
		return nil
	}

	scheduled := 0
	for _, profile := range profiles {
		if m.AddUserSchedule(ctx, profile) {
			scheduled++
		}
	}

	m.logger.Info("startup schedules registered",
		logger.Int("users", len(profiles)),
		logger.Int("scheduled", scheduled))
	return nil
}
