package service

import (
	"fmt"
	"time"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
)

// NotificationService builds the notification messages sent to users
type NotificationService interface {
	BuildWeeklySummary(profile *domain.Profile, now time.Time) *domain.NotificationPayload
}

type notificationService struct {
	logger logger.Logger
}

// NewNotificationService creates a new notification message builder
func NewNotificationService(log logger.Logger) NotificationService {
	return &notificationService{
		logger: log.With(logger.String("component", "notification_service")),
	}
}

// BuildWeeklySummary renders the weekly life-in-weeks digest for one user.
func (s *notificationService) BuildWeeklySummary(profile *domain.Profile, now time.Time) *domain.NotificationPayload {
	expectancy := domain.DefaultLifeExpectancy
	if profile.Settings != nil && profile.Settings.LifeExpectancy > 0 {
		expectancy = profile.Settings.LifeExpectancy
	}

	stats := domain.CalculateLifeStatistics(profile.BirthDate, now, expectancy)

	name := profile.FirstName
	if name == "" {
		name = profile.Username
	}

	body := fmt.Sprintf(
		"Hi %s! Here is your weekly summary.\n\n"+
			"You have lived *%d weeks* (%.1f%% of your expected %d).\n"+
			"Weeks remaining: *%d*.\n"+
			"Days until your next birthday: %d.\n\n"+
			"Make this week count.",
		name,
		stats.WeeksLived,
		stats.FractionLived*100,
		stats.TotalExpectedWeeks,
		stats.RemainingWeeks,
		stats.DaysUntilBirthday,
	)

	return &domain.NotificationPayload{
		RecipientID: profile.TelegramID,
		MessageType: domain.MessageTypeWeeklySummary,
		Title:       "Your life in weeks",
		Body:        body,
		Metadata: map[string]any{
			"weeks_lived":     stats.WeeksLived,
			"remaining_weeks": stats.RemainingWeeks,
			"age":             stats.Age,
		},
		ScheduledAt: now,
	}
}
