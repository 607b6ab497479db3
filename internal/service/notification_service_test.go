package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeeklySummary(t *testing.T) {
	svc := NewNotificationService(logger.NewNop())
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	profile := &domain.Profile{
		TelegramID: 42,
		FirstName:  "Ada",
		BirthDate:  time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
		Settings:   &domain.Settings{LifeExpectancy: 90},
	}

	payload := svc.BuildWeeklySummary(profile, now)

	assert.Equal(t, int64(42), payload.RecipientID)
	assert.Equal(t, domain.MessageTypeWeeklySummary, payload.MessageType)
	assert.Contains(t, payload.Body, "Ada")

	stats := domain.CalculateLifeStatistics(profile.BirthDate, now, 90)
	assert.Contains(t, payload.Body, fmt.Sprintf("%d weeks", stats.WeeksLived))
	assert.Equal(t, stats.WeeksLived, payload.Metadata["weeks_lived"])
	assert.Equal(t, stats.RemainingWeeks, payload.Metadata["remaining_weeks"])
}

func TestBuildWeeklySummaryDefaults(t *testing.T) {
	svc := NewNotificationService(logger.NewNop())
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

	// No settings at all: expectancy defaults, username stands in for a
	// missing first name.
	profile := &domain.Profile{
		TelegramID: 7,
		Username:   "ada_l",
		BirthDate:  time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	payload := svc.BuildWeeklySummary(profile, now)
	assert.Contains(t, payload.Body, "ada_l")

	stats := domain.CalculateLifeStatistics(profile.BirthDate, now, domain.DefaultLifeExpectancy)
	assert.Equal(t, stats.WeeksLived, payload.Metadata["weeks_lived"])
}

type recordingNotifier struct {
	sent []*domain.NotificationPayload
	err  error
}

func (n *recordingNotifier) SendNotification(ctx context.Context, payload *domain.NotificationPayload) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, payload)
	return nil
}

func TestNotificationJobExecutor(t *testing.T) {
	log := logger.NewNop()

	t.Run("delivers to an enabled user", func(t *testing.T) {
		profile := notifiableProfile(42, domain.Friday)
		profile.BirthDate = time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
		repo := newFakeUserRepo(profile)
		notifier := &recordingNotifier{}

		executor := NewNotificationJobExecutor(repo, NewNotificationService(log), notifier, log)
		executor.SendWeeklyNotification(context.Background(), 42)

		require.Len(t, notifier.sent, 1)
		assert.Equal(t, int64(42), notifier.sent[0].RecipientID)
	})

	t.Run("skips a deleted user", func(t *testing.T) {
		notifier := &recordingNotifier{}
		executor := NewNotificationJobExecutor(newFakeUserRepo(), NewNotificationService(log), notifier, log)

		executor.SendWeeklyNotification(context.Background(), 404)
		assert.Empty(t, notifier.sent)
	})

	t.Run("skips a user who disabled notifications after scheduling", func(t *testing.T) {
		profile := notifiableProfile(42, domain.Friday)
		profile.Settings.Notifications = false
		notifier := &recordingNotifier{}
		executor := NewNotificationJobExecutor(newFakeUserRepo(profile), NewNotificationService(log), notifier, log)

		executor.SendWeeklyNotification(context.Background(), 42)
		assert.Empty(t, notifier.sent)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		profile := notifiableProfile(42, domain.Friday)
		profile.BirthDate = time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
		notifier := &recordingNotifier{err: fmt.Errorf("telegram down")}
		executor := NewNotificationJobExecutor(newFakeUserRepo(profile), NewNotificationService(log), notifier, log)

		// Must not panic; the next trigger retries naturally.
		executor.SendWeeklyNotification(context.Background(), 42)
		assert.Empty(t, notifier.sent)
	})
}
