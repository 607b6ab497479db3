package gateway

import (
	"context"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
)

type mockNotifier struct {
	logger logger.Logger
}

// NewMockNotifier creates a mock notifier that logs notifications
func NewMockNotifier(log logger.Logger) Notifier {
	return &mockNotifier{
		logger: log.With(logger.String("component", "mock_notifier")),
	}
}

func (m *mockNotifier) SendNotification(ctx context.Context, payload *domain.NotificationPayload) error {
	m.logger.Info("MOCK: notification",
		logger.Int64("recipient_id", payload.RecipientID),
		logger.String("message_type", payload.MessageType),
		logger.String("title", payload.Title),
		logger.String("body", payload.Body),
	)
	return nil
}
