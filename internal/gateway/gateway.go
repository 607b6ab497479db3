package gateway

import (
	"context"

	"lifeweeks/internal/domain"
)

// Notifier defines interface for delivering notifications to users
type Notifier interface {
	SendNotification(ctx context.Context, payload *domain.NotificationPayload) error
}
