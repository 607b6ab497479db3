package repository

import (
	"context"

	"lifeweeks/internal/domain"
)

// UserRepository defines operations for user profiles
type UserRepository interface {
	Save(ctx context.Context, profile *domain.Profile) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Profile, error)
	Delete(ctx context.Context, telegramID int64) error

	// ListNotifiable returns every user whose settings have notifications
	// enabled. Used by the bootstrap pass at startup.
	ListNotifiable(ctx context.Context) ([]*domain.Profile, error)
}
