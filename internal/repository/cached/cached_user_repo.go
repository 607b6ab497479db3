package cached

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	cache "lifeweeks/internal/cache/iface"
	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
	repository "lifeweeks/internal/repository/iface"
)

const profileTTL = 15 * time.Minute

// cachedUserRepository layers a read-through cache over a UserRepository.
// Writes go to the backing store first and then invalidate the cached entry,
// so a failed write never leaves a stale profile behind.
type cachedUserRepository struct {
	inner  repository.UserRepository
	cache  cache.Cache
	logger logger.Logger
}

// NewCachedUserRepository wraps a user repository with profile caching
func NewCachedUserRepository(inner repository.UserRepository, c cache.Cache, log logger.Logger) repository.UserRepository {
	return &cachedUserRepository{
		inner:  inner,
		cache:  c,
		logger: log.With(logger.String("component", "cached_user_repository")),
	}
}

func profileKey(telegramID int64) string {
	return fmt.Sprintf("user:profile:%d", telegramID)
}

func (r *cachedUserRepository) Save(ctx context.Context, profile *domain.Profile) error {
	if err := r.inner.Save(ctx, profile); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, profileKey(profile.TelegramID)); err != nil {
		r.logger.Warn("failed to invalidate cached profile",
			logger.Int64("telegram_id", profile.TelegramID),
			logger.Error(err))
	}
	return nil
}

func (r *cachedUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Profile, error) {
	key := profileKey(telegramID)

	raw, err := r.cache.Get(ctx, key)
	if err == nil {
		var profile domain.Profile
		if err := json.Unmarshal([]byte(raw), &profile); err == nil {
			return &profile, nil
		}
		// Undecodable entry, drop it and fall through to the store.
		r.logger.Warn("dropping corrupt cached profile",
			logger.Int64("telegram_id", telegramID))
		_ = r.cache.Delete(ctx, key)
	} else if !cache.IsCacheMiss(err) {
		r.logger.Warn("profile cache read failed",
			logger.Int64("telegram_id", telegramID),
			logger.Error(err))
	}

	profile, err := r.inner.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if body, err := json.Marshal(profile); err == nil {
		if err := r.cache.Set(ctx, key, string(body), profileTTL); err != nil {
			r.logger.Warn("failed to cache profile",
				logger.Int64("telegram_id", telegramID),
				logger.Error(err))
		}
	}

	return profile, nil
}

func (r *cachedUserRepository) Delete(ctx context.Context, telegramID int64) error {
	if err := r.inner.Delete(ctx, telegramID); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, profileKey(telegramID)); err != nil {
		r.logger.Warn("failed to invalidate cached profile",
			logger.Int64("telegram_id", telegramID),
			logger.Error(err))
	}
	return nil
}

// ListNotifiable always hits the backing store; the bootstrap pass runs once
// at startup and must see every user.
func (r *cachedUserRepository) ListNotifiable(ctx context.Context) ([]*domain.Profile, error) {
	return r.inner.ListNotifiable(ctx)
}
