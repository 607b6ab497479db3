package cached

import (
	"context"
	"fmt"
	"testing"
	"time"

	cache "lifeweeks/internal/cache/iface"
	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
	repository "lifeweeks/internal/repository/iface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.entries[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	value, ok := c.entries[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", cache.ErrCacheMiss, key)
	}
	return value, nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) Close() error { return nil }

type countingRepo struct {
	profiles map[int64]*domain.Profile
	gets     int
}

func (r *countingRepo) Save(ctx context.Context, profile *domain.Profile) error {
	r.profiles[profile.TelegramID] = profile
	return nil
}

func (r *countingRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Profile, error) {
	r.gets++
	profile, ok := r.profiles[telegramID]
	if !ok {
		return nil, fmt.Errorf("%w: telegram_id=%d", repository.ErrNotFound, telegramID)
	}
	return profile, nil
}

func (r *countingRepo) Delete(ctx context.Context, telegramID int64) error {
	delete(r.profiles, telegramID)
	return nil
}

func (r *countingRepo) ListNotifiable(ctx context.Context) ([]*domain.Profile, error) {
	var out []*domain.Profile
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func setup() (*countingRepo, *fakeCache, repository.UserRepository) {
	inner := &countingRepo{profiles: make(map[int64]*domain.Profile)}
	c := newFakeCache()
	return inner, c, NewCachedUserRepository(inner, c, logger.NewNop())
}

func TestCachedGetReadsThroughOnce(t *testing.T) {
	inner, _, repo := setup()
	ctx := context.Background()

	profile := &domain.Profile{TelegramID: 42, FirstName: "Ada", BirthDate: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)}
	inner.profiles[42] = profile

	first, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ada", first.FirstName)

	second, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ada", second.FirstName)

	assert.Equal(t, 1, inner.gets, "second read should come from cache")
}

func TestCachedSaveInvalidates(t *testing.T) {
	_, _, repo := setup()
	ctx := context.Background()

	profile := &domain.Profile{TelegramID: 42, FirstName: "Ada"}
	require.NoError(t, repo.Save(ctx, profile))

	_, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)

	profile.FirstName = "Grace"
	require.NoError(t, repo.Save(ctx, profile))

	got, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got.FirstName)
}

func TestCachedDeleteInvalidates(t *testing.T) {
	inner, c, repo := setup()
	ctx := context.Background()

	inner.profiles[42] = &domain.Profile{TelegramID: 42}
	_, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, c.entries)

	require.NoError(t, repo.Delete(ctx, 42))
	assert.Empty(t, c.entries)

	_, err = repo.GetByTelegramID(ctx, 42)
	assert.True(t, repository.IsNotFoundError(err))
}

func TestCachedMissingUserPropagatesNotFound(t *testing.T) {
	_, _, repo := setup()

	_, err := repo.GetByTelegramID(context.Background(), 404)
	assert.True(t, repository.IsNotFoundError(err))
}

func TestCachedCorruptEntryFallsThrough(t *testing.T) {
	inner, c, repo := setup()
	ctx := context.Background()

	inner.profiles[42] = &domain.Profile{TelegramID: 42, FirstName: "Ada"}
	c.entries["user:profile:42"] = "{not json"

	got, err := repo.GetByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, 1, inner.gets)
}
