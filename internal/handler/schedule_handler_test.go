package handler

import (
	"context"
	"fmt"
	"testing"

	commons "lifeweeks/commons/handler"
	"lifeweeks/internal/domain"
	"lifeweeks/internal/dto"
	"lifeweeks/internal/logger"
	repository "lifeweeks/internal/repository/iface"
	"lifeweeks/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	added     []int64
	updated   []int64
	removed   []int64
	addOK     bool
	remOK     bool
	updErr    error
	bootstrap error
}

func (m *fakeManager) AddUserSchedule(ctx context.Context, profile *domain.Profile) bool {
	m.added = append(m.added, profile.TelegramID)
	return m.addOK
}

func (m *fakeManager) UpdateUserSchedule(ctx context.Context, telegramID int64) error {
	m.updated = append(m.updated, telegramID)
	return m.updErr
}

func (m *fakeManager) RemoveUserSchedule(ctx context.Context, telegramID int64) (bool, error) {
	m.removed = append(m.removed, telegramID)
	return m.remOK, nil
}

func (m *fakeManager) SetupAllSchedules(ctx context.Context) error { return m.bootstrap }

type fakeRepo struct {
	profiles map[int64]*domain.Profile
}

func (r *fakeRepo) Save(ctx context.Context, profile *domain.Profile) error {
	r.profiles[profile.TelegramID] = profile
	return nil
}

func (r *fakeRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Profile, error) {
	profile, ok := r.profiles[telegramID]
	if !ok {
		return nil, fmt.Errorf("%w: telegram_id=%d", repository.ErrNotFound, telegramID)
	}
	return profile, nil
}

func (r *fakeRepo) Delete(ctx context.Context, telegramID int64) error { return nil }

func (r *fakeRepo) ListNotifiable(ctx context.Context) ([]*domain.Profile, error) { return nil, nil }

func newScheduleHarness(profiles ...*domain.Profile) (*fakeRepo, *fakeManager, *ScheduleHandler) {
	repo := &fakeRepo{profiles: make(map[int64]*domain.Profile)}
	for _, p := range profiles {
		repo.profiles[p.TelegramID] = p
	}
	manager := &fakeManager{addOK: true, remOK: true}
	return repo, manager, NewScheduleHandler(repo, manager, logger.NewNop())
}

func scheduleIo(userID string, body dto.ScheduleRequest) *commons.RequestIo[dto.ScheduleRequest] {
	return &commons.RequestIo[dto.ScheduleRequest]{
		Body:       body,
		PathParams: map[string]string{"user_id": userID},
	}
}

func TestSetScheduleService(t *testing.T) {
	ctx := context.Background()

	t.Run("saves settings and schedules", func(t *testing.T) {
		repo, manager, h := newScheduleHarness(&domain.Profile{TelegramID: 42})

		out, errs := h.SetScheduleService(ctx, scheduleIo("42", dto.ScheduleRequest{
			DayOfWeek: 4, Hour: 18, Minute: 30, Timezone: "Europe/Berlin",
		}))
		require.Nil(t, errs)
		assert.True(t, out.Scheduled)
		assert.Equal(t, "weekly_notification_user_42", out.JobID)
		assert.Equal(t, []int64{42}, manager.added)

		saved := repo.profiles[42]
		require.NotNil(t, saved.Settings)
		assert.True(t, saved.Settings.Notifications)
		assert.Equal(t, domain.Friday, *saved.Settings.NotificationsDay)
		assert.Equal(t, 18, saved.Settings.NotificationsTime.Hour)
		assert.Equal(t, "Europe/Berlin", saved.Settings.Timezone)
	})

	t.Run("unknown user is a 404", func(t *testing.T) {
		_, _, h := newScheduleHarness()

		_, errs := h.SetScheduleService(ctx, scheduleIo("42", dto.ScheduleRequest{Hour: 9}))
		require.NotNil(t, errs)
		assert.Equal(t, 404, errs.GetHTTPStatus())
	})

	t.Run("bad user id is a validation error", func(t *testing.T) {
		_, _, h := newScheduleHarness()

		_, errs := h.SetScheduleService(ctx, scheduleIo("not-a-number", dto.ScheduleRequest{}))
		require.NotNil(t, errs)
		assert.Equal(t, 400, errs.GetHTTPStatus())
	})
}

func TestUpdateScheduleService(t *testing.T) {
	ctx := context.Background()

	t.Run("rebuilds the schedule", func(t *testing.T) {
		_, manager, h := newScheduleHarness(&domain.Profile{TelegramID: 42})

		out, errs := h.UpdateScheduleService(ctx, scheduleIo("42", dto.ScheduleRequest{DayOfWeek: 0, Hour: 8}))
		require.Nil(t, errs)
		assert.True(t, out.Scheduled)
		assert.Equal(t, []int64{42}, manager.updated)
	})

	t.Run("operational failure becomes 503", func(t *testing.T) {
		_, manager, h := newScheduleHarness(&domain.Profile{TelegramID: 42})
		manager.updErr = &service.OperationalError{Op: "update schedule", UserID: 42}

		_, errs := h.UpdateScheduleService(ctx, scheduleIo("42", dto.ScheduleRequest{Hour: 8}))
		require.NotNil(t, errs)
		assert.Equal(t, 503, errs.GetHTTPStatus())
	})
}

func TestRemoveScheduleService(t *testing.T) {
	ctx := context.Background()

	t.Run("disables notifications and removes the job", func(t *testing.T) {
		repo, manager, h := newScheduleHarness(&domain.Profile{
			TelegramID: 42,
			Settings:   &domain.Settings{Notifications: true},
		})

		out, errs := h.RemoveScheduleService(ctx, &commons.RequestIo[dto.RemoveScheduleRequest]{
			PathParams: map[string]string{"user_id": "42"},
		})
		require.Nil(t, errs)
		assert.True(t, out.Removed)
		assert.Equal(t, []int64{42}, manager.removed)
		assert.False(t, repo.profiles[42].Settings.Notifications)
	})

	t.Run("unknown user still attempts removal", func(t *testing.T) {
		_, manager, h := newScheduleHarness()
		manager.remOK = false

		out, errs := h.RemoveScheduleService(ctx, &commons.RequestIo[dto.RemoveScheduleRequest]{
			PathParams: map[string]string{"user_id": "42"},
		})
		require.Nil(t, errs)
		assert.False(t, out.Removed)
	})
}
