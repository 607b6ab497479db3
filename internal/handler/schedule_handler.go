package handler

import (
	"context"
	"strconv"

	"lifeweeks/commons/error_handler"
	"lifeweeks/commons/handler"
	"lifeweeks/internal/domain"
	"lifeweeks/internal/dto"
	"lifeweeks/internal/logger"
	repository "lifeweeks/internal/repository/iface"
	"lifeweeks/internal/service"
)

type ScheduleHandler struct {
	users   repository.UserRepository
	manager service.ScheduleManager
	logger  logger.Logger
}

// NewScheduleHandler creates a new user schedule handler
func NewScheduleHandler(users repository.UserRepository, manager service.ScheduleManager, log logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		users:   users,
		manager: manager,
		logger:  log.With(logger.String("component", "schedule_handler")),
	}
}

// SetScheduleService stores the user's notification slot and registers the
// weekly job.
func (h *ScheduleHandler) SetScheduleService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.ScheduleRequest],
) (dto.ScheduleResponse, *error_handler.ErrorCollection) {
	telegramID, errs := pathUserID(ioutil.PathParams)
	if errs != nil {
		return dto.ScheduleResponse{}, errs
	}

	profile, err := h.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if repository.IsNotFoundError(err) {
			return dto.ScheduleResponse{}, error_handler.NewErrorCollection().
				AddError(error_handler.CodeNotFound, "user not found", nil)
		}
		h.logger.Error("failed to load user",
			logger.Int64("user_id", telegramID),
			logger.Error(err))
		return dto.ScheduleResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeInternalServerError, "failed to load user", nil)
	}

	req := ioutil.Body
	applyScheduleSettings(profile, req)

	if err := h.users.Save(ctx, profile); err != nil {
		h.logger.Error("failed to save user settings",
			logger.Int64("user_id", telegramID),
			logger.Error(err))
		return dto.ScheduleResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeInternalServerError, "failed to save settings", nil)
	}

	if !h.manager.AddUserSchedule(ctx, profile) {
		return dto.ScheduleResponse{
			Scheduled: false,
			Message:   "settings saved, no weekly notification scheduled",
		}, nil
	}

	return dto.ScheduleResponse{
		JobID:     domain.NotificationJobID(telegramID),
		Scheduled: true,
		Message:   "weekly notification scheduled",
	}, nil
}

// UpdateScheduleService rebuilds the user's job from freshly saved settings
func (h *ScheduleHandler) UpdateScheduleService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.ScheduleRequest],
) (dto.ScheduleResponse, *error_handler.ErrorCollection) {
	telegramID, errs := pathUserID(ioutil.PathParams)
	if errs != nil {
		return dto.ScheduleResponse{}, errs
	}

	profile, err := h.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if repository.IsNotFoundError(err) {
			return dto.ScheduleResponse{}, error_handler.NewErrorCollection().
				AddError(error_handler.CodeNotFound, "user not found", nil)
		}
		return dto.ScheduleResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeInternalServerError, "failed to load user", nil)
	}

	applyScheduleSettings(profile, ioutil.Body)

	if err := h.users.Save(ctx, profile); err != nil {
		return dto.ScheduleResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeInternalServerError, "failed to save settings", nil)
	}

	if err := h.manager.UpdateUserSchedule(ctx, telegramID); err != nil {
		h.logger.Error("failed to update schedule",
			logger.Int64("user_id", telegramID),
			logger.Error(err))
		return dto.ScheduleResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeServiceUnavailable, err.Error(), nil)
	}

	return dto.ScheduleResponse{
		JobID:     domain.NotificationJobID(telegramID),
		Scheduled: true,
		Message:   "weekly notification rescheduled",
	}, nil
}

// RemoveScheduleService disables notifications and drops the user's job
func (h *ScheduleHandler) RemoveScheduleService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.RemoveScheduleRequest],
) (dto.RemoveScheduleResponse, *error_handler.ErrorCollection) {
	telegramID, errs := pathUserID(ioutil.PathParams)
	if errs != nil {
		return dto.RemoveScheduleResponse{}, errs
	}

	profile, err := h.users.GetByTelegramID(ctx, telegramID)
	if err == nil && profile.Settings != nil {
		profile.Settings.Notifications = false
		if err := h.users.Save(ctx, profile); err != nil {
			h.logger.Warn("failed to persist disabled notifications",
				logger.Int64("user_id", telegramID),
				logger.Error(err))
		}
	}

	removed, err := h.manager.RemoveUserSchedule(ctx, telegramID)
	if err != nil {
		return dto.RemoveScheduleResponse{}, schedulerErrorCollection(err)
	}

	message := "no schedule to remove"
	if removed {
		message = "weekly notification removed"
	}
	return dto.RemoveScheduleResponse{Removed: removed, Message: message}, nil
}

func applyScheduleSettings(profile *domain.Profile, req dto.ScheduleRequest) {
	if profile.Settings == nil {
		profile.Settings = &domain.Settings{}
	}
	day := domain.Weekday(req.DayOfWeek)
	profile.Settings.Notifications = true
	profile.Settings.NotificationsDay = &day
	profile.Settings.NotificationsTime = &domain.ClockTime{Hour: req.Hour, Minute: req.Minute}
	if req.Timezone != "" {
		profile.Settings.Timezone = req.Timezone
	}
}

func pathUserID(params map[string]string) (int64, *error_handler.ErrorCollection) {
	raw := params["user_id"]
	telegramID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || telegramID <= 0 {
		return 0, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, "user_id must be a positive integer", nil)
	}
	return telegramID, nil
}
