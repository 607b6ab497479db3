package handler

import (
	"context"

	"lifeweeks/commons/error_handler"
	"lifeweeks/commons/handler"
	"lifeweeks/internal/dto"
	"lifeweeks/internal/logger"
	"lifeweeks/internal/scheduler"
)

type HealthHandler struct {
	port        scheduler.Port
	logger      logger.Logger
	serviceName string
}

func NewHealthHandler(port scheduler.Port, log logger.Logger, serviceName string) *HealthHandler {
	return &HealthHandler{
		port:        port,
		logger:      log.With(logger.String("component", "health_handler")),
		serviceName: serviceName,
	}
}

// HealthService reports process liveness plus the scheduler worker's health.
// A dead worker degrades the status without failing the request; callers see
// it in the body.
func (h *HealthHandler) HealthService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.HealthCheckRequest],
) (dto.HealthCheckResponse, *error_handler.ErrorCollection) {
	h.logger.Debug("health check requested")

	schedulerHealthy := h.port.HealthCheck(ctx)

	status := "healthy"
	if !schedulerHealthy {
		status = "degraded"
	}

	return dto.HealthCheckResponse{
		Status:           status,
		Service:          h.serviceName,
		SchedulerHealthy: schedulerHealthy,
	}, nil
}
