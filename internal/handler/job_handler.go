package handler

import (
	"context"
	"time"

	"lifeweeks/commons/error_handler"
	"lifeweeks/commons/handler"
	"lifeweeks/internal/domain"
	"lifeweeks/internal/dto"
	"lifeweeks/internal/logger"
	"lifeweeks/internal/scheduler"
)

type JobHandler struct {
	port   scheduler.Port
	logger logger.Logger
}

// NewJobHandler creates a new job inspection handler
func NewJobHandler(port scheduler.Port, log logger.Logger) *JobHandler {
	return &JobHandler{
		port:   port,
		logger: log.With(logger.String("component", "job_handler")),
	}
}

// ListJobsService returns every job currently scheduled in the worker
func (h *JobHandler) ListJobsService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.JobListRequest],
) (dto.JobListResponse, *error_handler.ErrorCollection) {
	infos, err := h.port.GetAllJobs(ctx)
	if err != nil {
		h.logger.Error("failed to list jobs", logger.Error(err))
		return dto.JobListResponse{}, schedulerErrorCollection(err)
	}

	jobs := make([]dto.JobResponse, 0, len(infos))
	for _, info := range infos {
		jobs = append(jobs, toJobResponse(&info))
	}

	return dto.JobListResponse{Jobs: jobs, Count: len(jobs)}, nil
}

// GetJobService returns one job by id
func (h *JobHandler) GetJobService(
	ctx context.Context,
	ioutil *handler.RequestIo[dto.JobRequest],
) (dto.JobResponse, *error_handler.ErrorCollection) {
	jobID := ioutil.PathParams["job_id"]
	if jobID == "" {
		return dto.JobResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeValidationError, "job_id is required", nil)
	}

	info, err := h.port.GetJob(ctx, jobID)
	if err != nil {
		h.logger.Error("failed to get job",
			logger.String("job_id", jobID),
			logger.Error(err))
		return dto.JobResponse{}, schedulerErrorCollection(err)
	}
	if info == nil {
		return dto.JobResponse{}, error_handler.NewErrorCollection().
			AddError(error_handler.CodeNotFound, "job not found", nil)
	}

	return toJobResponse(info), nil
}

func toJobResponse(info *domain.JobInfo) dto.JobResponse {
	response := dto.JobResponse{
		JobID:        info.JobID,
		CallbackName: info.CallbackName,
	}
	if info.Trigger != nil {
		response.DayOfWeek = int(info.Trigger.DayOfWeek)
		response.Hour = info.Trigger.Hour
		response.Minute = info.Trigger.Minute
		response.Timezone = info.Trigger.Location()
	}
	if info.NextRunTime != nil {
		response.NextRunTime = info.NextRunTime.Format(time.RFC3339)
	}
	return response
}

// schedulerErrorCollection maps round-trip failures onto API error codes.
// Timeouts surface as gateway timeouts so callers can tell a slow worker
// from a broken request.
func schedulerErrorCollection(err error) *error_handler.ErrorCollection {
	if scheduler.IsTimeout(err) {
		return error_handler.NewErrorCollection().
			AddError(error_handler.CodeGatewayTimeout, "scheduler worker timed out", nil)
	}
	return error_handler.NewErrorCollection().
		AddError(error_handler.CodeServiceUnavailable, err.Error(), nil)
}
