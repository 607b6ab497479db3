package scheduler

import (
	"context"

	"lifeweeks/internal/domain"
)

// JobCallback is a job handler executed inside the worker when a trigger
// fires. Callback identity crosses the queue boundary as a job-type string
// and is resolved against the worker's handler table; functions never cross.
type JobCallback func(ctx context.Context, userID int64)

// JobScheduler is the contract of the cron-capable scheduler owned by the
// worker. Implementations hold the only live job table in the system.
type JobScheduler interface {
	// ScheduleJob registers a job, replacing any existing job with the same
	// id. Duplicate ids are an upsert, never an error.
	ScheduleJob(jobID string, trigger domain.ScheduleTrigger, callback JobCallback, callbackName string, kwargs map[string]any) error

	// RemoveJob returns false, without error, when no such job exists.
	RemoveJob(jobID string) bool

	// RescheduleJob returns false when no such job exists.
	RescheduleJob(jobID string, trigger domain.ScheduleTrigger) bool

	GetJob(jobID string) *domain.JobInfo
	GetAllJobs() []domain.JobInfo

	// Start and Shutdown are idempotent.
	Start()
	Shutdown(wait bool)

	// Pause stops trigger firing while keeping the job table; Resume
	// restarts firing.
	Pause()
	Resume()

	IsRunning() bool
}

// Port is the scheduling surface the rest of the application consumes. The
// SchedulerClient implements it by round-tripping commands to the worker.
type Port interface {
	ScheduleJob(ctx context.Context, jobID string, trigger domain.ScheduleTrigger, jobType string, userID int64) (bool, error)
	RemoveJob(ctx context.Context, jobID string) (bool, error)
	RescheduleJob(ctx context.Context, jobID string, trigger domain.ScheduleTrigger) (bool, error)
	GetJob(ctx context.Context, jobID string) (*domain.JobInfo, error)
	GetAllJobs(ctx context.Context) ([]domain.JobInfo, error)
	HealthCheck(ctx context.Context) bool
}
