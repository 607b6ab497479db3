package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"lifeweeks/internal/logger"
	queue "lifeweeks/internal/queue/iface"
)

// WorkerState tracks the worker through its lifecycle. Transitions only move
// forward: Initialized -> Running -> ShuttingDown -> Stopped.
type WorkerState int32

const (
	WorkerInitialized WorkerState = iota
	WorkerRunning
	WorkerShuttingDown
	WorkerStopped
)

func (s WorkerState) String() string {
	switch s {
	case WorkerInitialized:
		return "initialized"
	case WorkerRunning:
		return "running"
	case WorkerShuttingDown:
		return "shutting_down"
	case WorkerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ReadinessAnnouncer publishes and withdraws the worker's readiness marker so
// clients can fail health checks fast before the worker is up.
type ReadinessAnnouncer interface {
	Announce(ctx context.Context) error
	Withdraw(ctx context.Context) error
}

// SchedulerWorker owns the job scheduler and serves the command queue. It is
// the only component permitted to touch the JobScheduler; everything else
// talks to it through Commands.
type SchedulerWorker struct {
	commands  queue.Queue[Command]
	responses queue.Queue[Response]
	jobs      JobScheduler
	announcer ReadinessAnnouncer
	logger    logger.Logger

	state atomic.Int32

	mu       sync.RWMutex
	handlers map[string]registeredHandler
}

type registeredHandler struct {
	callback JobCallback
	name     string
}

// NewSchedulerWorker wires a worker over the given queues and job scheduler.
// announcer may be nil.
func NewSchedulerWorker(
	commands queue.Queue[Command],
	responses queue.Queue[Response],
	jobs JobScheduler,
	announcer ReadinessAnnouncer,
	log logger.Logger,
) *SchedulerWorker {
	return &SchedulerWorker{
		commands:  commands,
		responses: responses,
		jobs:      jobs,
		announcer: announcer,
		logger:    log.With(logger.String("component", "scheduler_worker")),
		handlers:  make(map[string]registeredHandler),
	}
}

// RegisterHandler binds a job type to its callback. Handlers must be
// registered before Run; re-registering a type replaces the previous binding.
func (w *SchedulerWorker) RegisterHandler(jobType string, callbackName string, callback JobCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[jobType] = registeredHandler{callback: callback, name: callbackName}
}

// State reports the worker's current lifecycle state.
func (w *SchedulerWorker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// Run starts the scheduler and serves commands until a shutdown command
// arrives or ctx is cancelled. Cleanup always runs: readiness is withdrawn
// and the scheduler shut down regardless of how the loop exits.
func (w *SchedulerWorker) Run(ctx context.Context) {
	if !w.state.CompareAndSwap(int32(WorkerInitialized), int32(WorkerRunning)) {
		w.logger.Warn("worker already started", logger.String("state", w.State().String()))
		return
	}

	w.jobs.Start()
	if w.announcer != nil {
		if err := w.announcer.Announce(ctx); err != nil {
			w.logger.Warn("failed to announce readiness", logger.Error(err))
		}
	}
	w.logger.Info("scheduler worker running")

	defer w.cleanup()

	for {
		command, ok := w.commands.Receive(ctx)
		if !ok {
			w.logger.Info("command queue drained, stopping")
			return
		}

		if command.Type == CommandShutdown {
			// Shutdown is acknowledged by stopping, never by a response.
			w.logger.Info("shutdown command received",
				logger.String("command_id", command.ID))
			return
		}

		response := w.execute(command)
		if err := w.responses.Send(ctx, response); err != nil {
			w.logger.Error("failed to send response",
				logger.String("command_id", command.ID),
				logger.Error(err))
		}
	}
}

func (w *SchedulerWorker) cleanup() {
	w.state.Store(int32(WorkerShuttingDown))
	if w.announcer != nil {
		if err := w.announcer.Withdraw(context.Background()); err != nil {
			w.logger.Warn("failed to withdraw readiness", logger.Error(err))
		}
	}
	w.jobs.Shutdown(true)
	w.state.Store(int32(WorkerStopped))
	w.logger.Info("scheduler worker stopped")
}

// execute dispatches one command. A panic in a handler is converted into a
// failure response so a single bad command never kills the serving loop.
func (w *SchedulerWorker) execute(command Command) (response Response) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("command handler panicked",
				logger.String("command_id", command.ID),
				logger.String("command_type", string(command.Type)),
				logger.Any("panic", r))
			response = NewErrorResponse(command.ID, fmt.Errorf("internal error: %v", r))
		}
	}()

	switch command.Type {
	case CommandScheduleJob:
		return w.handleScheduleJob(command)
	case CommandRemoveJob:
		return w.handleRemoveJob(command)
	case CommandRescheduleJob:
		return w.handleRescheduleJob(command)
	case CommandGetJob:
		return w.handleGetJob(command)
	case CommandGetAllJobs:
		return w.handleGetAllJobs(command)
	case CommandPause:
		w.jobs.Pause()
		return NewResponse(command.ID, true)
	case CommandResume:
		w.jobs.Resume()
		return NewResponse(command.ID, true)
	case CommandHealthCheck:
		return NewResponse(command.ID, w.jobs.IsRunning())
	default:
		return NewErrorResponse(command.ID, fmt.Errorf("unknown command type %q", command.Type))
	}
}

func (w *SchedulerWorker) handleScheduleJob(command Command) Response {
	jobID, err := payloadString(command.Payload, payloadKeyJobID)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	trigger, err := payloadTrigger(command.Payload, payloadKeyTrigger)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	jobType, err := payloadString(command.Payload, payloadKeyJobType)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	userID, err := payloadInt64(command.Payload, payloadKeyUserID)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}

	w.mu.RLock()
	handler, ok := w.handlers[jobType]
	w.mu.RUnlock()
	if !ok {
		return NewErrorResponse(command.ID, fmt.Errorf("no handler registered for job type %q", jobType))
	}

	kwargs := map[string]any{payloadKeyUserID: userID}
	if err := w.jobs.ScheduleJob(jobID, trigger, handler.callback, handler.name, kwargs); err != nil {
		w.logger.Error("failed to schedule job",
			logger.String("job_id", jobID),
			logger.Error(err))
		return NewErrorResponse(command.ID, err)
	}

	w.logger.Info("job scheduled",
		logger.String("job_id", jobID),
		logger.String("job_type", jobType),
		logger.Int64("user_id", userID))
	return NewResponse(command.ID, true)
}

func (w *SchedulerWorker) handleRemoveJob(command Command) Response {
	jobID, err := payloadString(command.Payload, payloadKeyJobID)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	removed := w.jobs.RemoveJob(jobID)
	if removed {
		w.logger.Info("job removed", logger.String("job_id", jobID))
	}
	return NewResponse(command.ID, removed)
}

func (w *SchedulerWorker) handleRescheduleJob(command Command) Response {
	jobID, err := payloadString(command.Payload, payloadKeyJobID)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	trigger, err := payloadTrigger(command.Payload, payloadKeyTrigger)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	rescheduled := w.jobs.RescheduleJob(jobID, trigger)
	if rescheduled {
		w.logger.Info("job rescheduled",
			logger.String("job_id", jobID),
			logger.String("trigger", trigger.String()))
	}
	return NewResponse(command.ID, rescheduled)
}

func (w *SchedulerWorker) handleGetJob(command Command) Response {
	jobID, err := payloadString(command.Payload, payloadKeyJobID)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	info := w.jobs.GetJob(jobID)
	if info == nil {
		return NewResponse(command.ID, true)
	}
	response, err := NewDataResponse(command.ID, info)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	return response
}

func (w *SchedulerWorker) handleGetAllJobs(command Command) Response {
	infos := w.jobs.GetAllJobs()
	response, err := NewDataResponse(command.ID, infos)
	if err != nil {
		return NewErrorResponse(command.ID, err)
	}
	return response
}
