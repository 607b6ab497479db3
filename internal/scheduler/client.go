package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
	queue "lifeweeks/internal/queue/iface"

	"github.com/google/uuid"
)

const (
	// DefaultCommandTimeout bounds every ordinary command round trip.
	DefaultCommandTimeout = 5 * time.Second

	// HealthCheckTimeout is deliberately shorter so liveness probes answer
	// quickly even when the worker is wedged.
	HealthCheckTimeout = 2 * time.Second
)

// ReadinessProbe reports whether the worker has announced itself. Health
// checks consult it before paying for a queue round trip.
type ReadinessProbe interface {
	Ready(ctx context.Context) bool
}

// SchedulerClient is the requester side of the command protocol. It owns the
// correlation table matching responses back to in-flight commands and is safe
// for concurrent use.
type SchedulerClient struct {
	commands  queue.Queue[Command]
	responses queue.Queue[Response]
	probe     ReadinessProbe
	timeout   time.Duration
	logger    logger.Logger

	mu      sync.Mutex
	pending map[string]chan Response
	closed  bool

	done chan struct{}
	wg   sync.WaitGroup
}

// NewSchedulerClient builds a client over the given command/response queues.
// probe may be nil, in which case health checks always pay the round trip.
func NewSchedulerClient(
	commands queue.Queue[Command],
	responses queue.Queue[Response],
	probe ReadinessProbe,
	log logger.Logger,
) *SchedulerClient {
	return &SchedulerClient{
		commands:  commands,
		responses: responses,
		probe:     probe,
		timeout:   DefaultCommandTimeout,
		logger:    log.With(logger.String("component", "scheduler_client")),
		pending:   make(map[string]chan Response),
		done:      make(chan struct{}),
	}
}

// Start launches the response listener. It must be called exactly once before
// any command is issued.
func (c *SchedulerClient) Start() {
	c.wg.Add(1)
	go c.listen()
	c.logger.Info("scheduler client started")
}

// Close stops the listener and fails any in-flight commands. It is safe to
// call more than once.
func (c *SchedulerClient) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	c.wg.Wait()
	c.logger.Info("scheduler client closed")
}

// PendingCount reports the number of commands still awaiting responses.
func (c *SchedulerClient) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// listen drains the response queue, routing each response to the command
// that is waiting on it. Responses with no waiter are dropped; the waiter has
// already timed out and reported failure.
func (c *SchedulerClient) listen() {
	defer c.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-c.done
		cancel()
	}()

	for {
		response, ok := c.responses.Receive(ctx)
		if !ok {
			return
		}

		c.mu.Lock()
		waiter, found := c.pending[response.CommandID]
		if found {
			delete(c.pending, response.CommandID)
		}
		c.mu.Unlock()

		if !found {
			c.logger.Debug("dropping response with no waiting command",
				logger.String("command_id", response.CommandID))
			continue
		}
		waiter <- response
	}
}

// send issues one command and waits for its correlated response. On timeout
// the pending entry is removed before ErrTimeout is returned, so a late
// response cannot leak into a later command.
func (c *SchedulerClient) send(ctx context.Context, cmd Command, timeout time.Duration) (Response, error) {
	waiter := make(chan Response, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Response{}, ErrClientClosed
	}
	c.pending[cmd.ID] = waiter
	c.mu.Unlock()

	if err := c.commands.Send(ctx, cmd); err != nil {
		c.forget(cmd.ID)
		return Response{}, fmt.Errorf("failed to send %s command: %w", cmd.Type, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case response := <-waiter:
		return response, nil
	case <-timer.C:
		c.forget(cmd.ID)
		c.logger.Warn("command timed out",
			logger.String("command_id", cmd.ID),
			logger.String("command_type", string(cmd.Type)))
		return Response{}, fmt.Errorf("%s command: %w", cmd.Type, ErrTimeout)
	case <-ctx.Done():
		c.forget(cmd.ID)
		return Response{}, ctx.Err()
	case <-c.done:
		c.forget(cmd.ID)
		return Response{}, ErrClientClosed
	}
}

func (c *SchedulerClient) forget(commandID string) {
	c.mu.Lock()
	delete(c.pending, commandID)
	c.mu.Unlock()
}

func newCommand(commandType CommandType, payload map[string]any) Command {
	return Command{ID: uuid.NewString(), Type: commandType, Payload: payload}
}

// ScheduleJob asks the worker to register a weekly job, replacing any job
// with the same id.
func (c *SchedulerClient) ScheduleJob(
	ctx context.Context,
	jobID string,
	trigger domain.ScheduleTrigger,
	jobType string,
	userID int64,
) (bool, error) {
	cmd := newCommand(CommandScheduleJob, map[string]any{
		payloadKeyJobID:   jobID,
		payloadKeyTrigger: trigger,
		payloadKeyJobType: jobType,
		payloadKeyUserID:  userID,
	})
	response, err := c.send(ctx, cmd, c.timeout)
	if err != nil {
		return false, err
	}
	return response.Success, responseError(response)
}

// RemoveJob asks the worker to drop a job. A missing job yields (false, nil).
func (c *SchedulerClient) RemoveJob(ctx context.Context, jobID string) (bool, error) {
	cmd := newCommand(CommandRemoveJob, map[string]any{payloadKeyJobID: jobID})
	response, err := c.send(ctx, cmd, c.timeout)
	if err != nil {
		return false, err
	}
	return response.Success, responseError(response)
}

// RescheduleJob asks the worker to swap a job's trigger. A missing job yields
// (false, nil).
func (c *SchedulerClient) RescheduleJob(ctx context.Context, jobID string, trigger domain.ScheduleTrigger) (bool, error) {
	cmd := newCommand(CommandRescheduleJob, map[string]any{
		payloadKeyJobID:   jobID,
		payloadKeyTrigger: trigger,
	})
	response, err := c.send(ctx, cmd, c.timeout)
	if err != nil {
		return false, err
	}
	return response.Success, responseError(response)
}

// GetJob fetches one job's observable state. A missing job yields (nil, nil).
func (c *SchedulerClient) GetJob(ctx context.Context, jobID string) (*domain.JobInfo, error) {
	cmd := newCommand(CommandGetJob, map[string]any{payloadKeyJobID: jobID})
	response, err := c.send(ctx, cmd, c.timeout)
	if err != nil {
		return nil, err
	}
	if err := responseError(response); err != nil {
		return nil, err
	}
	if len(response.Data) == 0 {
		return nil, nil
	}
	var info domain.JobInfo
	if err := response.DecodeData(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetAllJobs fetches the observable state of every scheduled job.
func (c *SchedulerClient) GetAllJobs(ctx context.Context) ([]domain.JobInfo, error) {
	cmd := newCommand(CommandGetAllJobs, nil)
	response, err := c.send(ctx, cmd, c.timeout)
	if err != nil {
		return nil, err
	}
	if err := responseError(response); err != nil {
		return nil, err
	}
	var infos []domain.JobInfo
	if err := response.DecodeData(&infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// Pause asks the worker to suspend trigger firing.
func (c *SchedulerClient) Pause(ctx context.Context) error {
	response, err := c.send(ctx, newCommand(CommandPause, nil), c.timeout)
	if err != nil {
		return err
	}
	return responseError(response)
}

// Resume asks the worker to restart trigger firing.
func (c *SchedulerClient) Resume(ctx context.Context) error {
	response, err := c.send(ctx, newCommand(CommandResume, nil), c.timeout)
	if err != nil {
		return err
	}
	return responseError(response)
}

// HealthCheck probes worker liveness. When the readiness probe says the
// worker never announced itself, the check fails immediately instead of
// waiting out the round-trip timeout.
func (c *SchedulerClient) HealthCheck(ctx context.Context) bool {
	if c.probe != nil && !c.probe.Ready(ctx) {
		c.logger.Warn("health check failed", logger.Error(ErrWorkerNotReady))
		return false
	}

	response, err := c.send(ctx, newCommand(CommandHealthCheck, nil), HealthCheckTimeout)
	if err != nil {
		c.logger.Warn("health check failed", logger.Error(err))
		return false
	}
	return response.Success
}

// Shutdown asks the worker to stop. The worker sends no response to a
// shutdown command, so this is fire-and-forget.
func (c *SchedulerClient) Shutdown(ctx context.Context) error {
	cmd := newCommand(CommandShutdown, nil)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	c.mu.Unlock()

	if err := c.commands.Send(ctx, cmd); err != nil {
		return fmt.Errorf("failed to send shutdown command: %w", err)
	}
	c.logger.Info("shutdown command sent")
	return nil
}

// responseError converts a failure response into an error value.
func responseError(response Response) error {
	if response.Success || response.Error == "" {
		return nil
	}
	return fmt.Errorf("scheduler worker: %s", response.Error)
}

var _ Port = (*SchedulerClient)(nil)
