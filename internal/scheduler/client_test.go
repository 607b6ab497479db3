package scheduler

import (
	"context"
	"testing"
	"time"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
	"lifeweeks/internal/queue/channel"
	queue "lifeweeks/internal/queue/iface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProbe bool

func (p staticProbe) Ready(ctx context.Context) bool { return bool(p) }

type clientHarness struct {
	client    *SchedulerClient
	commands  queue.Queue[Command]
	responses queue.Queue[Response]
}

func startClient(t *testing.T, probe ReadinessProbe) *clientHarness {
	t.Helper()

	log := logger.NewNop()
	commands := channel.NewChannelQueue[Command](8, log)
	responses := channel.NewChannelQueue[Response](8, log)

	client := NewSchedulerClient(commands, responses, probe, log)
	client.Start()
	t.Cleanup(client.Close)

	return &clientHarness{client: client, commands: commands, responses: responses}
}

// respond consumes one command and answers it through fn.
func (h *clientHarness) respond(t *testing.T, fn func(Command) Response) {
	t.Helper()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		cmd, ok := h.commands.Receive(ctx)
		if !ok {
			return
		}
		_ = h.responses.Send(ctx, fn(cmd))
	}()
}

func TestClientScheduleJobRoundTrip(t *testing.T) {
	h := startClient(t, nil)
	h.respond(t, func(cmd Command) Response {
		return NewResponse(cmd.ID, true)
	})

	ok, err := h.client.ScheduleJob(context.Background(), "job-1",
		domain.ScheduleTrigger{DayOfWeek: domain.Friday, Hour: 9}, "weekly_notification", 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, h.client.PendingCount())
}

func TestClientTimeoutCleansPending(t *testing.T) {
	h := startClient(t, nil)
	h.client.timeout = 50 * time.Millisecond
	// No responder: the command times out.

	_, err := h.client.RemoveJob(context.Background(), "job-1")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Equal(t, 0, h.client.PendingCount())
}

func TestClientDropsUnmatchedResponse(t *testing.T) {
	h := startClient(t, nil)

	ctx := context.Background()
	require.NoError(t, h.responses.Send(ctx, NewResponse("nobody-waiting", true)))

	// The stray response must not disturb a later command.
	h.respond(t, func(cmd Command) Response {
		return NewResponse(cmd.ID, true)
	})
	ok, err := h.client.RemoveJob(ctx, "job-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, h.client.PendingCount())
}

func TestClientCorrelatesOutOfOrderResponses(t *testing.T) {
	h := startClient(t, nil)

	// Collect two commands, answer them in reverse order with distinct
	// success values.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		first, ok := h.commands.Receive(ctx)
		if !ok {
			return
		}
		second, ok := h.commands.Receive(ctx)
		if !ok {
			return
		}
		_ = h.responses.Send(ctx, NewResponse(second.ID, false))
		_ = h.responses.Send(ctx, NewResponse(first.ID, true))
	}()

	type result struct {
		ok  bool
		err error
	}
	firstCh := make(chan result, 1)

	go func() {
		ok, err := h.client.RemoveJob(context.Background(), "first")
		firstCh <- result{ok, err}
	}()

	// Make sure the first command is enqueued before the second.
	require.Eventually(t, func() bool { return h.client.PendingCount() == 1 }, time.Second, time.Millisecond)

	secondOK, err := h.client.RemoveJob(context.Background(), "second")
	require.NoError(t, err)
	assert.False(t, secondOK)

	first := <-firstCh
	require.NoError(t, first.err)
	assert.True(t, first.ok)
	assert.Equal(t, 0, h.client.PendingCount())
}

func TestClientGetJobDecodesData(t *testing.T) {
	h := startClient(t, nil)
	next := time.Date(2026, time.September, 7, 9, 0, 0, 0, time.UTC)
	h.respond(t, func(cmd Command) Response {
		response, err := NewDataResponse(cmd.ID, domain.JobInfo{
			JobID:       "job-1",
			Trigger:     &domain.ScheduleTrigger{DayOfWeek: domain.Monday, Hour: 9},
			NextRunTime: &next,
		})
		if err != nil {
			return NewErrorResponse(cmd.ID, err)
		}
		return response
	})

	info, err := h.client.GetJob(context.Background(), "job-1")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "job-1", info.JobID)
	assert.Equal(t, domain.Monday, info.Trigger.DayOfWeek)
	require.NotNil(t, info.NextRunTime)
	assert.True(t, next.Equal(*info.NextRunTime))
}

func TestClientGetJobMissingIsNil(t *testing.T) {
	h := startClient(t, nil)
	h.respond(t, func(cmd Command) Response {
		return NewResponse(cmd.ID, true)
	})

	info, err := h.client.GetJob(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestClientHealthCheckFailsFastWhenWorkerNotReady(t *testing.T) {
	h := startClient(t, staticProbe(false))

	start := time.Now()
	healthy := h.client.HealthCheck(context.Background())
	assert.False(t, healthy)
	assert.Less(t, time.Since(start), HealthCheckTimeout)

	// The probe short-circuits before any command is enqueued.
	assert.Equal(t, 0, h.commands.Len())
}

func TestClientHealthCheckRoundTripWhenReady(t *testing.T) {
	h := startClient(t, staticProbe(true))
	h.respond(t, func(cmd Command) Response {
		return NewResponse(cmd.ID, true)
	})

	assert.True(t, h.client.HealthCheck(context.Background()))
}

func TestClientShutdownIsFireAndForget(t *testing.T) {
	h := startClient(t, nil)

	require.NoError(t, h.client.Shutdown(context.Background()))
	assert.Equal(t, 0, h.client.PendingCount())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cmd, ok := h.commands.Receive(ctx)
	require.True(t, ok)
	assert.Equal(t, CommandShutdown, cmd.Type)
}

func TestClientRejectsCommandsAfterClose(t *testing.T) {
	h := startClient(t, nil)
	h.client.Close()

	_, err := h.client.RemoveJob(context.Background(), "job-1")
	assert.ErrorIs(t, err, ErrClientClosed)

	err = h.client.Shutdown(context.Background())
	assert.ErrorIs(t, err, ErrClientClosed)
}
