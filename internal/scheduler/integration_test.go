package scheduler_test

import (
	"context"
	"testing"
	"time"

	"lifeweeks/internal/coordinator/memory"
	"lifeweeks/internal/coordinator/readiness"
	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
	"lifeweeks/internal/queue/channel"
	"lifeweeks/internal/scheduler"
	"lifeweeks/internal/scheduler/cron"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startStack wires a real client and worker over channel queues, with a real
// cron scheduler and an in-memory readiness marker, the way the application
// assembles them.
func startStack(t *testing.T) (*scheduler.SchedulerClient, *scheduler.SchedulerWorker, context.CancelFunc) {
	t.Helper()

	log := logger.NewNop()
	commands := channel.NewChannelQueue[scheduler.Command](8, log)
	responses := channel.NewChannelQueue[scheduler.Response](8, log)

	coord := memory.NewMemoryCoordinator()
	marker := readiness.NewMarker(coord, log)

	worker := scheduler.NewSchedulerWorker(commands, responses, cron.NewCronScheduler(log), marker, log)
	worker.RegisterHandler("weekly_notification", "send_weekly_notification",
		func(ctx context.Context, userID int64) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Run(ctx)
	}()
	require.Eventually(t, func() bool {
		return worker.State() == scheduler.WorkerRunning
	}, time.Second, 5*time.Millisecond)

	client := scheduler.NewSchedulerClient(commands, responses, marker, log)
	client.Start()

	t.Cleanup(func() {
		client.Close()
		cancel()
		<-done
	})

	return client, worker, cancel
}

func TestScheduleAndInspectRoundTrip(t *testing.T) {
	client, _, _ := startStack(t)
	ctx := context.Background()

	trigger := domain.ScheduleTrigger{DayOfWeek: domain.Friday, Hour: 9, Minute: 30, Timezone: "Europe/Berlin"}
	jobID := domain.NotificationJobID(42)

	ok, err := client.ScheduleJob(ctx, jobID, trigger, "weekly_notification", 42)
	require.NoError(t, err)
	require.True(t, ok)

	info, err := client.GetJob(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, jobID, info.JobID)
	require.NotNil(t, info.Trigger)
	assert.Equal(t, trigger, *info.Trigger)
	require.NotNil(t, info.NextRunTime, "running scheduler reports a next fire time")

	jobs, err := client.GetAllJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	removed, err := client.RemoveJob(ctx, jobID)
	require.NoError(t, err)
	assert.True(t, removed)

	info, err = client.GetJob(ctx, jobID)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestRescheduleRoundTrip(t *testing.T) {
	client, _, _ := startStack(t)
	ctx := context.Background()

	jobID := domain.NotificationJobID(7)
	first := domain.ScheduleTrigger{DayOfWeek: domain.Monday, Hour: 8}
	ok, err := client.ScheduleJob(ctx, jobID, first, "weekly_notification", 7)
	require.NoError(t, err)
	require.True(t, ok)

	second := domain.ScheduleTrigger{DayOfWeek: domain.Sunday, Hour: 20, Minute: 15}
	ok, err = client.RescheduleJob(ctx, jobID, second)
	require.NoError(t, err)
	assert.True(t, ok)

	info, err := client.GetJob(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, second, *info.Trigger)
}

func TestHealthCheckAcrossWorkerLifecycle(t *testing.T) {
	client, worker, cancel := startStack(t)
	ctx := context.Background()

	assert.True(t, client.HealthCheck(ctx))

	// Stop the worker; the readiness marker is withdrawn during cleanup and
	// subsequent health checks fail fast instead of timing out.
	cancel()
	require.Eventually(t, func() bool {
		return worker.State() == scheduler.WorkerStopped
	}, time.Second, 5*time.Millisecond)

	start := time.Now()
	assert.False(t, client.HealthCheck(ctx))
	assert.Less(t, time.Since(start), scheduler.HealthCheckTimeout)
}

func TestPauseAndResumeRoundTrip(t *testing.T) {
	client, _, _ := startStack(t)
	ctx := context.Background()

	require.NoError(t, client.Pause(ctx))
	require.NoError(t, client.Resume(ctx))
	assert.True(t, client.HealthCheck(ctx))
}

func TestShutdownCommandStopsWorker(t *testing.T) {
	client, worker, _ := startStack(t)

	require.NoError(t, client.Shutdown(context.Background()))
	require.Eventually(t, func() bool {
		return worker.State() == scheduler.WorkerStopped
	}, time.Second, 5*time.Millisecond)
}
