package cron

import (
	"context"
	"fmt"
	"sync"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
	"lifeweeks/internal/scheduler"

	"github.com/robfig/cron/v3"
)

// dayTokens maps domain weekdays (0=Monday..6=Sunday) to the cron
// library's native day-of-week tokens.
var dayTokens = map[domain.Weekday]string{
	domain.Monday:    "MON",
	domain.Tuesday:   "TUE",
	domain.Wednesday: "WED",
	domain.Thursday:  "THU",
	domain.Friday:    "FRI",
	domain.Saturday:  "SAT",
	domain.Sunday:    "SUN",
}

// DayToken returns the cron day-of-week token for a weekday. Out-of-range
// values fall back to Monday's token; this is a deliberate policy so a
// corrupted stored weekday degrades to a predictable schedule instead of
// failing the whole job.
func DayToken(day domain.Weekday) string {
	if token, ok := dayTokens[day]; ok {
		return token
	}
	return dayTokens[domain.Monday]
}

type jobEntry struct {
	entryID      cron.EntryID
	trigger      domain.ScheduleTrigger
	callback     scheduler.JobCallback
	callbackName string
	kwargs       map[string]any
}

// CronScheduler adapts robfig/cron to the JobScheduler contract. It owns the
// only live job table in the system; all access goes through its methods.
type CronScheduler struct {
	logger logger.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	jobs    map[string]*jobEntry
	running bool
	paused  bool

	runCtx context.Context
	cancel context.CancelFunc
}

// NewCronScheduler creates a stopped scheduler with an empty job table.
func NewCronScheduler(log logger.Logger) *CronScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &CronScheduler{
		logger: log.With(logger.String("component", "cron_scheduler")),
		cron:   cron.New(),
		jobs:   make(map[string]*jobEntry),
		runCtx: ctx,
		cancel: cancel,
	}
}

// ScheduleJob registers a weekly job. An existing job with the same id is
// replaced, never duplicated.
func (s *CronScheduler) ScheduleJob(
	jobID string,
	trigger domain.ScheduleTrigger,
	callback scheduler.JobCallback,
	callbackName string,
	kwargs map[string]any,
) error {
	if err := trigger.Validate(); err != nil {
		return fmt.Errorf("cannot schedule job %s: %w", jobID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobs[jobID]; ok {
		s.cron.Remove(existing.entryID)
		delete(s.jobs, jobID)
	}

	entryID, err := s.addLocked(jobID, trigger, callback, kwargs)
	if err != nil {
		return err
	}

	s.jobs[jobID] = &jobEntry{
		entryID:      entryID,
		trigger:      trigger,
		callback:     callback,
		callbackName: callbackName,
		kwargs:       kwargs,
	}

	s.logger.Debug("scheduled job",
		logger.String("job_id", jobID),
		logger.String("trigger", trigger.String()))
	return nil
}

// RemoveJob removes a job, reporting false when the id is unknown.
func (s *CronScheduler) RemoveJob(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.jobs[jobID]
	if !ok {
		s.logger.Debug("job not found for removal", logger.String("job_id", jobID))
		return false
	}

	s.cron.Remove(entry.entryID)
	delete(s.jobs, jobID)
	s.logger.Debug("removed job", logger.String("job_id", jobID))
	return true
}

// RescheduleJob swaps a job's trigger, keeping its callback, reporting false
// when the id is unknown.
func (s *CronScheduler) RescheduleJob(jobID string, trigger domain.ScheduleTrigger) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.jobs[jobID]
	if !ok {
		s.logger.Debug("job not found for reschedule", logger.String("job_id", jobID))
		return false
	}
	if err := trigger.Validate(); err != nil {
		s.logger.Warn("rejecting reschedule with invalid trigger",
			logger.String("job_id", jobID),
			logger.Error(err))
		return false
	}

	s.cron.Remove(entry.entryID)
	entryID, err := s.addLocked(jobID, trigger, entry.callback, entry.kwargs)
	if err != nil {
		// The old entry is already gone; drop the job rather than keep a
		// table row with no live cron entry.
		delete(s.jobs, jobID)
		s.logger.Error("failed to re-add job during reschedule",
			logger.String("job_id", jobID),
			logger.Error(err))
		return false
	}

	entry.entryID = entryID
	entry.trigger = trigger
	s.logger.Debug("rescheduled job",
		logger.String("job_id", jobID),
		logger.String("trigger", trigger.String()))
	return true
}

// GetJob returns the observable state of one job, or nil.
func (s *CronScheduler) GetJob(jobID string) *domain.JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.jobs[jobID]
	if !ok {
		return nil
	}
	info := s.infoLocked(jobID, entry)
	return &info
}

// GetAllJobs returns the observable state of every job in the table.
func (s *CronScheduler) GetAllJobs() []domain.JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]domain.JobInfo, 0, len(s.jobs))
	for jobID, entry := range s.jobs {
		infos = append(infos, s.infoLocked(jobID, entry))
	}
	return infos
}

// Start begins trigger evaluation. Calling Start on a running scheduler is a
// no-op.
func (s *CronScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.cron.Start()
	s.running = true
	s.paused = false
	s.logger.Info("cron scheduler started")
}

// Shutdown stops the scheduler. With wait=true it blocks until running jobs
// finish. Shutting down a stopped scheduler is a no-op.
func (s *CronScheduler) Shutdown(wait bool) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.paused = false
	stopCtx := s.cron.Stop()
	s.mu.Unlock()

	if wait {
		<-stopCtx.Done()
	}
	s.cancel()
	s.logger.Info("cron scheduler shut down")
}

// Pause suspends trigger firing without touching the job table.
func (s *CronScheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.paused {
		return
	}
	s.cron.Stop()
	s.paused = true
	s.logger.Info("cron scheduler paused")
}

// Resume restarts trigger firing after a Pause.
func (s *CronScheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || !s.paused {
		return
	}
	s.cron.Start()
	s.paused = false
	s.logger.Info("cron scheduler resumed")
}

// IsRunning reports whether the scheduler has been started and not shut down.
func (s *CronScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// addLocked registers the cron entry for a job. Callers hold s.mu.
func (s *CronScheduler) addLocked(
	jobID string,
	trigger domain.ScheduleTrigger,
	callback scheduler.JobCallback,
	kwargs map[string]any,
) (cron.EntryID, error) {
	userID, _ := kwargs["user_id"].(int64)

	spec := buildCronSpec(trigger)
	entryID, err := s.cron.AddFunc(spec, func() {
		callback(s.runCtx, userID)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add cron entry for job %s: %w", jobID, err)
	}
	return entryID, nil
}

func (s *CronScheduler) infoLocked(jobID string, entry *jobEntry) domain.JobInfo {
	trigger := entry.trigger
	info := domain.JobInfo{
		JobID:        jobID,
		Trigger:      &trigger,
		CallbackName: entry.callbackName,
		Kwargs:       entry.kwargs,
	}
	if s.running && !s.paused {
		if next := s.cron.Entry(entry.entryID).Next; !next.IsZero() {
			nextCopy := next
			info.NextRunTime = &nextCopy
		}
	}
	return info
}

// buildCronSpec renders a weekly trigger as a five-field cron spec with a
// per-entry timezone, e.g. "CRON_TZ=Europe/Berlin 30 9 * * MON".
func buildCronSpec(trigger domain.ScheduleTrigger) string {
	return fmt.Sprintf("CRON_TZ=%s %d %d * * %s",
		trigger.Location(), trigger.Minute, trigger.Hour, DayToken(trigger.DayOfWeek))
}

var _ scheduler.JobScheduler = (*CronScheduler)(nil)
