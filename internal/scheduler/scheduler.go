// Package scheduler re-runs the favorite report on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	applog "github.com/yourusername/favstats/internal/logger"
	"github.com/yourusername/favstats/internal/service"
)

// ReportRunner produces one report per call
type ReportRunner interface {
	Run(ctx context.Context) (*service.Report, error)
}

// ReportSink receives every successfully produced report
type ReportSink func(report *service.Report) error

// Scheduler manages scheduled report jobs
type Scheduler struct {
	cron            *cron.Cron
	runner          ReportRunner
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
	jobTimeout      time.Duration

	lastRun   time.Time
	lastErr   error
	runsTotal int
}

// NewScheduler creates a new scheduler
func NewScheduler(runner ReportRunner, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		runner:          runner,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
		jobTimeout:      10 * time.Minute,
	}
}

// ScheduleReport registers the report job under a standard five-field cron
// expression
func (s *Scheduler) ScheduleReport(cronExpression string, sink ReportSink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		if err := s.RunOnce(ctx, sink); err != nil {
			s.logger.WithError(err).Error("Scheduled report failed")
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled report job")

	return nil
}

// RunOnce runs the report immediately and hands it to sink
func (s *Scheduler) RunOnce(ctx context.Context, sink ReportSink) error {
	report, err := s.runner.Run(ctx)
	if err == nil && sink != nil {
		err = sink(report)
	}

	s.mu.Lock()
	s.lastRun = time.Now().UTC()
	s.lastErr = err
	s.runsTotal++
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"races":  len(report.Races),
	}).Info("Scheduled report completed")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs up to the
// graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	done := s.cron.Stop().Done()
	s.mu.Unlock()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			nextTime := entry.Next
			if nextRun.IsZero() || nextTime.Before(nextRun) {
				nextRun = nextTime
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}

// LastRun returns when the last run finished, the number of runs so far and
// the last run's error
func (s *Scheduler) LastRun() (time.Time, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.runsTotal, s.lastErr
}

// Check reports the outcome of the most recent run. It satisfies
// health.Checker.
func (s *Scheduler) Check(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastErr != nil {
		return fmt.Errorf("last report run failed: %w", s.lastErr)
	}
	return nil
}
