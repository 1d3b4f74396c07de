package service

import (
	"context"
	"fmt"
	"time"

	"mediquick-api/config"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// jobTimeout bounds a single background job run.
const jobTimeout = 2 * time.Minute

// NoShowSweeper marks overdue scheduled consultations as no-show.
type NoShowSweeper interface {
	SweepNoShows(ctx context.Context, grace time.Duration) (int, error)
}

// ViewFlusher persists buffered view counts.
type ViewFlusher interface {
	Flush(ctx context.Context) (int, error)
}

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron *cron.Cron
	log  *logrus.Logger
}

func NewScheduler(log *logrus.Logger, cfg config.JobsConfig, sweeper NoShowSweeper, flusher ViewFlusher) (*Scheduler, error) {
	cronLogger := cron.PrintfLogger(log)
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	))

	s := &Scheduler{cron: c, log: log}

	if _, err := c.AddFunc(cfg.NoShowSchedule, s.job("no-show sweep", func(ctx context.Context) (int, error) {
		return sweeper.SweepNoShows(ctx, cfg.NoShowGrace)
	})); err != nil {
		return nil, fmt.Errorf("invalid no-show schedule %q: %w", cfg.NoShowSchedule, err)
	}

	if _, err := c.AddFunc(cfg.ViewFlushSchedule, s.job("view flush", flusher.Flush)); err != nil {
		return nil, fmt.Errorf("invalid view flush schedule %q: %w", cfg.ViewFlushSchedule, err)
	}

	return s, nil
}

func (s *Scheduler) job(name string, run func(ctx context.Context) (int, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := run(ctx)
		if err != nil {
			s.log.Warnf("Job %s failed: %+v", name, err)
			return
		}
		s.log.WithFields(logrus.Fields{"job": name, "affected": n}).Debug("Job finished")
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infof("Scheduler started with %d jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out with jobs still running")
	}
}
