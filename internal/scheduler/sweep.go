package scheduler

import (
	"context"
	"errors"
	"time"

	"gym-membership-be/internal/pkg/logger"
	"gym-membership-be/internal/pkg/timeutil"
	"gym-membership-be/internal/repository/unitofwork"
	"gym-membership-be/pkg/lock"
	membershipEvents "gym-membership-be/pkg/membership/events"
	"gym-membership-be/pkg/membership/lifecycle"

	"github.com/robfig/cron/v3"
)

const (
	sweepLockName = "membership-expiration-sweep"
	sweepTimeout  = 5 * time.Minute
)

// SweepJob runs the expiration sweep under a single-owner lock.
type SweepJob struct {
	engine    *lifecycle.Engine
	factory   unitofwork.RepositoryFactory
	locker    lock.Locker
	publisher membershipEvents.Publisher
	clock     timeutil.Clock
	logger    logger.ILogger
}

func NewSweepJob(
	engine *lifecycle.Engine,
	factory unitofwork.RepositoryFactory,
	locker lock.Locker,
	publisher membershipEvents.Publisher,
	clock timeutil.Clock,
	logger logger.ILogger,
) *SweepJob {
	return &SweepJob{
		engine:    engine,
		factory:   factory,
		locker:    locker,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// RunOnce sweeps as of now. It returns (0, nil) without sweeping when another
// run holds the lock.
func (j *SweepJob) RunOnce(ctx context.Context) (int, error) {
	release, err := j.locker.TryLock(ctx, sweepLockName)
	if errors.Is(err, lock.ErrHeld) {
		j.logger.Info("CRON", "Sweep already running elsewhere, skipping", nil)
		return 0, nil
	}
	if err != nil {
		j.logger.Error("CRON", "Failed to acquire sweep lock", map[string]interface{}{"error": err.Error()})
		return 0, err
	}
	defer func() {
		if err := release(context.Background()); err != nil {
			j.logger.Warn("CRON", "Failed to release sweep lock", map[string]interface{}{"error": err.Error()})
		}
	}()

	asOf := j.clock.Now()
	j.logger.Info("CRON", "Starting expiration sweep", map[string]interface{}{"asOf": asOf.Format(time.RFC3339)})

	count, err := j.engine.SweepExpirations(ctx, j.factory.NewUnitOfWork(ctx), asOf)
	if err != nil {
		j.logger.Error("CRON", "Expiration sweep failed", map[string]interface{}{"error": err.Error()})
		return 0, err
	}

	j.publisher.MembersExpired(ctx, count, asOf)
	j.logger.Info("CRON", "Finished expiration sweep", map[string]interface{}{"expired": count})
	return count, nil
}

// Scheduler drives background jobs on cron expressions with a seconds field.
type Scheduler struct {
	cron   *cron.Cron
	logger logger.ILogger
}

func New(loc *time.Location, logger logger.ILogger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		logger: logger,
	}
}

// AddSweep registers job on schedule, e.g. "0 0 * * * *" for hourly.
func (s *Scheduler) AddSweep(schedule string, job *SweepJob) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		_, _ = job.RunOnce(ctx)
	})
	if err != nil {
		s.logger.Error("CRON", "Failed to add sweep job", map[string]interface{}{
			"schedule": schedule,
			"error":    err.Error(),
		})
		return err
	}
	s.logger.Info("CRON", "Sweep job scheduled", map[string]interface{}{"schedule": schedule})
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs up to the deadline of ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("CRON", "Cron jobs stopped gracefully", nil)
	case <-ctx.Done():
		s.logger.Warn("CRON", "Cron jobs forced to stop after timeout", nil)
	}
}
