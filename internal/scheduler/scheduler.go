package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"expiryx-backend/internal/config"
	"expiryx-backend/internal/service/expiry"
)

// passTimeout bounds a single evaluation pass so a wedged database
// connection cannot pin a job forever.
const passTimeout = 5 * time.Minute

// Scheduler owns the cron runner and the registered evaluation jobs. It is
// constructed once at process start and stopped at shutdown; there is no
// ambient global registry.
//
// Overlap policy: a trigger firing while the same job is still running is
// skipped (cron.SkipIfStillRunning), never run concurrently, because the
// jobs' read-then-write dedup logic assumes a single writer per job type.
type Scheduler struct {
	cron      *cron.Cron
	expirySvc *expiry.Service
	cfg       config.ScheduleConfig
	logger    *zap.Logger

	expiryEntry cron.EntryID
}

// NewScheduler creates a scheduler running in the given timezone.
func NewScheduler(cfg config.ScheduleConfig, expirySvc *expiry.Service, loc *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	cl := cronLogAdapter{logger: logger.Sugar()}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	return &Scheduler{
		cron:      c,
		expirySvc: expirySvc,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the jobs, starts the cron runner and kicks off one
// immediate expiry pass. Config validation has already vetted the cron
// expressions, so registration errors are surfaced rather than expected.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("expiry_schedule", s.cfg.ExpiryCheck),
		zap.String("low_stock_schedule", s.cfg.LowStockCheck),
		zap.String("timezone", s.cfg.Timezone),
	)

	expiryEntry, err := s.cron.AddFunc(s.cfg.ExpiryCheck, s.runExpiryCheck)
	if err != nil {
		return err
	}
	s.expiryEntry = expiryEntry

	if _, err := s.cron.AddFunc(s.cfg.LowStockCheck, s.runLowStockCheck); err != nil {
		return err
	}

	s.cron.Start()

	// Startup pass goes through the wrapped job so the same overlap guard
	// covers it.
	go s.cron.Entry(s.expiryEntry).WrappedJob.Run()

	return nil
}

// Stop halts the cron runner; a running pass finishes on its own.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runExpiryCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()

	if _, err := s.expirySvc.CheckExpiringBatches(ctx); err != nil {
		// Roll-back already happened inside the pass; the next scheduled
		// tick retries.
		s.logger.Error("expiry check failed", zap.Error(err))
	}
}

func (s *Scheduler) runLowStockCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()

	if _, err := s.expirySvc.CheckLowStock(ctx); err != nil {
		s.logger.Error("low stock check failed", zap.Error(err))
	}
}

// cronLogAdapter bridges cron's logger interface onto zap.
type cronLogAdapter struct {
	logger *zap.SugaredLogger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debugw(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
