package scheduler

import (
	"context"
	"time"

	"github.com/rentdesk/rentdesk/internal/config"
	ierr "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/internal/logger"
	"github.com/rentdesk/rentdesk/internal/sentry"
	"github.com/rentdesk/rentdesk/internal/types"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// sweepTimeout bounds a single run across all tenants
const sweepTimeout = 5 * time.Minute

// OverdueMarker flags past-due unpaid installments of the tenant in ctx
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int, error)
}

// Scheduler runs the nightly overdue sweep in-process
type Scheduler struct {
	cron   *cron.Cron
	cfg    *config.ScheduleConfig
	marker OverdueMarker
	logger *logger.Logger
	sentry *sentry.Service
}

func New(cfg *config.Configuration, marker OverdueMarker, logger *logger.Logger, sentry *sentry.Service) (*Scheduler, error) {
	cronLogger := &cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Schedule.Location()),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
			cron.WithLogger(cronLogger),
		),
		cfg:    &cfg.Schedule,
		marker: marker,
		logger: logger,
		sentry: sentry,
	}

	if !cfg.Schedule.OverdueSweepEnabled {
		return s, nil
	}

	if _, err := s.cron.AddFunc(cfg.Schedule.OverdueCron, s.runSweep); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Invalid overdue cron expression %q", cfg.Schedule.OverdueCron).
			Mark(ierr.ErrValidation)
	}
	return s, nil
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	s.Sweep(ctx)
}

// Sweep marks overdue installments for every configured tenant and
// returns the total number flagged. Tenant failures are logged and skipped.
func (s *Scheduler) Sweep(ctx context.Context) int {
	total := 0
	for _, tenantID := range s.cfg.Tenants {
		tenantCtx := types.SetTenantID(ctx, tenantID)
		tenantCtx = types.SetUserID(tenantCtx, types.DefaultUserID)

		marked, err := s.marker.MarkOverdue(tenantCtx)
		if err != nil {
			s.logger.Errorw("overdue sweep failed",
				"tenant_id", tenantID,
				"error", err,
			)
			s.sentry.CaptureException(tenantCtx, err)
			continue
		}
		total += marked
	}

	s.logger.Infow("overdue sweep finished",
		"tenants", len(s.cfg.Tenants),
		"marked", total,
	)
	return total
}

func (s *Scheduler) Start() {
	s.logger.Infow("starting scheduler",
		"overdue_cron", s.cfg.OverdueCron,
		"enabled", s.cfg.OverdueSweepEnabled,
		"timezone", s.cfg.Location().String(),
	)
	s.cron.Start()
}

// Stop waits for a running sweep to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Module provides the scheduler. It only runs once RegisterHooks is invoked,
// which the server does in local mode.
func Module() fx.Option {
	return fx.Provide(New)
}

func RegisterHooks(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}

// cronLogger adapts the zap logger to cron.Logger
type cronLogger struct {
	logger *logger.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
