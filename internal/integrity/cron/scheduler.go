package cronjob

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/marinv/contractor-pm/internal/integrity"
)

type Auditor interface {
	Run(ctx context.Context) (integrity.Report, error)
}

// Scheduler runs the integrity audit on a cron schedule with a seconds field.
type Scheduler struct {
	c       *cron.Cron
	auditor Auditor
	timeout time.Duration
}

func NewScheduler(auditor Auditor) *Scheduler {
	l := slogLogger{slog.Default().With(slog.String("component", "cron"))}
	return &Scheduler{
		c: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		auditor: auditor,
		timeout: 5 * time.Minute,
	}
}

// Start registers the audit under a cron schedule and starts the loop.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.c.AddFunc(schedule, s.runOnce); err != nil {
		return err
	}
	s.c.Start()
	slog.Info("integrity audit scheduled", slog.String("schedule", schedule))
	return nil
}

// Stop halts scheduling and waits for a running audit, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.c.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		slog.Warn("integrity audit still running at shutdown")
	}
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	// Errors are logged by the auditor.
	_, _ = s.auditor.Run(ctx)
}

// slogLogger adapts slog to cron.Logger.
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Info(msg string, keysAndValues ...any) {
	s.l.Debug(msg, keysAndValues...)
}

func (s slogLogger) Error(err error, msg string, keysAndValues ...any) {
	s.l.Error(msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
