package bootstrap

import (
	"context"
	"log/slog"

	"coachwell/internal/scheduler"
	"coachwell/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		scheduler.New,
		func(s *scheduler.Scheduler) commands.ReminderScheduler { return s },
	),
	fx.Invoke(runScheduler),
)

// runScheduler rebuilds reminder state from the appointment store before the
// tick loop starts, so reminders survive a process restart.
func runScheduler(lc fx.Lifecycle, s *scheduler.Scheduler, logger *slog.Logger) {
	var cancel context.CancelFunc

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := s.Rehydrate(ctx); err != nil {
				return err
			}

			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			go s.Run(runCtx)

			logger.Info("reminder scheduler started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			if cancel != nil {
				cancel()
			}
			logger.Info("reminder scheduler stopped")
			return nil
		},
	})
}
