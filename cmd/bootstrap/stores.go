package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra/db"
	"coachwell/internal/infra/memstore"
	"coachwell/internal/infra/repository"
	"coachwell/internal/pkg/config"
	"coachwell/internal/scheduler"
	"coachwell/internal/usecase/commands"
	"coachwell/internal/usecase/queries"

	"go.uber.org/fx"
)

// Stores bundles the persistence ports so the driver switch happens once.
type Stores struct {
	Schedules    commands.ScheduleStore
	Appointments commands.AppointmentStore
	Canceller    commands.CancellationStore
}

var StoreModule = fx.Module("stores",
	fx.Provide(
		NewStores,
		func(s *Stores) commands.ScheduleStore { return s.Schedules },
		func(s *Stores) commands.AppointmentStore { return s.Appointments },
		func(s *Stores) commands.CancellationStore { return s.Canceller },
		func(s *Stores) queries.ScheduleReader { return s.Schedules },
		func(s *Stores) queries.AppointmentReader { return s.Appointments },
		func(s *Stores) scheduler.AppointmentSource { return s.Appointments },
	),
)

func NewStores(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*Stores, error) {
	if cfg.DB.Driver == "memory" {
		ms := memstore.New()
		seedDevSlots(ms, cfg.Booking.MaxWindowDays)
		logger.Info("using in-memory stores", "driver", cfg.DB.Driver)
		return &Stores{
			Schedules:    ms.Schedules(),
			Appointments: ms.Appointments(),
			Canceller:    ms.Canceller(),
		}, nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return &Stores{
		Schedules:    repository.NewScheduleRepository(pool),
		Appointments: repository.NewAppointmentRepository(pool),
		Canceller:    repository.NewCancellationRepository(pool),
	}, nil
}

// seedDevSlots publishes hourly business-hours slots so a memory-backed
// instance is bookable without a migration step.
func seedDevSlots(ms *memstore.Store, windowDays int) {
	times := make([]schedule.ClockTime, 0, 8)
	for hour := 9; hour < 17; hour++ {
		at, err := schedule.NewClockTime(fmt.Sprintf("%02d:00", hour))
		if err != nil {
			continue
		}
		times = append(times, at)
	}

	day := schedule.DayOf(time.Now())
	for i := 0; i < windowDays; i++ {
		ms.Seed(day, times...)
		day = day.Next()
	}
}
