package queries

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra"
	"coachwell/internal/pkg/clock"
	"coachwell/internal/pkg/config"
)

type ScheduleReader interface {
	Get(ctx context.Context, day schedule.Day) (*schedule.DailySchedule, error)
}

type AvailabilityQueries interface {
	ListAvailable(ctx context.Context, windowDays int) ([]time.Time, error)
}

type availabilityQueriesImpl struct {
	schedules ScheduleReader
	cfg       config.BookingConfig
	clock     clock.Clock
	logger    *slog.Logger
}

func NewAvailabilityQueries(
	schedules ScheduleReader,
	cfg config.BookingConfig,
	clk clock.Clock,
	logger *slog.Logger,
) AvailabilityQueries {
	return &availabilityQueriesImpl{
		schedules: schedules,
		cfg:       cfg,
		clock:     clk,
		logger:    logger,
	}
}

// ListAvailable scans windowDays calendar dates starting today and returns
// every open slot strictly in the future, ascending. A day that fails to
// load contributes nothing instead of aborting the scan.
func (q *availabilityQueriesImpl) ListAvailable(ctx context.Context, windowDays int) ([]time.Time, error) {
	if windowDays <= 0 || windowDays > q.cfg.MaxWindowDays {
		windowDays = q.cfg.MaxWindowDays
	}

	now := q.clock.Now().UTC()
	out := make([]time.Time, 0)

	day := schedule.DayOf(now)
	for i := 0; i < windowDays; i++ {
		ds, err := q.schedules.Get(ctx, day)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				q.logger.Warn("skipping day with unreadable schedule",
					"day", day.String(), "error", err)
			}
			day = day.Next()
			continue
		}

		for _, at := range ds.OpenTimes() {
			instant := at.Instant(day)
			if instant.After(now) {
				out = append(out, instant)
			}
		}
		day = day.Next()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}
