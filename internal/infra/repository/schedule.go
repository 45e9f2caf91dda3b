package repository

import (
	"context"

	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScheduleRepository persists one row per calendar day plus one row per
// slot. Transact locks the day row, so two bookers racing for the same
// slot serialize on it and the loser sees the already-booked state.
type ScheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Get(ctx context.Context, day schedule.Day) (*schedule.DailySchedule, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM daily_schedules WHERE day = $1::date)`,
		day.String(),
	).Scan(&exists)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to check daily schedule", err)
	}
	if !exists {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "daily schedule not found", nil)
	}

	rows, err := r.db.Query(ctx,
		`SELECT slot_time, status, booked_by_user_id, booked_by_name
		   FROM schedule_slots
		  WHERE day = $1::date`,
		day.String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load slots", err)
	}
	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, err
	}
	return schedule.ReconstructDailySchedule(day, slots), nil
}

func (r *ScheduleRepository) Transact(
	ctx context.Context,
	day schedule.Day,
	fn func(*schedule.DailySchedule) error,
) error {
	_, err := runInTxWithRetry(ctx, r.db, func(tx pgx.Tx) (struct{}, error) {
		var zero struct{}

		// Lazily create the day so there is always a row to lock.
		if _, err := tx.Exec(ctx,
			`INSERT INTO daily_schedules (day) VALUES ($1::date) ON CONFLICT (day) DO NOTHING`,
			day.String(),
		); err != nil {
			return zero, infra.WrapRepoErr(infra.KindDBFailure, "failed to ensure daily schedule", err)
		}

		if _, err := tx.Exec(ctx,
			`SELECT day FROM daily_schedules WHERE day = $1::date FOR UPDATE`,
			day.String(),
		); err != nil {
			return zero, infra.WrapRepoErr(infra.KindDBFailure, "failed to lock daily schedule", err)
		}

		ds, err := loadSchedule(ctx, tx, day)
		if err != nil {
			return zero, err
		}

		// Domain errors abort the transaction untouched so callers can
		// match them.
		if err := fn(ds); err != nil {
			return zero, err
		}

		if err := saveSlots(ctx, tx, ds); err != nil {
			return zero, err
		}
		return zero, nil
	})
	return err
}

func loadSchedule(ctx context.Context, tx pgx.Tx, day schedule.Day) (*schedule.DailySchedule, error) {
	rows, err := tx.Query(ctx,
		`SELECT slot_time, status, booked_by_user_id, booked_by_name
		   FROM schedule_slots
		  WHERE day = $1::date`,
		day.String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to load slots", err)
	}
	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, err
	}
	return schedule.ReconstructDailySchedule(day, slots), nil
}

func saveSlots(ctx context.Context, tx pgx.Tx, ds *schedule.DailySchedule) error {
	if _, err := tx.Exec(ctx,
		`DELETE FROM schedule_slots WHERE day = $1::date`,
		ds.Date().String(),
	); err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to clear slots", err)
	}

	for _, s := range ds.Slots() {
		var bookedByID *uuid.UUID
		var bookedByName *string
		if b := s.BookedBy(); b != nil {
			bookedByID = &b.UserID
			bookedByName = &b.Name
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO schedule_slots (day, slot_time, status, booked_by_user_id, booked_by_name)
			 VALUES ($1::date, $2, $3, $4, $5)`,
			ds.Date().String(), s.Time().String(), string(s.Status()), bookedByID, bookedByName,
		); err != nil {
			return infra.WrapRepoErr(infra.KindDBFailure, "failed to write slot", err)
		}
	}
	return nil
}

func scanSlots(rows pgx.Rows) ([]schedule.Slot, error) {
	var slots []schedule.Slot
	for rows.Next() {
		var (
			slotTime     string
			statusRaw    string
			bookedByID   *uuid.UUID
			bookedByName *string
		)
		if err := rows.Scan(&slotTime, &statusRaw, &bookedByID, &bookedByName); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan slot", err)
		}

		at, err := schedule.NewClockTime(slotTime)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "corrupt slot time", err)
		}
		status, err := schedule.ParseSlotStatus(statusRaw)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "corrupt slot status", err)
		}

		var booker *schedule.Booker
		if bookedByID != nil {
			name := ""
			if bookedByName != nil {
				name = *bookedByName
			}
			booker = &schedule.Booker{UserID: *bookedByID, Name: name}
		}
		slots = append(slots, schedule.NewSlot(at, status, booker))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read slots", err)
	}
	return slots, nil
}
