package repository

import (
	"context"
	"log/slog"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/domain/schedule"
	"coachwell/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CancellationRepository commits the slot release and the appointment's
// cancelled status as one transaction, per the booking invariant that the
// two writes never diverge.
type CancellationRepository struct {
	db *pgxpool.Pool
}

func NewCancellationRepository(db *pgxpool.Pool) *CancellationRepository {
	return &CancellationRepository{db: db}
}

func (r *CancellationRepository) CancelBooking(
	ctx context.Context,
	id uuid.UUID,
	validate func(*appointment.Appointment) error,
) (*appointment.Appointment, error) {
	return runInTxWithRetry(ctx, r.db, func(tx pgx.Tx) (*appointment.Appointment, error) {
		row := tx.QueryRow(ctx,
			`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1 FOR UPDATE`, id)
		appt, err := scanAppointment(row)
		if err != nil {
			return nil, err
		}

		// Ownership and state policy live with the caller; it mutates the
		// entity (Cancel) when the checks pass.
		if err := validate(appt); err != nil {
			return nil, err
		}

		day := schedule.DayOf(appt.SessionTime())
		at := schedule.ClockTimeOf(appt.SessionTime())

		if _, err := tx.Exec(ctx,
			`SELECT day FROM daily_schedules WHERE day = $1::date FOR UPDATE`,
			day.String(),
		); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to lock daily schedule", err)
		}

		tag, err := tx.Exec(ctx,
			`UPDATE schedule_slots
			    SET status = $3, booked_by_user_id = NULL, booked_by_name = NULL
			  WHERE day = $1::date AND slot_time = $2 AND status = $4`,
			day.String(), at.String(),
			string(schedule.StatusAvailable), string(schedule.StatusBooked),
		)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to release slot", err)
		}
		if tag.RowsAffected() == 0 {
			slog.Warn("cancellation found no booked slot to release",
				"appointment_id", id, "day", day.String(), "slot_time", at.String())
		}

		if _, err := tx.Exec(ctx,
			`UPDATE appointments SET status = $2, updated_at = now() WHERE id = $1`,
			id, string(appt.Status()),
		); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to update appointment", err)
		}

		return appt, nil
	})
}
