package repository

import (
	"context"
	"errors"
	"time"

	"coachwell/internal/domain/appointment"
	"coachwell/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

const appointmentColumns = `id, user_id, display_name, contact_address, session_time, status, meeting_id, join_url, created_at, updated_at`

func (r *AppointmentRepository) Create(ctx context.Context, appt *appointment.Appointment) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO appointments (id, user_id, display_name, contact_address, session_time, status, meeting_id, join_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		appt.ID(), appt.UserID(), appt.DisplayName(), appt.ContactAddress(),
		appt.SessionTime(), string(appt.Status()), appt.MeetingID(), appt.JoinURL(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) Get(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

func (r *AppointmentRepository) Update(ctx context.Context, appt *appointment.Appointment) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE appointments
		    SET status = $2, meeting_id = $3, join_url = $4, updated_at = now()
		  WHERE id = $1`,
		appt.ID(), string(appt.Status()), appt.MeetingID(), appt.JoinURL(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "appointment not found", nil)
	}
	return nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+appointmentColumns+`
		   FROM appointments
		  WHERE user_id = $1
		  ORDER BY (status = 'upcoming') DESC, session_time DESC`,
		userID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list appointments", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *AppointmentRepository) ListUpcoming(ctx context.Context) ([]*appointment.Appointment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+appointmentColumns+`
		   FROM appointments
		  WHERE status = $1
		  ORDER BY session_time ASC`,
		string(appointment.StatusUpcoming),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list upcoming appointments", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*appointment.Appointment, error) {
	var (
		id, userID                  uuid.UUID
		displayName, contactAddress string
		sessionTime                 time.Time
		statusRaw                   string
		meetingID, joinURL          *string
		createdAt, updatedAt        time.Time
	)
	err := row.Scan(&id, &userID, &displayName, &contactAddress,
		&sessionTime, &statusRaw, &meetingID, &joinURL, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "appointment not found", err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan appointment", err)
	}

	status, err := appointment.ParseStatus(statusRaw)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "corrupt appointment status", err)
	}

	return appointment.Reconstruct(
		id, userID, displayName, contactAddress,
		sessionTime.UTC(), status, meetingID, joinURL,
		createdAt, updatedAt,
	), nil
}

func scanAppointments(rows pgx.Rows) ([]*appointment.Appointment, error) {
	var out []*appointment.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read appointments", err)
	}
	return out, nil
}
