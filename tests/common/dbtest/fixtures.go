//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedSlot publishes one open slot; day is YYYY-MM-DD and slotTime HH:MM.
func SeedSlot(t *testing.T, pool *pgxpool.Pool, day, slotTime string) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx,
		"INSERT INTO daily_schedules (day) VALUES ($1) ON CONFLICT (day) DO NOTHING", day)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `
		INSERT INTO schedule_slots (day, slot_time, status)
		VALUES ($1, $2, 'available')
		ON CONFLICT (day, slot_time) DO NOTHING`, day, slotTime)
	require.NoError(t, err)
}

// ResetDB truncates every table so suites can run subtests from a clean slate.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx,
		"TRUNCATE TABLE schedule_slots, daily_schedules, appointments")
	return err
}
