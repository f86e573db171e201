// Package jobs hosts the periodic drivers that stand in for the upstream
// callers the core's service methods assume: a per-user scheduler that
// invokes the reading-reminder operations on a real clock, and a reference
// outbox drainer. Both are ambient infrastructure, not core operations —
// the core only exposes the operations these drivers call.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/ANGHOOO/godlife/internal/txn"
	"github.com/ANGHOOO/godlife/pkg/reading"
)

// ReminderDriver sweeps every enabled reading plan once per tick and
// schedules the day's base reminder, adapted from the escalation engine's
// ticker-loop shape — here driven by robfig/cron instead of a raw ticker,
// matching hibernator's own cron wiring.
type ReminderDriver struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewReminderDriver builds a ReminderDriver.
func NewReminderDriver(pool *pgxpool.Pool, logger *slog.Logger) *ReminderDriver {
	return &ReminderDriver{pool: pool, logger: logger}
}

// Start registers the tick handler on c at the given cron spec (e.g.
// "@every 1m") and returns the entry id for later removal.
func (d *ReminderDriver) Start(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, d.tick)
}

func (d *ReminderDriver) tick() {
	ctx := context.Background()
	referenceDate := time.Now().UTC()

	userIDs, err := d.enabledPlanUsers(ctx)
	if err != nil {
		d.logger.Error("listing enabled reading plan users", "error", err)
		return
	}

	for _, userID := range userIDs {
		err := txn.Run(ctx, d.pool, func(ctx context.Context) error {
			svc := reading.NewService(txn.FromContext(ctx))
			_, err := svc.ScheduleDailyReminder(ctx, userID, referenceDate, "")
			return err
		})
		if err != nil {
			d.logger.Error("scheduling daily reminder", "user_id", userID, "error", err)
		}
	}
}

func (d *ReminderDriver) enabledPlanUsers(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT DISTINCT user_id FROM reading_plans WHERE enabled = true`
	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
