package jobs

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/ANGHOOO/godlife/internal/telemetry"
	"github.com/ANGHOOO/godlife/internal/txn"
	"github.com/ANGHOOO/godlife/pkg/outbox"
)

// OutboxDrainer is a reference implementation of the lease/complete half of
// the outbox lifecycle (§4.5). The real delivery integrations it would hand
// events to are out of scope (§1) — this drainer only proves the lease
// contract is exercised end to end, logging each leased event instead of
// calling a provider. It never calls MarkFailed: any error rolls back the
// whole tick, leaving the leased events PENDING.
type OutboxDrainer struct {
	pool       *pgxpool.Pool
	logger     *slog.Logger
	leaseLimit int
}

// NewOutboxDrainer builds an OutboxDrainer that leases up to leaseLimit
// events per tick.
func NewOutboxDrainer(pool *pgxpool.Pool, logger *slog.Logger, leaseLimit int) *OutboxDrainer {
	return &OutboxDrainer{pool: pool, logger: logger, leaseLimit: leaseLimit}
}

// Start registers the tick handler on c at the given cron spec.
func (d *OutboxDrainer) Start(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, d.tick)
}

func (d *OutboxDrainer) tick() {
	ctx := context.Background()

	err := txn.Run(ctx, d.pool, func(ctx context.Context) error {
		store := outbox.NewStore(txn.FromContext(ctx))
		events, err := store.LeasePending(ctx, d.leaseLimit)
		if err != nil {
			return err
		}
		telemetry.OutboxEventsLeasedTotal.Add(float64(len(events)))

		for _, ev := range events {
			d.logger.Info("draining outbox event",
				"event_id", ev.ID,
				"aggregate_type", ev.AggregateType,
				"aggregate_id", ev.AggregateID,
				"event_type", ev.EventType,
			)
			if err := store.MarkComplete(ctx, ev.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		d.logger.Error("draining outbox", "error", err)
	}
}
