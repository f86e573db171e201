package webhook

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// dedupTTL is the Redis TTL for webhook dedup cache entries.
const dedupTTL = 10 * time.Minute

const redisKeyPrefix = "webhook:dedup:"

// Deduplicator is a Redis-backed fast path in front of the authoritative
// (provider, idempotency_key)/(provider, event_id) uniqueness constraints,
// adapted from pkg/alert/dedup.go's Redis-then-DB pattern.
type Deduplicator struct {
	rdb    *redis.Client
	logger *slog.Logger
}

// NewDeduplicator builds a Deduplicator.
func NewDeduplicator(rdb *redis.Client, logger *slog.Logger) *Deduplicator {
	return &Deduplicator{rdb: rdb, logger: logger}
}

func dedupKey(provider, key string) string {
	return redisKeyPrefix + provider + ":" + key
}

// Check returns the cached event id for (provider, key) if present. A miss
// is not authoritative — the caller still consults the database inside the
// transaction before deciding accepted vs duplicate.
func (d *Deduplicator) Check(ctx context.Context, provider, key string) (uuid.UUID, bool) {
	if d.rdb == nil {
		return uuid.Nil, false
	}
	val, err := d.rdb.Get(ctx, dedupKey(provider, key)).Result()
	if err != nil {
		if err != redis.Nil {
			d.logger.Warn("webhook dedup cache lookup failed", "error", err)
		}
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		d.logger.Warn("invalid uuid in webhook dedup cache", "value", val)
		return uuid.Nil, false
	}
	return id, true
}

// Record warms the cache for (provider, key) after a first-observation
// insert, before the surrounding transaction commits. If that transaction
// rolls back, the entry points at a row that does not exist; the caller's
// GetByID check on a hit then falls through to the database lookup.
func (d *Deduplicator) Record(ctx context.Context, provider, key string, eventID uuid.UUID) {
	if d.rdb == nil {
		return
	}
	if err := d.rdb.Set(ctx, dedupKey(provider, key), eventID.String(), dedupTTL).Err(); err != nil {
		d.logger.Warn("failed to warm webhook dedup cache", "error", err)
	}
}
