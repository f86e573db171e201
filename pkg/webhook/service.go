package webhook

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
	"github.com/ANGHOOO/godlife/internal/telemetry"
	"github.com/ANGHOOO/godlife/pkg/outbox"
)

// Service implements handle_event (§4.4): dedup-then-insert, with an
// OutboxEvent appended only on first observation.
type Service struct {
	store  *Store
	outbox *outbox.Store
	dedup  *Deduplicator
}

// NewService builds a Service backed by dbtx, the ambient request
// transaction. dedup may be nil, in which case the Redis fast path is
// skipped and every check falls straight to the database.
func NewService(dbtx db.DBTX, dedup *Deduplicator) *Service {
	return &Service{store: NewStore(dbtx), outbox: outbox.NewStore(dbtx), dedup: dedup}
}

// HandleEvent deduplicates by (provider, idempotency_key) first, then by
// (provider, event_id) when present, returning (event, created). On
// created=false the caller MUST NOT invoke any downstream dispatch (§4.4).
func (s *Service) HandleEvent(ctx context.Context, provider, eventType string, userID *uuid.UUID, idempotencyKey string, eventID *string, rawPayload []byte) (Event, bool, error) {
	telemetry.WebhookEventsReceivedTotal.WithLabelValues(provider).Inc()

	if s.dedup != nil {
		if id, hit := s.dedup.Check(ctx, provider, idempotencyKey); hit {
			if ev, err := s.store.GetByID(ctx, id); err == nil {
				telemetry.WebhookEventsDuplicateTotal.WithLabelValues(provider).Inc()
				return ev, false, nil
			}
			// Cache entry stale (row deleted or cache corrupted) — fall
			// through to the authoritative database lookup below.
		}
	}

	existing, err := s.store.GetByIdempotencyKey(ctx, provider, idempotencyKey)
	if err == nil {
		telemetry.WebhookEventsDuplicateTotal.WithLabelValues(provider).Inc()
		return existing, false, nil
	}
	if !db.IsNoRows(err) {
		return Event{}, false, fmt.Errorf("looking up webhook event by idempotency key: %w", err)
	}

	if eventID != nil {
		existing, err := s.store.GetByEventID(ctx, provider, *eventID)
		if err == nil {
			telemetry.WebhookEventsDuplicateTotal.WithLabelValues(provider).Inc()
			return existing, false, nil
		}
		if !db.IsNoRows(err) {
			return Event{}, false, fmt.Errorf("looking up webhook event by event id: %w", err)
		}
	}

	ev, err := s.store.Create(ctx, provider, eventType, userID, idempotencyKey, eventID, rawPayload)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			// Lost a create race to a concurrent identical webhook; the
			// winner's row is authoritative (§5, idempotency under a race).
			existing, lookupErr := s.store.GetByIdempotencyKey(ctx, provider, idempotencyKey)
			if lookupErr == nil {
				telemetry.WebhookEventsDuplicateTotal.WithLabelValues(provider).Inc()
				return existing, false, nil
			}
		}
		return Event{}, false, err
	}

	if _, err := s.outbox.Append(ctx, "webhook", ev.ID, "WebhookReceived", map[string]any{
		"provider":   provider,
		"event_type": eventType,
		"event_id":   eventID,
	}); err != nil {
		return Event{}, false, fmt.Errorf("appending WebhookReceived outbox event: %w", err)
	}

	if s.dedup != nil {
		s.dedup.Record(ctx, provider, idempotencyKey, ev.ID)
	}

	return ev, true, nil
}
