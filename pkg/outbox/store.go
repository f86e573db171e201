package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
	"github.com/ANGHOOO/godlife/internal/telemetry"
)

// Store provides database operations for outbox events.
type Store struct {
	dbtx db.DBTX
}

// NewStore constructs a Store bound to dbtx — always the ambient request
// transaction for Append, so the event commits atomically with the state
// change that produced it (invariant O1).
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

const eventColumns = `id, aggregate_type, aggregate_id, event_type, payload, status, retry_count, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.Status, &e.RetryCount, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Append inserts a new PENDING outbox event. Callers invoke this inside the
// same transaction as the state mutation it announces.
func (s *Store) Append(ctx context.Context, aggregateType string, aggregateID uuid.UUID, eventType string, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshaling outbox payload: %w", err)
	}

	query := `INSERT INTO outbox_events (id, aggregate_type, aggregate_id, event_type, payload, status, retry_count)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, 0)
		RETURNING ` + eventColumns
	row := s.dbtx.QueryRow(ctx, query, aggregateType, aggregateID, eventType, body, StatusPending)
	ev, err := scanEvent(row)
	if err != nil {
		return Event{}, fmt.Errorf("appending outbox event: %w", err)
	}
	telemetry.OutboxEventsAppendedTotal.WithLabelValues(aggregateType).Inc()
	return ev, nil
}

// LeasePending returns up to limit PENDING events ordered by creation time,
// claiming them (status → IN_FLIGHT) so concurrent drainers don't double
// deliver. Uses FOR UPDATE SKIP LOCKED so a busy row is simply skipped
// rather than blocking the caller (§4.5, §5).
func (s *Store) LeasePending(ctx context.Context, limit int) ([]Event, error) {
	query := `WITH claimed AS (
		SELECT id FROM outbox_events
		WHERE status = $1
		ORDER BY created_at
		FOR UPDATE SKIP LOCKED
		LIMIT $2
	)
	UPDATE outbox_events SET status = $3, updated_at = now()
	WHERE id IN (SELECT id FROM claimed)
	RETURNING ` + eventColumns

	rows, err := s.dbtx.Query(ctx, query, StatusPending, limit, StatusInFlight)
	if err != nil {
		return nil, fmt.Errorf("leasing outbox events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning leased outbox event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating leased outbox events: %w", err)
	}
	return events, nil
}

// MarkComplete transitions an event to COMPLETED.
func (s *Store) MarkComplete(ctx context.Context, id uuid.UUID) error {
	_, err := s.dbtx.Exec(ctx, `UPDATE outbox_events SET status = $1, updated_at = now() WHERE id = $2`, StatusCompleted, id)
	if err != nil {
		return fmt.Errorf("marking outbox event complete: %w", err)
	}
	return nil
}

// MarkFailed transitions an event to FAILED, increments retry_count, and
// merges {"failure_reason": reason} into its payload.
func (s *Store) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `UPDATE outbox_events
		SET status = $1,
		    retry_count = retry_count + 1,
		    payload = payload || jsonb_build_object('failure_reason', $2::text),
		    updated_at = now()
		WHERE id = $3`
	_, err := s.dbtx.Exec(ctx, query, StatusFailed, reason, id)
	if err != nil {
		return fmt.Errorf("marking outbox event failed: %w", err)
	}
	telemetry.OutboxEventsFailedTotal.Inc()
	return nil
}
