package webhook

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
)

// Store provides database operations for webhook events.
type Store struct {
	dbtx db.DBTX
}

// NewStore constructs a Store bound to dbtx.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

const eventColumns = `id, provider, event_type, user_id, idempotency_key, event_id, raw_payload, processed, retry_count, reason_code, created_at`

func scanEvent(row interface{ Scan(...any) error }) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Provider, &e.EventType, &e.UserID, &e.IdempotencyKey, &e.EventID, &e.RawPayload, &e.Processed, &e.RetryCount, &e.ReasonCode, &e.CreatedAt)
	return e, err
}

// GetByIdempotencyKey returns the event for (provider, idempotencyKey), or
// db.IsNoRows(err) if none exists (W1).
func (s *Store) GetByIdempotencyKey(ctx context.Context, provider, idempotencyKey string) (Event, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events WHERE provider = $1 AND idempotency_key = $2`
	return scanEvent(s.dbtx.QueryRow(ctx, query, provider, idempotencyKey))
}

// GetByID returns the event with the given id.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (Event, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events WHERE id = $1`
	return scanEvent(s.dbtx.QueryRow(ctx, query, id))
}

// GetByEventID returns the event for (provider, eventID), or
// db.IsNoRows(err) if none exists (W2).
func (s *Store) GetByEventID(ctx context.Context, provider, eventID string) (Event, error) {
	query := `SELECT ` + eventColumns + ` FROM webhook_events WHERE provider = $1 AND event_id = $2`
	return scanEvent(s.dbtx.QueryRow(ctx, query, provider, eventID))
}

// Create inserts a new webhook event, marked processed.
func (s *Store) Create(ctx context.Context, provider, eventType string, userID *uuid.UUID, idempotencyKey string, eventID *string, rawPayload []byte) (Event, error) {
	query := `INSERT INTO webhook_events (id, provider, event_type, user_id, idempotency_key, event_id, raw_payload, processed, retry_count)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, true, 0)
		RETURNING ` + eventColumns
	row := s.dbtx.QueryRow(ctx, query, provider, eventType, userID, idempotencyKey, eventID, rawPayload)
	e, err := scanEvent(row)
	if err != nil {
		return Event{}, fmt.Errorf("inserting webhook event: %w", err)
	}
	return e, nil
}
