package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
)

// Store provides database operations for notifications.
type Store struct {
	dbtx db.DBTX
}

// NewStore constructs a Store bound to dbtx.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

const notificationColumns = `id, user_id, kind, related_id, status, schedule_at, retry_count, idempotency_key, payload, created_at, updated_at`

func scanNotification(row interface{ Scan(...any) error }) (Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Kind, &n.RelatedID, &n.Status, &n.ScheduleAt, &n.RetryCount, &n.IdempotencyKey, &n.Payload, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// GetByIdempotencyKey returns the notification with the given key, or
// db.IsNoRows(err) if none exists. §4.2/§4.3 consult this before every
// create path, ahead of any policy gate.
func (s *Store) GetByIdempotencyKey(ctx context.Context, key string) (Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE idempotency_key = $1`
	return scanNotification(s.dbtx.QueryRow(ctx, query, key))
}

// GetByID returns the notification with the given id.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`
	return scanNotification(s.dbtx.QueryRow(ctx, query, id))
}

// Create inserts a new SCHEDULED notification with retry_count 0.
func (s *Store) Create(ctx context.Context, userID uuid.UUID, kind string, relatedID *uuid.UUID, scheduleAt time.Time, idempotencyKey string, payload []byte) (Notification, error) {
	query := `INSERT INTO notifications (id, user_id, kind, related_id, status, schedule_at, retry_count, idempotency_key, payload)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, 0, $6, $7)
		RETURNING ` + notificationColumns
	row := s.dbtx.QueryRow(ctx, query, userID, kind, relatedID, StatusScheduled, scheduleAt, idempotencyKey, payload)
	n, err := scanNotification(row)
	if err != nil {
		return Notification{}, fmt.Errorf("inserting notification: %w", err)
	}
	return n, nil
}

// MarkRetried bumps retry_count, sets status RETRY_SCHEDULED, and resets
// schedule_at to now.
func (s *Store) MarkRetried(ctx context.Context, id uuid.UUID, now time.Time) (Notification, error) {
	query := `UPDATE notifications
		SET retry_count = retry_count + 1, status = $1, schedule_at = $2, updated_at = now()
		WHERE id = $3
		RETURNING ` + notificationColumns
	row := s.dbtx.QueryRow(ctx, query, StatusRetryScheduled, now, id)
	n, err := scanNotification(row)
	if err != nil {
		return Notification{}, fmt.Errorf("marking notification retried: %w", err)
	}
	return n, nil
}
