package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/apperr"
	"github.com/ANGHOOO/godlife/internal/db"
	"github.com/ANGHOOO/godlife/internal/telemetry"
	"github.com/ANGHOOO/godlife/pkg/outbox"
)

// Service implements create_pending_notification and mark_as_retried (§4.2).
// Every state change appends an outbox event in the same transaction.
type Service struct {
	store  *Store
	outbox *outbox.Store
}

// NewService builds a Service backed by dbtx, which must be the ambient
// request transaction so notification writes and outbox appends commit
// atomically (invariant O1).
func NewService(dbtx db.DBTX) *Service {
	return &Service{store: NewStore(dbtx), outbox: outbox.NewStore(dbtx)}
}

// DeriveKey builds the default idempotency key for a notification when the
// caller supplies none (§4.2).
func DeriveKey(kind string, userID uuid.UUID, relatedID *uuid.UUID, scheduleAt time.Time) string {
	related := ""
	if relatedID != nil {
		related = relatedID.String()
	}
	return fmt.Sprintf("notification:%s:%s:%s:%s", kind, userID, related, scheduleAt.UTC().Format(time.RFC3339))
}

// CreatePending creates a SCHEDULED notification under the given
// idempotency key, or returns the existing one unchanged if the key was
// already used (§4.2). Returns (notification, created).
func (s *Service) CreatePending(ctx context.Context, userID uuid.UUID, kind string, relatedID *uuid.UUID, scheduleAt time.Time, idempotencyKey string, payload map[string]any) (Notification, bool, error) {
	if idempotencyKey == "" {
		idempotencyKey = DeriveKey(kind, userID, relatedID, scheduleAt)
	}

	existing, err := s.store.GetByIdempotencyKey(ctx, idempotencyKey)
	if err == nil {
		return existing, false, nil
	}
	if !db.IsNoRows(err) {
		return Notification{}, false, fmt.Errorf("looking up notification by key: %w", err)
	}

	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Notification{}, false, fmt.Errorf("marshaling notification payload: %w", err)
	}

	n, err := s.store.Create(ctx, userID, kind, relatedID, scheduleAt, idempotencyKey, body)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			// Lost a create race; the winning writer's row is authoritative.
			existing, lookupErr := s.store.GetByIdempotencyKey(ctx, idempotencyKey)
			if lookupErr == nil {
				return existing, false, nil
			}
		}
		return Notification{}, false, err
	}

	if _, err := s.outbox.Append(ctx, "notification", n.ID, "NotificationScheduled", map[string]any{
		"notification_id": n.ID,
		"kind":             kind,
		"schedule_at":      scheduleAt.UTC(),
	}); err != nil {
		return Notification{}, false, fmt.Errorf("appending NotificationScheduled outbox event: %w", err)
	}

	telemetry.NotificationsScheduledTotal.WithLabelValues(kind).Inc()
	return n, true, nil
}

// MarkAsRetried increments retry_count, sets status RETRY_SCHEDULED, and
// resets schedule_at to now, returning apperr.CodeNotificationNotFound if
// the notification doesn't exist (§4.2).
func (s *Service) MarkAsRetried(ctx context.Context, notificationID uuid.UUID) (Notification, error) {
	if _, err := s.store.GetByID(ctx, notificationID); err != nil {
		if db.IsNoRows(err) {
			return Notification{}, apperr.New(apperr.CodeNotificationNotFound, "notification not found")
		}
		return Notification{}, err
	}

	n, err := s.store.MarkRetried(ctx, notificationID, time.Now().UTC())
	if err != nil {
		return Notification{}, err
	}

	if _, err := s.outbox.Append(ctx, "notification", n.ID, "NotificationRetryScheduled", map[string]any{
		"notification_id": n.ID,
		"retry_count":      n.RetryCount,
	}); err != nil {
		return Notification{}, fmt.Errorf("appending NotificationRetryScheduled outbox event: %w", err)
	}

	telemetry.NotificationRetriesTotal.Inc()
	return n, nil
}
