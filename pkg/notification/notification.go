// Package notification implements the notification service (C5):
// idempotency-keyed creation and retry bookkeeping, with an outbox event
// appended on every state change.
package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status enumerates a Notification's delivery lifecycle (§3).
type Status string

const (
	StatusScheduled      Status = "SCHEDULED"
	StatusSent           Status = "SENT"
	StatusAcknowledged   Status = "ACKNOWLEDGED"
	StatusComplete       Status = "COMPLETE"
	StatusFailed         Status = "FAILED"
	StatusRetryScheduled Status = "RETRY_SCHEDULED"
	StatusManualReview   Status = "MANUAL_REVIEW"
)

// Reserved notification kinds (§3).
const (
	KindExerciseStart       = "EXERCISE_START"
	KindExerciseNextSet     = "EXERCISE_NEXT_SET"
	KindReadingReminder     = "READING_REMINDER"
	KindReadingReminderRetry = "READING_REMINDER_RETRY"
)

// Notification is a scheduled or delivered notification to a user.
type Notification struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Kind           string
	RelatedID      *uuid.UUID
	Status         Status
	ScheduleAt     time.Time
	RetryCount     int
	IdempotencyKey string
	Payload        json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PayloadField reads a string field out of n's JSON payload, returning ""
// if absent or the payload isn't an object. Used for scope validation
// (§4.3) without needing typed payload variants for every notification
// kind.
func (n *Notification) PayloadField(key string) string {
	var m map[string]any
	if err := json.Unmarshal(n.Payload, &m); err != nil {
		return ""
	}
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
