// Package reading implements the reading-reminder scheduler (C6):
// timezone-aware base reminders plus a conditional retry that checks
// completion state, with strict idempotency-before-policy ordering.
package reading

import (
	"time"

	"github.com/google/uuid"
)

// LogStatus enumerates a ReadingLog's outcome (§3).
type LogStatus string

const (
	LogStatusDone      LogStatus = "DONE"
	LogStatusSkipped   LogStatus = "SKIPPED"
	LogStatusAbandoned LogStatus = "ABANDONED"
)

// Plan is a user's reading-reminder configuration. Spec §3 notes "one
// active per user by lookup convention: latest by creation" — there is no
// separate active flag, Store.GetLatestForUser enforces the convention.
type Plan struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	RemindTime  string // HH:MM local wall time
	GoalMinutes int
	Enabled     bool
	CreatedAt   time.Time
}

// Log is a single completion/skip/abandon record against a reading plan.
type Log struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	ReadingPlanID *uuid.UUID
	Status        LogStatus
	CreatedAt     time.Time
}

// Result enumerates the outcome of scheduling a reminder or retry (§4.3).
type Result string

const (
	ResultCreated          Result = "created"
	ResultDuplicate        Result = "duplicate"
	ResultSkippedDisabled  Result = "skipped_disabled"
	ResultSkippedCompleted Result = "skipped_completed"
)

// ReminderOutcome is the return value of ScheduleDailyReminder and
// ScheduleRetryIfIncomplete.
type ReminderOutcome struct {
	Result         Result     `json:"result"`
	NotificationID *uuid.UUID `json:"notification_id,omitempty"`
	ScheduleAt     *time.Time `json:"schedule_at,omitempty"`
}

// BaseReminderRequest is the JSON body for POST /reading/reminders/base.
type BaseReminderRequest struct {
	UserID         uuid.UUID `json:"user_id" validate:"required"`
	ReferenceDate  string    `json:"reference_date" validate:"required"`
	IdempotencyKey string    `json:"idempotency_key"`
}

// RetryReminderRequest is the JSON body for POST /reading/reminders/retry.
type RetryReminderRequest struct {
	UserID            uuid.UUID `json:"user_id" validate:"required"`
	ReferenceDate     string    `json:"reference_date" validate:"required"`
	BaseNotificationID uuid.UUID `json:"base_notification_id" validate:"required"`
	IdempotencyKey    string    `json:"idempotency_key"`
}
