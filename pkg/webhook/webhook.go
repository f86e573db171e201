// Package webhook implements the webhook ingress deduplicator (C7): dedup
// by (provider, idempotency_key) and (provider, event_id), with an
// optional same-transaction dispatch into the exercise-plan set-result
// path on first observation. Adapted from the teacher's alert webhook
// ingress and Redis-backed Deduplicator.
package webhook

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is an inbound provider webhook, deduplicated before processing.
type Event struct {
	ID             uuid.UUID
	Provider       string
	EventType      string
	UserID         *uuid.UUID
	IdempotencyKey string
	EventID        *string
	RawPayload     json.RawMessage
	Processed      bool
	RetryCount     int
	ReasonCode     *string
	CreatedAt      time.Time
}

// IngressRequest is the JSON body for POST /webhooks/{provider}. SetResult
// is populated only when the provider payload carries plan/session/set
// fields to dispatch into the exercise-plan service (§4.4).
type IngressRequest struct {
	IdempotencyKey string          `json:"idempotency_key" validate:"required"`
	EventType      string          `json:"event_type" validate:"required"`
	UserID         *uuid.UUID      `json:"user_id"`
	EventID        *string         `json:"event_id"`
	Raw            json.RawMessage `json:"raw"`
	SetResult      *SetResultFields `json:"set_result,omitempty"`
}

// SetResultFields carries the plan/session/set-result fields a provider
// may embed in its webhook body, composed with submit_set_result (§4.4).
type SetResultFields struct {
	PlanID          uuid.UUID `json:"plan_id"`
	SessionID       uuid.UUID `json:"session_id"`
	SetNo           int       `json:"set_no"`
	Result          string    `json:"result"`
	PerformedReps   *int      `json:"performed_reps"`
	PerformedWeight *float64  `json:"performed_weight"`
}

// Outcome is the return value of handle_event's HTTP composition (§6.2).
type Outcome struct {
	Result  string     `json:"result"` // "accepted" | "duplicate"
	EventID uuid.UUID  `json:"event_id"`
}
