// Package outbox implements the transactional outbox (C3): every domain
// mutation that downstream providers must eventually hear about appends an
// OutboxEvent in the same commit as the state change (invariant O1). The
// lease query is adapted from ErlanBelekov's dist-job-scheduler
// ClaimAndFire, which uses the same FOR UPDATE SKIP LOCKED claim pattern.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status enumerates an OutboxEvent's delivery lifecycle (§3).
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusInFlight  Status = "IN_FLIGHT"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Event is a single domain event queued for delivery.
type Event struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   uuid.UUID
	EventType     string
	Payload       json.RawMessage
	Status        Status
	RetryCount    int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
