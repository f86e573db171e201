// Package exerciseplan implements the exercise-plan state machine (C4):
// plan generation from a fixed seed template, and ordered set-result
// submission with idempotent next-set notification.
package exerciseplan

import (
	"time"

	"github.com/google/uuid"
)

// PlanStatus enumerates an ExercisePlan's lifecycle (§3).
type PlanStatus string

const (
	PlanStatusDraft    PlanStatus = "DRAFT"
	PlanStatusActive   PlanStatus = "ACTIVE"
	PlanStatusDone     PlanStatus = "DONE"
	PlanStatusCanceled PlanStatus = "CANCELED"
)

// Source enumerates where a plan's layout came from (§4.1).
type Source string

const (
	SourceRule Source = "rule"
	SourceLLM  Source = "llm"
)

// SetStatus enumerates an ExerciseSetState's lifecycle (§3).
type SetStatus string

const (
	SetStatusPending    SetStatus = "PENDING"
	SetStatusInProgress SetStatus = "IN_PROGRESS"
	SetStatusDone       SetStatus = "DONE"
	SetStatusSkipped    SetStatus = "SKIPPED"
	SetStatusFailed     SetStatus = "FAILED"
)

// IsTerminal reports whether status is DONE, SKIPPED, or FAILED — no
// further mutation of performed metrics is allowed past this point (X2).
func (s SetStatus) IsTerminal() bool {
	return s == SetStatusDone || s == SetStatusSkipped || s == SetStatusFailed
}

// Plan is a per-day exercise plan and its owned sessions (§3, ownership).
type Plan struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TargetDate time.Time
	Source     Source
	Status     PlanStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Session is one exercise within a plan, exclusively owned by it.
type Session struct {
	ID            uuid.UUID
	PlanID        uuid.UUID
	OrderNo       int
	ExerciseName  string
	TargetSets    int
	TargetReps    *int
	TargetWeight  *float64
	TargetRestSec *int
	Notes         *string
}

// SetState is a single set within a session, exclusively owned by it.
type SetState struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	SetNo           int
	Status          SetStatus
	PerformedReps   *int
	PerformedWeight *float64
	CompletedAt     *time.Time
	SkippedAt       *time.Time
}

// seedExercise describes one row of the fixed seed template (§4.1).
type seedExercise struct {
	Name       string
	Category   string
	TargetSets int
}

// seedTemplate is the fixed three-session layout materialized by every
// generate_plan call ("Seed template", glossary).
var seedTemplate = []seedExercise{
	{Name: "Bench Press", Category: "chest", TargetSets: 3},
	{Name: "Barbell Row", Category: "back", TargetSets: 3},
	{Name: "Plank", Category: "core", TargetSets: 3},
}

// GenerateRequest is the JSON body for POST /plans/generate.
type GenerateRequest struct {
	UserID     uuid.UUID `json:"user_id" validate:"required"`
	TargetDate string    `json:"target_date" validate:"required"`
	Source     string    `json:"source"`
}

// SetResultRequest is the JSON body for POST
// /plans/{p}/sessions/{s}/sets/{n}/result.
type SetResultRequest struct {
	Result          string   `json:"result" validate:"required"`
	PerformedReps   *int     `json:"performed_reps"`
	PerformedWeight *float64 `json:"performed_weight"`
}

// SetResultOutcome is the return value of submit_set_result (§4.1).
type SetResultOutcome struct {
	SetID            uuid.UUID  `json:"set_id"`
	Status           SetStatus  `json:"status"`
	NextPendingSetNo *int       `json:"next_pending_set_no,omitempty"`
	NotificationID   *uuid.UUID `json:"notification_id,omitempty"`
}

// PlanResponse is the JSON response for a generated plan.
type PlanResponse struct {
	ID         uuid.UUID          `json:"id"`
	UserID     uuid.UUID          `json:"user_id"`
	TargetDate string             `json:"target_date"`
	Source     Source             `json:"source"`
	Status     PlanStatus         `json:"status"`
	Sessions   []SessionResponse  `json:"sessions,omitempty"`
}

// SessionResponse is the JSON shape of a session and its set-states.
type SessionResponse struct {
	ID           uuid.UUID    `json:"id"`
	OrderNo      int          `json:"order_no"`
	ExerciseName string       `json:"exercise_name"`
	TargetSets   int          `json:"target_sets"`
	Sets         []SetResponse `json:"sets"`
}

// SetResponse is the JSON shape of a single set-state.
type SetResponse struct {
	ID     uuid.UUID `json:"id"`
	SetNo  int       `json:"set_no"`
	Status SetStatus `json:"status"`
}
