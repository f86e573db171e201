package exerciseplan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
)

// Store provides database operations for plans, sessions, and set-states.
type Store struct {
	dbtx db.DBTX
}

// NewStore constructs a Store bound to dbtx.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

const planColumns = `id, user_id, target_date, source, status, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (Plan, error) {
	var p Plan
	err := row.Scan(&p.ID, &p.UserID, &p.TargetDate, &p.Source, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePlan inserts a new ACTIVE plan. If the partial unique index on
// (user_id, target_date) where status='ACTIVE' is violated, the error
// satisfies db.IsUniqueViolation("uq_exercise_plans_user_target_date_active")
// and the service translates it to PlanConflict (§4.1, P1).
func (s *Store) CreatePlan(ctx context.Context, userID uuid.UUID, targetDate time.Time, source Source) (Plan, error) {
	query := `INSERT INTO exercise_plans (id, user_id, target_date, source, status)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING ` + planColumns
	row := s.dbtx.QueryRow(ctx, query, userID, targetDate, source, PlanStatusActive)
	p, err := scanPlan(row)
	if err != nil {
		return Plan{}, err
	}
	return p, nil
}

// GetPlan returns the plan with the given id.
func (s *Store) GetPlan(ctx context.Context, id uuid.UUID) (Plan, error) {
	query := `SELECT ` + planColumns + ` FROM exercise_plans WHERE id = $1`
	return scanPlan(s.dbtx.QueryRow(ctx, query, id))
}

// ActivePlanExists reports whether an ACTIVE plan already exists for
// (userID, targetDate), used as the pre-check ahead of the insert (§4.1).
func (s *Store) ActivePlanExists(ctx context.Context, userID uuid.UUID, targetDate time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM exercise_plans WHERE user_id = $1 AND target_date = $2 AND status = $3)`
	if err := s.dbtx.QueryRow(ctx, query, userID, targetDate, PlanStatusActive).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking active plan: %w", err)
	}
	return exists, nil
}

const sessionColumns = `id, plan_id, order_no, exercise_name, target_sets, target_reps, target_weight, target_rest_sec, notes`

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.PlanID, &s.OrderNo, &s.ExerciseName, &s.TargetSets, &s.TargetReps, &s.TargetWeight, &s.TargetRestSec, &s.Notes)
	return s, err
}

// CreateSession inserts one session of the seed template.
func (s *Store) CreateSession(ctx context.Context, planID uuid.UUID, orderNo int, exerciseName string, targetSets int) (Session, error) {
	query := `INSERT INTO exercise_sessions (id, plan_id, order_no, exercise_name, target_sets)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING ` + sessionColumns
	row := s.dbtx.QueryRow(ctx, query, planID, orderNo, exerciseName, targetSets)
	sess, err := scanSession(row)
	if err != nil {
		return Session{}, fmt.Errorf("inserting session: %w", err)
	}
	return sess, nil
}

// GetSession returns the session with the given id.
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM exercise_sessions WHERE id = $1`
	return scanSession(s.dbtx.QueryRow(ctx, query, id))
}

const setColumns = `id, session_id, set_no, status, performed_reps, performed_weight, completed_at, skipped_at`

func scanSet(row interface{ Scan(...any) error }) (SetState, error) {
	var st SetState
	err := row.Scan(&st.ID, &st.SessionID, &st.SetNo, &st.Status, &st.PerformedReps, &st.PerformedWeight, &st.CompletedAt, &st.SkippedAt)
	return st, err
}

// CreateSetState inserts one PENDING set-state.
func (s *Store) CreateSetState(ctx context.Context, sessionID uuid.UUID, setNo int) (SetState, error) {
	query := `INSERT INTO exercise_set_states (id, session_id, set_no, status)
		VALUES (gen_random_uuid(), $1, $2, $3)
		RETURNING ` + setColumns
	row := s.dbtx.QueryRow(ctx, query, sessionID, setNo, SetStatusPending)
	st, err := scanSet(row)
	if err != nil {
		return SetState{}, fmt.Errorf("inserting set state: %w", err)
	}
	return st, nil
}

// GetSetState returns the set-state at (sessionID, setNo).
func (s *Store) GetSetState(ctx context.Context, sessionID uuid.UUID, setNo int) (SetState, error) {
	query := `SELECT ` + setColumns + ` FROM exercise_set_states WHERE session_id = $1 AND set_no = $2`
	return scanSet(s.dbtx.QueryRow(ctx, query, sessionID, setNo))
}

// ListSetStates returns every set-state in sessionID ordered by set_no,
// used both for the ordering precondition scan and the next-pending lookup
// (§4.1).
func (s *Store) ListSetStates(ctx context.Context, sessionID uuid.UUID) ([]SetState, error) {
	query := `SELECT ` + setColumns + ` FROM exercise_set_states WHERE session_id = $1 ORDER BY set_no`
	rows, err := s.dbtx.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing set states: %w", err)
	}
	defer rows.Close()

	var states []SetState
	for rows.Next() {
		st, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning set state: %w", err)
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating set states: %w", err)
	}
	return states, nil
}

// MarkDone transitions a set-state to DONE, stamping completed_at and
// performed metrics.
func (s *Store) MarkDone(ctx context.Context, id uuid.UUID, at time.Time, reps *int, weight *float64) (SetState, error) {
	query := `UPDATE exercise_set_states
		SET status = $1, completed_at = $2, performed_reps = $3, performed_weight = $4
		WHERE id = $5
		RETURNING ` + setColumns
	row := s.dbtx.QueryRow(ctx, query, SetStatusDone, at, reps, weight, id)
	st, err := scanSet(row)
	if err != nil {
		return SetState{}, fmt.Errorf("marking set done: %w", err)
	}
	return st, nil
}

// MarkSkipped transitions a set-state to SKIPPED, stamping skipped_at.
func (s *Store) MarkSkipped(ctx context.Context, id uuid.UUID, at time.Time) (SetState, error) {
	query := `UPDATE exercise_set_states
		SET status = $1, skipped_at = $2
		WHERE id = $3
		RETURNING ` + setColumns
	row := s.dbtx.QueryRow(ctx, query, SetStatusSkipped, at, id)
	st, err := scanSet(row)
	if err != nil {
		return SetState{}, fmt.Errorf("marking set skipped: %w", err)
	}
	return st, nil
}
