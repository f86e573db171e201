package reading

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
)

// Store provides database operations for reading plans and logs.
type Store struct {
	dbtx db.DBTX
}

// NewStore constructs a Store bound to dbtx.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

const planColumns = `id, user_id, remind_time, goal_minutes, enabled, created_at`

func scanPlan(row interface{ Scan(...any) error }) (Plan, error) {
	var p Plan
	err := row.Scan(&p.ID, &p.UserID, &p.RemindTime, &p.GoalMinutes, &p.Enabled, &p.CreatedAt)
	return p, err
}

// CreatePlan inserts a new reading plan for userID, enabled by default.
func (s *Store) CreatePlan(ctx context.Context, userID uuid.UUID, remindTime string, goalMinutes int) (Plan, error) {
	query := `INSERT INTO reading_plans (user_id, remind_time, goal_minutes, enabled)
		VALUES ($1, $2, $3, true)
		RETURNING ` + planColumns
	return scanPlan(s.dbtx.QueryRow(ctx, query, userID, remindTime, goalMinutes))
}

// GetLatestForUser returns the most-recently-created reading plan for
// userID — "one active per user by lookup convention: latest by creation"
// (§3). db.IsNoRows(err) when the user has no reading plan.
func (s *Store) GetLatestForUser(ctx context.Context, userID uuid.UUID) (Plan, error) {
	query := `SELECT ` + planColumns + ` FROM reading_plans WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	return scanPlan(s.dbtx.QueryRow(ctx, query, userID))
}

const logColumns = `id, user_id, reading_plan_id, status, created_at`

func scanLog(row interface{ Scan(...any) error }) (Log, error) {
	var l Log
	err := row.Scan(&l.ID, &l.UserID, &l.ReadingPlanID, &l.Status, &l.CreatedAt)
	return l, err
}

// ListLogsInWindow returns every ReadingLog for userID with created_at in
// [from, to), used by the retry completion check (§4.3). The summary
// aggregator runs its own reading-completion query (summary.Store).
func (s *Store) ListLogsInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Log, error) {
	query := `SELECT ` + logColumns + ` FROM reading_logs WHERE user_id = $1 AND created_at >= $2 AND created_at < $3 ORDER BY created_at`
	rows, err := s.dbtx.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing reading logs: %w", err)
	}
	defer rows.Close()

	var logs []Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reading log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reading logs: %w", err)
	}
	return logs, nil
}
