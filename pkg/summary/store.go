package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
)

// Store provides the raw aggregation queries and upserts backing the
// summary service.
type Store struct {
	dbtx db.DBTX
}

// NewStore constructs a Store bound to dbtx.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

// AggregateExerciseSets returns (total, done) set-states across every plan
// the user has targeting date (§4.6).
func (s *Store) AggregateExerciseSets(ctx context.Context, userID uuid.UUID, date time.Time) (total, done int, err error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE st.status = 'DONE') AS done
		FROM exercise_set_states st
		JOIN exercise_sessions se ON se.id = st.session_id
		JOIN exercise_plans p ON p.id = se.plan_id
		WHERE p.user_id = $1 AND p.target_date = $2`
	if err := s.dbtx.QueryRow(ctx, query, userID, date).Scan(&total, &done); err != nil {
		return 0, 0, fmt.Errorf("aggregating exercise sets: %w", err)
	}
	return total, done, nil
}

// HasReadingCompletion reports whether the user has a DONE ReadingLog with
// created_at in [from, to).
func (s *Store) HasReadingCompletion(ctx context.Context, userID uuid.UUID, from, to time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
		SELECT 1 FROM reading_logs
		WHERE user_id = $1 AND status = 'DONE' AND created_at >= $2 AND created_at < $3)`
	if err := s.dbtx.QueryRow(ctx, query, userID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking reading completion: %w", err)
	}
	return exists, nil
}

// GetDaily returns the persisted daily summary for (userID, date), or
// db.IsNoRows(err) if none has been computed yet.
func (s *Store) GetDaily(ctx context.Context, userID uuid.UUID, date time.Time) (Daily, error) {
	var d Daily
	query := `SELECT user_id, date, total_sets, done_sets, rate, reading_completed, streak_days, trend, updated_at
		FROM daily_summaries WHERE user_id = $1 AND date = $2`
	err := s.dbtx.QueryRow(ctx, query, userID, date).Scan(&d.UserID, &d.Date, &d.TotalSets, &d.DoneSets, &d.Rate, &d.ReadingCompleted, &d.StreakDays, &d.Trend, &d.UpdatedAt)
	return d, err
}

// UpsertDaily inserts or replaces the daily summary for (d.UserID, d.Date).
func (s *Store) UpsertDaily(ctx context.Context, d Daily) error {
	query := `INSERT INTO daily_summaries (user_id, date, total_sets, done_sets, rate, reading_completed, streak_days, trend, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (user_id, date) DO UPDATE SET
			total_sets = EXCLUDED.total_sets,
			done_sets = EXCLUDED.done_sets,
			rate = EXCLUDED.rate,
			reading_completed = EXCLUDED.reading_completed,
			streak_days = EXCLUDED.streak_days,
			trend = EXCLUDED.trend,
			updated_at = now()`
	if _, err := s.dbtx.Exec(ctx, query, d.UserID, d.Date, d.TotalSets, d.DoneSets, d.Rate, d.ReadingCompleted, d.StreakDays, d.Trend); err != nil {
		return fmt.Errorf("upserting daily summary: %w", err)
	}
	return nil
}

// GetWeekly returns the persisted weekly summary for (userID, startDate).
func (s *Store) GetWeekly(ctx context.Context, userID uuid.UUID, startDate time.Time) (Weekly, error) {
	var w Weekly
	var daysJSON []byte
	query := `SELECT user_id, start_date, days, week_avg, streak_days, trend, updated_at
		FROM weekly_summaries WHERE user_id = $1 AND start_date = $2`
	err := s.dbtx.QueryRow(ctx, query, userID, startDate).Scan(&w.UserID, &w.StartDate, &daysJSON, &w.WeekAvg, &w.StreakDays, &w.Trend, &w.UpdatedAt)
	if err != nil {
		return Weekly{}, err
	}
	if err := json.Unmarshal(daysJSON, &w.Days); err != nil {
		return Weekly{}, fmt.Errorf("unmarshaling weekly days: %w", err)
	}
	return w, nil
}

// UpsertWeekly inserts or replaces the weekly summary for (w.UserID, w.StartDate).
func (s *Store) UpsertWeekly(ctx context.Context, w Weekly) error {
	daysJSON, err := json.Marshal(w.Days)
	if err != nil {
		return fmt.Errorf("marshaling weekly days: %w", err)
	}
	query := `INSERT INTO weekly_summaries (user_id, start_date, days, week_avg, streak_days, trend, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (user_id, start_date) DO UPDATE SET
			days = EXCLUDED.days,
			week_avg = EXCLUDED.week_avg,
			streak_days = EXCLUDED.streak_days,
			trend = EXCLUDED.trend,
			updated_at = now()`
	if _, err := s.dbtx.Exec(ctx, query, w.UserID, w.StartDate, daysJSON, w.WeekAvg, w.StreakDays, w.Trend); err != nil {
		return fmt.Errorf("upserting weekly summary: %w", err)
	}
	return nil
}
