package summary

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/db"
	"github.com/ANGHOOO/godlife/pkg/user"
)

const maxStreakLookback = 365

// Service implements recompute_daily and recompute_weekly (§4.6).
type Service struct {
	store *Store
	users *user.Store
}

// NewService builds a Service backed by dbtx.
func NewService(dbtx db.DBTX) *Service {
	return &Service{store: NewStore(dbtx), users: user.NewStore(dbtx)}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// localDayWindowUTC returns the half-open window [date 00:00, next day
// 00:00) in loc, converted to UTC, per §4.6's reading-completion window.
func localDayWindowUTC(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}

// dayHasActivity reports whether date has at least one DONE set or a
// reading completion, the unit the streak walk tests (glossary: Streak).
func (s *Service) dayHasActivity(ctx context.Context, userID uuid.UUID, date time.Time, loc *time.Location) (bool, error) {
	_, done, err := s.store.AggregateExerciseSets(ctx, userID, date)
	if err != nil {
		return false, err
	}
	if done > 0 {
		return true, nil
	}
	from, to := localDayWindowUTC(date, loc)
	return s.store.HasReadingCompletion(ctx, userID, from, to)
}

func (s *Service) resolveLocation(ctx context.Context, userID uuid.UUID) *time.Location {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		loc, locErr := time.LoadLocation(user.DefaultTimezone)
		if locErr != nil {
			return time.UTC
		}
		return loc
	}
	return u.Location()
}

// computeStreak walks backward from date (inclusive) up to 365 days,
// stopping at the first day without activity (§4.6).
func (s *Service) computeStreak(ctx context.Context, userID uuid.UUID, date time.Time, loc *time.Location) (int, error) {
	streak := 0
	cursor := date
	for i := 0; i < maxStreakLookback; i++ {
		active, err := s.dayHasActivity(ctx, userID, cursor, loc)
		if err != nil {
			return 0, err
		}
		if !active {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak, nil
}

// RecomputeDaily recomputes and upserts the daily summary for (userID, date).
func (s *Service) RecomputeDaily(ctx context.Context, userID uuid.UUID, date time.Time) (Daily, error) {
	loc := s.resolveLocation(ctx, userID)

	total, done, err := s.store.AggregateExerciseSets(ctx, userID, date)
	if err != nil {
		return Daily{}, err
	}
	if total < 0 {
		total = 0
	}
	done = clamp(done, 0, total)

	rate := 0.0
	if total > 0 {
		rate = round4(float64(done) / float64(total))
	}

	from, to := localDayWindowUTC(date, loc)
	readingCompleted, err := s.store.HasReadingCompletion(ctx, userID, from, to)
	if err != nil {
		return Daily{}, err
	}

	streak, err := s.computeStreak(ctx, userID, date, loc)
	if err != nil {
		return Daily{}, err
	}

	prevDate := date.AddDate(0, 0, -1)
	trend := TrendFlat
	if prev, err := s.store.GetDaily(ctx, userID, prevDate); err == nil {
		switch {
		case rate > prev.Rate:
			trend = TrendUp
		case rate < prev.Rate:
			trend = TrendDown
		}
	} else if !db.IsNoRows(err) {
		return Daily{}, fmt.Errorf("loading previous daily summary: %w", err)
	}

	d := Daily{
		UserID:           userID,
		Date:             date,
		TotalSets:        total,
		DoneSets:         done,
		Rate:             rate,
		ReadingCompleted: readingCompleted,
		StreakDays:       streak,
		Trend:            trend,
	}
	if err := s.store.UpsertDaily(ctx, d); err != nil {
		return Daily{}, err
	}
	return d, nil
}

// RecomputeWeekly recomputes each of the 7 days starting at startDate,
// rolling them up into a weekly summary (§4.6).
func (s *Service) RecomputeWeekly(ctx context.Context, userID uuid.UUID, startDate time.Time) (Weekly, error) {
	days := make([]DayPoint, 0, 7)
	var sum float64
	var last Daily

	for i := 0; i < 7; i++ {
		date := startDate.AddDate(0, 0, i)
		d, err := s.RecomputeDaily(ctx, userID, date)
		if err != nil {
			return Weekly{}, err
		}
		days = append(days, DayPoint{Date: date, Rate: d.Rate, ReadingCompleted: d.ReadingCompleted})
		sum += d.Rate
		last = d
	}

	weekAvg := round4(sum / 7)

	prevStart := startDate.AddDate(0, 0, -7)
	trend := TrendFlat
	if prev, err := s.store.GetWeekly(ctx, userID, prevStart); err == nil {
		switch {
		case weekAvg > prev.WeekAvg:
			trend = TrendUp
		case weekAvg < prev.WeekAvg:
			trend = TrendDown
		}
	} else if !db.IsNoRows(err) {
		return Weekly{}, fmt.Errorf("loading previous weekly summary: %w", err)
	}

	w := Weekly{
		UserID:     userID,
		StartDate:  startDate,
		Days:       days,
		WeekAvg:    weekAvg,
		StreakDays: last.StreakDays,
		Trend:      trend,
	}
	if err := s.store.UpsertWeekly(ctx, w); err != nil {
		return Weekly{}, err
	}
	return w, nil
}
