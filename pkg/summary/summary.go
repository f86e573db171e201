// Package summary implements the summary aggregator (C8): on-demand
// recomputation of daily/weekly KPI snapshots with timezone-local
// windowing, streak, and trend.
package summary

import (
	"time"

	"github.com/google/uuid"
)

// Trend enumerates the direction of change vs. the prior period (§4.6).
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// Daily is a per-day KPI snapshot, upserted by (user_id, date).
type Daily struct {
	UserID           uuid.UUID
	Date             time.Time
	TotalSets        int
	DoneSets         int
	Rate             float64
	ReadingCompleted bool
	StreakDays       int
	Trend            Trend
	UpdatedAt        time.Time
}

// Weekly is a 7-day rollup, upserted by (user_id, start_date).
type Weekly struct {
	UserID     uuid.UUID
	StartDate  time.Time
	Days       []DayPoint
	WeekAvg    float64
	StreakDays int
	Trend      Trend
	UpdatedAt  time.Time
}

// DayPoint is one day's contribution to a Weekly rollup.
type DayPoint struct {
	Date             time.Time `json:"date"`
	Rate             float64   `json:"rate"`
	ReadingCompleted bool      `json:"reading_completed"`
}

// DailyResponse is the JSON shape of GET /summary/daily.
type DailyResponse struct {
	UserID           uuid.UUID `json:"user_id"`
	Date             string    `json:"date"`
	TotalSets        int       `json:"total_sets"`
	DoneSets         int       `json:"done_sets"`
	Rate             float64   `json:"rate"`
	ReadingCompleted bool      `json:"reading_completed"`
	StreakDays       int       `json:"streak_days"`
	Trend            Trend     `json:"trend"`
}

// ToResponse converts d to its wire representation.
func (d *Daily) ToResponse() DailyResponse {
	return DailyResponse{
		UserID:           d.UserID,
		Date:             d.Date.Format("2006-01-02"),
		TotalSets:        d.TotalSets,
		DoneSets:         d.DoneSets,
		Rate:             d.Rate,
		ReadingCompleted: d.ReadingCompleted,
		StreakDays:       d.StreakDays,
		Trend:            d.Trend,
	}
}

// WeeklyResponse is the JSON shape of GET /summary/weekly.
type WeeklyResponse struct {
	UserID     uuid.UUID  `json:"user_id"`
	StartDate  string     `json:"start_date"`
	Days       []DayPoint `json:"days"`
	WeekAvg    float64    `json:"week_avg"`
	StreakDays int        `json:"streak_days"`
	Trend      Trend      `json:"trend"`
}

// ToResponse converts w to its wire representation.
func (w *Weekly) ToResponse() WeeklyResponse {
	return WeeklyResponse{
		UserID:     w.UserID,
		StartDate:  w.StartDate.Format("2006-01-02"),
		Days:       w.Days,
		WeekAvg:    w.WeekAvg,
		StreakDays: w.StreakDays,
		Trend:      w.Trend,
	}
}
