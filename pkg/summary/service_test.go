package summary

import (
	"testing"
	"time"
)

func TestRound4(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.333333333, 0.3333},
		{2.0 / 3.0, 0.6667},
		{1.0, 1.0},
		{0.0, 0.0},
		{0.12345, 0.1235},
	}
	for _, tt := range tests {
		if got := round4(tt.in); got != tt.want {
			t.Errorf("round4(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestLocalDayWindowUTC(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	from, to := localDayWindowUTC(date, loc)

	wantFrom := time.Date(2026, 2, 28, 15, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", from, wantFrom)
	}
	if !to.Equal(wantTo) {
		t.Errorf("to = %v, want %v", to, wantTo)
	}
	if to.Sub(from) != 24*time.Hour {
		t.Errorf("window should span exactly 24h, got %v", to.Sub(from))
	}
}

func TestDailyToResponse(t *testing.T) {
	d := Daily{
		Date:             time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TotalSets:        9,
		DoneSets:         6,
		Rate:             0.6667,
		ReadingCompleted: true,
		StreakDays:       3,
		Trend:            TrendUp,
	}
	resp := d.ToResponse()
	if resp.Date != "2026-03-01" {
		t.Errorf("Date = %q, want %q", resp.Date, "2026-03-01")
	}
	if resp.TotalSets != 9 || resp.DoneSets != 6 {
		t.Errorf("sets = %d/%d, want 9/6", resp.TotalSets, resp.DoneSets)
	}
	if resp.Trend != TrendUp {
		t.Errorf("Trend = %q, want up", resp.Trend)
	}
}

func TestWeeklyToResponse(t *testing.T) {
	w := Weekly{
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Days:       []DayPoint{{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Rate: 1.0}},
		WeekAvg:    0.5,
		StreakDays: 4,
		Trend:      TrendDown,
	}
	resp := w.ToResponse()
	if resp.StartDate != "2026-03-01" {
		t.Errorf("StartDate = %q, want %q", resp.StartDate, "2026-03-01")
	}
	if len(resp.Days) != 1 {
		t.Fatalf("Days = %d, want 1", len(resp.Days))
	}
	if resp.WeekAvg != 0.5 || resp.Trend != TrendDown {
		t.Errorf("WeekAvg/Trend = %v/%v, want 0.5/down", resp.WeekAvg, resp.Trend)
	}
}
