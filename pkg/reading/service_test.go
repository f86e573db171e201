package reading

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCombineLocal_ResolvesInGivenZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	referenceDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	got, err := combineLocal(referenceDate, "21:30", loc)
	if err != nil {
		t.Fatalf("combineLocal() error = %v", err)
	}

	// 21:30 KST (UTC+9) on 2026-03-01 is 12:30 UTC the same day.
	want := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("combineLocal() = %v, want %v", got, want)
	}
}

func TestCombineLocal_CrossesDayBoundary(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	referenceDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	got, err := combineLocal(referenceDate, "23:00", loc)
	if err != nil {
		t.Fatalf("combineLocal() error = %v", err)
	}

	if got.UTC().Day() != 2 {
		t.Errorf("combineLocal(23:00 EST) should roll into the next UTC day, got %v", got)
	}
}

func TestCombineLocal_InvalidFormat(t *testing.T) {
	if _, err := combineLocal(time.Now(), "not-a-time", time.UTC); err == nil {
		t.Error("expected an error for a malformed remind_time")
	}
}

func TestBaseReminderKey_Format(t *testing.T) {
	userID := uuid.New()
	got := baseReminderKey(userID, "2026-03-01")
	want := "reading:reminder:" + userID.String() + ":2026-03-01"
	if got != want {
		t.Errorf("baseReminderKey() = %q, want %q", got, want)
	}
}

func TestRetryReminderKey_Format(t *testing.T) {
	userID := uuid.New()
	got := retryReminderKey(userID, "2026-03-01")
	want := "reading:reminder:retry:" + userID.String() + ":2026-03-01"
	if got != want {
		t.Errorf("retryReminderKey() = %q, want %q", got, want)
	}
}

func TestBaseAndRetryReminderKeys_Differ(t *testing.T) {
	userID := uuid.New()
	dateKey := "2026-03-01"
	if baseReminderKey(userID, dateKey) == retryReminderKey(userID, dateKey) {
		t.Error("base and retry reminder keys must not collide")
	}
}
