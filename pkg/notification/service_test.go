package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestDeriveKey_IncludesKindUserAndSchedule(t *testing.T) {
	userID := uuid.New()
	scheduleAt := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)

	got := DeriveKey(KindReadingReminder, userID, nil, scheduleAt)

	want := "notification:READING_REMINDER:" + userID.String() + ":" + ":" + scheduleAt.Format(time.RFC3339)
	if got != want {
		t.Errorf("DeriveKey() = %q, want %q", got, want)
	}
}

func TestDeriveKey_IncludesRelatedID(t *testing.T) {
	userID := uuid.New()
	relatedID := uuid.New()
	scheduleAt := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)

	got := DeriveKey(KindExerciseNextSet, userID, &relatedID, scheduleAt)

	if !strings.Contains(got, relatedID.String()) {
		t.Errorf("DeriveKey() = %q, want it to include related_id %s", got, relatedID)
	}
}

func TestDeriveKey_NormalizesScheduleToUTC(t *testing.T) {
	userID := uuid.New()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	local := time.Date(2026, 3, 1, 2, 30, 0, 0, loc)

	gotLocal := DeriveKey(KindReadingReminder, userID, nil, local)
	gotUTC := DeriveKey(KindReadingReminder, userID, nil, local.UTC())

	if gotLocal != gotUTC {
		t.Errorf("DeriveKey should normalize to UTC regardless of the input location: %q != %q", gotLocal, gotUTC)
	}
}

func TestDeriveKey_DifferentKindsDiffer(t *testing.T) {
	userID := uuid.New()
	scheduleAt := time.Now().UTC()

	a := DeriveKey(KindReadingReminder, userID, nil, scheduleAt)
	b := DeriveKey(KindReadingReminderRetry, userID, nil, scheduleAt)
	if a == b {
		t.Error("different kinds should derive different keys")
	}
}

func TestPayloadField_ReadsStringField(t *testing.T) {
	n := &Notification{Payload: []byte(`{"reference_date":"2026-03-01","plan_id":"not-a-string-field-test"}`)}
	if got := n.PayloadField("reference_date"); got != "2026-03-01" {
		t.Errorf("PayloadField() = %q, want %q", got, "2026-03-01")
	}
}

func TestPayloadField_MissingKey(t *testing.T) {
	n := &Notification{Payload: []byte(`{"reference_date":"2026-03-01"}`)}
	if got := n.PayloadField("nonexistent"); got != "" {
		t.Errorf("PayloadField() = %q, want empty", got)
	}
}

func TestPayloadField_NonObjectPayload(t *testing.T) {
	n := &Notification{Payload: []byte(`not json at all`)}
	if got := n.PayloadField("reference_date"); got != "" {
		t.Errorf("PayloadField() = %q, want empty for malformed payload", got)
	}
}

func TestPayloadField_NonStringValue(t *testing.T) {
	n := &Notification{Payload: []byte(`{"set_no":1}`)}
	if got := n.PayloadField("set_no"); got != "" {
		t.Errorf("PayloadField() = %q, want empty for a non-string value", got)
	}
}
