package reading

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/apperr"
	"github.com/ANGHOOO/godlife/internal/db"
	"github.com/ANGHOOO/godlife/pkg/notification"
	"github.com/ANGHOOO/godlife/pkg/user"
)

const dateLayout = "2006-01-02"

// Service implements schedule_daily_reminder and
// schedule_retry_if_incomplete (§4.3). Both algorithms resolve the
// idempotency key and consult it before any policy gate (plan existence,
// enabled, completion), so a replay with the same key is deterministic
// even if the underlying state changed between calls.
type Service struct {
	store        *Store
	users        *user.Store
	notification *notification.Store
	notifSvc     *notification.Service
}

// NewService builds a Service backed by dbtx, the ambient request
// transaction.
func NewService(dbtx db.DBTX) *Service {
	return &Service{
		store:        NewStore(dbtx),
		users:        user.NewStore(dbtx),
		notification: notification.NewStore(dbtx),
		notifSvc:     notification.NewService(dbtx),
	}
}

// ScheduleDailyReminder implements §4.3's base-reminder algorithm.
func (s *Service) ScheduleDailyReminder(ctx context.Context, userID uuid.UUID, referenceDate time.Time, idempotencyKey string) (ReminderOutcome, error) {
	dateKey := referenceDate.Format(dateLayout)
	if idempotencyKey == "" {
		idempotencyKey = baseReminderKey(userID, dateKey)
	}

	existing, err := s.notification.GetByIdempotencyKey(ctx, idempotencyKey)
	if err == nil {
		if existing.UserID != userID || existing.Kind != notification.KindReadingReminder || existing.PayloadField("reference_date") != dateKey {
			return ReminderOutcome{}, apperr.New(apperr.CodeValidation, "idempotency key reused by another scope")
		}
		return ReminderOutcome{Result: ResultDuplicate, NotificationID: &existing.ID, ScheduleAt: &existing.ScheduleAt}, nil
	}
	if !db.IsNoRows(err) {
		return ReminderOutcome{}, fmt.Errorf("looking up reminder by key: %w", err)
	}

	plan, err := s.store.GetLatestForUser(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return ReminderOutcome{}, apperr.New(apperr.CodeReadingPlanNotFound, "user has no reading plan")
		}
		return ReminderOutcome{}, err
	}
	if !plan.Enabled {
		return ReminderOutcome{Result: ResultSkippedDisabled}, nil
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ReminderOutcome{}, fmt.Errorf("loading user for timezone: %w", err)
	}

	scheduleAt, err := combineLocal(referenceDate, plan.RemindTime, u.Location())
	if err != nil {
		return ReminderOutcome{}, apperr.Wrap(apperr.CodeValidation, "invalid remind_time", err)
	}

	payload := map[string]any{
		"reading_plan_id": plan.ID,
		"reference_date":  dateKey,
	}
	n, _, err := s.notifSvc.CreatePending(ctx, userID, notification.KindReadingReminder, &plan.ID, scheduleAt, idempotencyKey, payload)
	if err != nil {
		return ReminderOutcome{}, err
	}

	return ReminderOutcome{Result: ResultCreated, NotificationID: &n.ID, ScheduleAt: &n.ScheduleAt}, nil
}

// ScheduleRetryIfIncomplete implements §4.3's retry algorithm.
func (s *Service) ScheduleRetryIfIncomplete(ctx context.Context, userID uuid.UUID, referenceDate time.Time, baseNotificationID uuid.UUID, idempotencyKey string) (ReminderOutcome, error) {
	dateKey := referenceDate.Format(dateLayout)
	if idempotencyKey == "" {
		idempotencyKey = retryReminderKey(userID, dateKey)
	}

	existing, err := s.notification.GetByIdempotencyKey(ctx, idempotencyKey)
	if err == nil {
		if existing.UserID != userID ||
			existing.Kind != notification.KindReadingReminderRetry ||
			existing.PayloadField("reference_date") != dateKey ||
			existing.PayloadField("base_notification_id") != baseNotificationID.String() {
			return ReminderOutcome{}, apperr.New(apperr.CodeValidation, "idempotency key reused by another scope")
		}
		return ReminderOutcome{Result: ResultDuplicate, NotificationID: &existing.ID, ScheduleAt: &existing.ScheduleAt}, nil
	}
	if !db.IsNoRows(err) {
		return ReminderOutcome{}, fmt.Errorf("looking up retry reminder by key: %w", err)
	}

	plan, err := s.store.GetLatestForUser(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return ReminderOutcome{}, apperr.New(apperr.CodeReadingPlanNotFound, "user has no reading plan")
		}
		return ReminderOutcome{}, err
	}
	if !plan.Enabled {
		return ReminderOutcome{Result: ResultSkippedDisabled}, nil
	}

	dayStart := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)
	logs, err := s.store.ListLogsInWindow(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return ReminderOutcome{}, err
	}
	for _, l := range logs {
		if l.Status == LogStatusDone || l.Status == LogStatusSkipped {
			return ReminderOutcome{Result: ResultSkippedCompleted}, nil
		}
	}

	base, err := s.notification.GetByID(ctx, baseNotificationID)
	if err != nil {
		if db.IsNoRows(err) {
			return ReminderOutcome{}, apperr.New(apperr.CodeValidation, "base notification not found")
		}
		return ReminderOutcome{}, err
	}
	if base.UserID != userID || base.Kind != notification.KindReadingReminder || base.ScheduleAt.UTC().Format(dateLayout) != dateKey {
		return ReminderOutcome{}, apperr.New(apperr.CodeValidation, "base notification does not match user/kind/reference_date")
	}

	scheduleAt := base.ScheduleAt.Add(30 * time.Minute)
	payload := map[string]any{
		"reading_plan_id":      plan.ID,
		"reference_date":       dateKey,
		"base_notification_id": baseNotificationID,
	}
	n, _, err := s.notifSvc.CreatePending(ctx, userID, notification.KindReadingReminderRetry, &plan.ID, scheduleAt, idempotencyKey, payload)
	if err != nil {
		return ReminderOutcome{}, err
	}

	return ReminderOutcome{Result: ResultCreated, NotificationID: &n.ID, ScheduleAt: &n.ScheduleAt}, nil
}

// combineLocal resolves "HH:MM" wall time on referenceDate's calendar day
// in loc, returning the equivalent UTC instant (§9 open question: remind_time
// is treated as local wall-clock in the user's timezone).
func combineLocal(referenceDate time.Time, remindTime string, loc *time.Location) (time.Time, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(remindTime, "%d:%d", &hour, &minute); err != nil {
		return time.Time{}, fmt.Errorf("parsing remind_time %q: %w", remindTime, err)
	}
	local := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), hour, minute, 0, 0, loc)
	return local.UTC(), nil
}

// baseReminderKey derives the default idempotency key for the daily
// base reminder (§4.3): "reading:reminder:{user_id}:{YYYY-MM-DD}".
func baseReminderKey(userID uuid.UUID, dateKey string) string {
	return fmt.Sprintf("reading:reminder:%s:%s", userID, dateKey)
}

// retryReminderKey derives the default idempotency key for the
// conditional retry (§4.3): "reading:reminder:retry:{user_id}:{YYYY-MM-DD}".
func retryReminderKey(userID uuid.UUID, dateKey string) string {
	return fmt.Sprintf("reading:reminder:retry:%s:%s", userID, dateKey)
}
