package exerciseplan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ANGHOOO/godlife/internal/apperr"
	"github.com/ANGHOOO/godlife/internal/db"
	"github.com/ANGHOOO/godlife/internal/telemetry"
	"github.com/ANGHOOO/godlife/pkg/notification"
)

// Service implements generate_plan and submit_set_result (§4.1).
type Service struct {
	store        *Store
	notification *notification.Service
}

// NewService builds a Service backed by dbtx, the ambient request
// transaction shared with the notification/outbox appends it triggers.
func NewService(dbtx db.DBTX) *Service {
	return &Service{store: NewStore(dbtx), notification: notification.NewService(dbtx)}
}

// GeneratePlan materializes a new ACTIVE plan from the fixed seed template
// (§4.1). Fails InvalidSource for an unrecognized source and PlanConflict
// if an ACTIVE plan already exists for (userID, targetDate).
func (s *Service) GeneratePlan(ctx context.Context, userID uuid.UUID, targetDate time.Time, rawSource string) (Plan, error) {
	source := Source(strings.ToLower(strings.TrimSpace(rawSource)))
	if source != SourceRule && source != SourceLLM {
		return Plan{}, apperr.New(apperr.CodeInvalidSource, fmt.Sprintf("unknown source %q", rawSource))
	}

	exists, err := s.store.ActivePlanExists(ctx, userID, targetDate)
	if err != nil {
		return Plan{}, err
	}
	if exists {
		return Plan{}, apperr.New(apperr.CodePlanConflict, "an active plan already exists for this user and date")
	}

	plan, err := s.store.CreatePlan(ctx, userID, targetDate, source)
	if err != nil {
		if db.IsUniqueViolation(err, "uq_exercise_plans_user_target_date_active") || db.IsUniqueViolation(err, "") {
			return Plan{}, apperr.Wrap(apperr.CodePlanConflict, "an active plan already exists for this user and date", err)
		}
		return Plan{}, err
	}

	var firstSession Session
	for i, seed := range seedTemplate {
		if seed.TargetSets <= 0 {
			return Plan{}, apperr.Newf(apperr.CodeValidation, "seed exercise %q has non-positive target_sets", seed.Name)
		}
		sess, err := s.store.CreateSession(ctx, plan.ID, i+1, seed.Name, seed.TargetSets)
		if err != nil {
			return Plan{}, err
		}
		if i == 0 {
			firstSession = sess
		}
		for setNo := 1; setNo <= seed.TargetSets; setNo++ {
			if _, err := s.store.CreateSetState(ctx, sess.ID, setNo); err != nil {
				return Plan{}, err
			}
		}
	}

	key := fmt.Sprintf("exercise:start:%s:%s:set:1", plan.ID, firstSession.ID)
	one := 1
	payload := map[string]any{
		"plan_id":    plan.ID,
		"session_id": firstSession.ID,
		"set_no":     one,
	}
	if _, _, err := s.notification.CreatePending(ctx, userID, notification.KindExerciseStart, &firstSession.ID, time.Now().UTC(), key, payload); err != nil {
		return Plan{}, fmt.Errorf("scheduling EXERCISE_START notification: %w", err)
	}

	telemetry.PlansGeneratedTotal.Inc()
	return plan, nil
}

// SubmitSetResult applies a DONE/SKIPPED result to a set-state, enforcing
// strict in-session ordering and idempotence on an already-terminal state
// (§4.1).
func (s *Service) SubmitSetResult(ctx context.Context, planID, sessionID uuid.UUID, setNo int, rawResult string, performedReps *int, performedWeight *float64, at time.Time) (SetResultOutcome, error) {
	if setNo <= 0 {
		return SetResultOutcome{}, apperr.New(apperr.CodeValidation, "set_no must be positive")
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if db.IsNoRows(err) {
			return SetResultOutcome{}, apperr.New(apperr.CodePlanNotFound, "session not found")
		}
		return SetResultOutcome{}, err
	}
	if session.PlanID != planID {
		return SetResultOutcome{}, apperr.New(apperr.CodeContextMismatch, "session does not belong to plan")
	}

	plan, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		if db.IsNoRows(err) {
			return SetResultOutcome{}, apperr.New(apperr.CodePlanNotFound, "plan not found")
		}
		return SetResultOutcome{}, err
	}

	result := strings.ToUpper(strings.TrimSpace(rawResult))
	if result != string(SetStatusDone) && result != string(SetStatusSkipped) {
		return SetResultOutcome{}, apperr.Newf(apperr.CodeValidation, "result must be DONE or SKIPPED, got %q", rawResult)
	}

	target, err := s.store.GetSetState(ctx, sessionID, setNo)
	if err != nil {
		if db.IsNoRows(err) {
			return SetResultOutcome{}, apperr.New(apperr.CodePlanNotFound, "set not found")
		}
		return SetResultOutcome{}, err
	}

	if target.Status.IsTerminal() {
		// Idempotent no-op: already terminal, no new notification (§4.1).
		return SetResultOutcome{SetID: target.ID, Status: target.Status}, nil
	}

	states, err := s.store.ListSetStates(ctx, sessionID)
	if err != nil {
		return SetResultOutcome{}, err
	}
	byNo := setStatesByNo(states)
	if violation, ok := firstOrderViolation(byNo, setNo); ok {
		return SetResultOutcome{}, apperr.Newf(apperr.CodeSetOrderViolation, "set %d must be completed or skipped before set %d", violation, setNo)
	}

	if at.IsZero() {
		at = time.Now().UTC()
	} else {
		at = at.UTC()
	}

	var updated SetState
	if result == string(SetStatusDone) {
		updated, err = s.store.MarkDone(ctx, target.ID, at, performedReps, performedWeight)
	} else {
		updated, err = s.store.MarkSkipped(ctx, target.ID, at)
	}
	if err != nil {
		return SetResultOutcome{}, err
	}
	telemetry.SetResultsSubmittedTotal.WithLabelValues(result).Inc()

	outcome := SetResultOutcome{SetID: updated.ID, Status: updated.Status}
	if result != string(SetStatusDone) {
		return outcome, nil
	}

	next, ok := nextPendingSetNo(byNo, setNo)
	if !ok {
		return outcome, nil
	}
	nextNo := &next

	key := fmt.Sprintf("exercise:next:%s:%s:set:%d", planID, sessionID, *nextNo)
	payload := map[string]any{
		"plan_id":    planID,
		"session_id": sessionID,
		"set_no":     *nextNo,
	}
	n, _, err := s.notification.CreatePending(ctx, plan.UserID, notification.KindExerciseNextSet, &sessionID, time.Now().UTC(), key, payload)
	if err != nil {
		return SetResultOutcome{}, fmt.Errorf("scheduling EXERCISE_NEXT_SET notification: %w", err)
	}

	outcome.NextPendingSetNo = nextNo
	outcome.NotificationID = &n.ID
	return outcome, nil
}

// setStatesByNo indexes states by their set_no for ordering and
// next-pending lookups.
func setStatesByNo(states []SetState) map[int]SetState {
	byNo := make(map[int]SetState, len(states))
	for _, st := range states {
		byNo[st.SetNo] = st
	}
	return byNo
}

// firstOrderViolation returns the lowest set_no below upTo that is missing
// or not DONE/SKIPPED, enforcing the strict in-session ordering rule
// (§4.1). ok is false when every prior set is DONE or SKIPPED.
func firstOrderViolation(byNo map[int]SetState, upTo int) (violatingSetNo int, ok bool) {
	for k := 1; k < upTo; k++ {
		prior, present := byNo[k]
		if !present || (prior.Status != SetStatusDone && prior.Status != SetStatusSkipped) {
			return k, true
		}
	}
	return 0, false
}

// nextPendingSetNo returns the lowest set_no above after that is still
// PENDING, used to pick the next EXERCISE_NEXT_SET notification target
// (§4.1). ok is false when no pending set remains.
func nextPendingSetNo(byNo map[int]SetState, after int) (setNo int, ok bool) {
	max := after
	for no := range byNo {
		if no > max {
			max = no
		}
	}
	for no := after + 1; no <= max; no++ {
		if st, present := byNo[no]; present && st.Status == SetStatusPending {
			return no, true
		}
	}
	return 0, false
}
