package exerciseplan

import (
	"testing"

	"github.com/google/uuid"
)

func stateWithStatus(setNo int, status SetStatus) SetState {
	return SetState{ID: uuid.New(), SetNo: setNo, Status: status}
}

func TestSetStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status SetStatus
		want   bool
	}{
		{SetStatusPending, false},
		{SetStatusInProgress, false},
		{SetStatusDone, true},
		{SetStatusSkipped, true},
		{SetStatusFailed, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetStatesByNo(t *testing.T) {
	states := []SetState{
		stateWithStatus(1, SetStatusDone),
		stateWithStatus(3, SetStatusPending),
		stateWithStatus(2, SetStatusSkipped),
	}
	byNo := setStatesByNo(states)

	if len(byNo) != 3 {
		t.Fatalf("len = %d, want 3", len(byNo))
	}
	if byNo[1].Status != SetStatusDone {
		t.Errorf("byNo[1].Status = %q, want DONE", byNo[1].Status)
	}
	if byNo[2].Status != SetStatusSkipped {
		t.Errorf("byNo[2].Status = %q, want SKIPPED", byNo[2].Status)
	}
}

func TestFirstOrderViolation_NoPriorSets(t *testing.T) {
	byNo := setStatesByNo(nil)
	if _, ok := firstOrderViolation(byNo, 1); ok {
		t.Error("submitting set 1 should never be an order violation")
	}
}

func TestFirstOrderViolation_PriorSetNotTerminal(t *testing.T) {
	byNo := setStatesByNo([]SetState{
		stateWithStatus(1, SetStatusPending),
	})
	violation, ok := firstOrderViolation(byNo, 2)
	if !ok {
		t.Fatal("expected a violation when set 1 is still PENDING")
	}
	if violation != 1 {
		t.Errorf("violation = %d, want 1", violation)
	}
}

func TestFirstOrderViolation_PriorSetMissing(t *testing.T) {
	byNo := setStatesByNo(nil)
	violation, ok := firstOrderViolation(byNo, 2)
	if !ok {
		t.Fatal("expected a violation when set 1 does not exist yet")
	}
	if violation != 1 {
		t.Errorf("violation = %d, want 1", violation)
	}
}

func TestFirstOrderViolation_AllPriorTerminal(t *testing.T) {
	byNo := setStatesByNo([]SetState{
		stateWithStatus(1, SetStatusDone),
		stateWithStatus(2, SetStatusSkipped),
	})
	if _, ok := firstOrderViolation(byNo, 3); ok {
		t.Error("should not flag a violation when every prior set is terminal")
	}
}

func TestNextPendingSetNo_FindsLowestPending(t *testing.T) {
	byNo := setStatesByNo([]SetState{
		stateWithStatus(1, SetStatusDone),
		stateWithStatus(2, SetStatusPending),
		stateWithStatus(3, SetStatusPending),
	})
	next, ok := nextPendingSetNo(byNo, 1)
	if !ok {
		t.Fatal("expected a pending set after set 1")
	}
	if next != 2 {
		t.Errorf("next = %d, want 2", next)
	}
}

func TestNextPendingSetNo_NoneRemaining(t *testing.T) {
	byNo := setStatesByNo([]SetState{
		stateWithStatus(1, SetStatusDone),
		stateWithStatus(2, SetStatusSkipped),
	})
	if _, ok := nextPendingSetNo(byNo, 2); ok {
		t.Error("expected no pending set when every set is terminal")
	}
}

func TestNextPendingSetNo_SkipsNonPendingStatuses(t *testing.T) {
	byNo := setStatesByNo([]SetState{
		stateWithStatus(1, SetStatusDone),
		stateWithStatus(2, SetStatusFailed),
		stateWithStatus(3, SetStatusPending),
	})
	next, ok := nextPendingSetNo(byNo, 1)
	if !ok {
		t.Fatal("expected to find set 3 as the next pending set")
	}
	if next != 3 {
		t.Errorf("next = %d, want 3", next)
	}
}

func TestSeedTemplate_AllHavePositiveTargetSets(t *testing.T) {
	if len(seedTemplate) == 0 {
		t.Fatal("seedTemplate must not be empty")
	}
	for _, seed := range seedTemplate {
		if seed.TargetSets <= 0 {
			t.Errorf("seed exercise %q has non-positive target_sets %d", seed.Name, seed.TargetSets)
		}
		if seed.Name == "" {
			t.Error("seed exercise must have a name")
		}
	}
}
